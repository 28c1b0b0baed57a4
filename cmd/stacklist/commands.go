package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.lepak.sg/stacklist/registry"
	"go.lepak.sg/stacklist/seq"
)

var (
	errNoSources = errors.New("no sources recorded")
	errMissing   = errors.New("file does not exist")
)

func newUseCmd(a *app) *cobra.Command {
	var pin bool
	cmd := &cobra.Command{
		Use:   "use <path>",
		Short: "Record one use of a source file",
		Long: `Record one use of a source file. The file must exist.
With --pin, the file is kept at the front regardless of how often
other files are used.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := absPath(args[0])
			if err != nil {
				return err
			}
			src, err := statSource(cmd.Context(), path)
			if err != nil {
				return err
			}
			if src.Missing {
				return fmt.Errorf("failed to use %s: %w", args[0], errMissing)
			}

			// refreshes the recorded size and modification time
			a.sources.Add(path, src, pin)
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return a.save()
		},
	}
	cmd.Flags().BoolVar(&pin, "pin", false, "pin the source to the front")
	return cmd
}

func newPinCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pin <path>",
		Short: "Pin a recorded source to the front without counting a use",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := absPath(args[0])
			if err != nil {
				return err
			}
			if err := a.sources.SetManual(path, true); err != nil {
				return err
			}
			return a.save()
		},
	}
}

func newUnpinCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "unpin",
		Short: "Return the pinned source to ordering by use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, e := range a.sources.Entries() {
				if e.Manual {
					if err := a.sources.SetManual(e.ID, false); err != nil {
						return err
					}
					return a.save()
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "nothing is pinned")
			return nil
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded sources, most used first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, e := range a.sources.Entries() {
				fmt.Fprintln(cmd.OutOrStdout(), formatEntry(e))
			}
			return nil
		},
	}
}

func formatEntry(e registry.Entry[source]) string {
	marker := " "
	if e.Manual {
		marker = "*"
	}
	line := fmt.Sprintf("%s %4d %s", marker, e.Count, e.ID)
	if e.Value.Missing {
		line += " (missing)"
	}
	return line
}

func newDefaultCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "default",
		Short: "Print the source at the front",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, ok := a.sources.Default()
			if !ok {
				return errNoSources
			}
			fmt.Fprintln(cmd.OutOrStdout(), src.Path)
			return nil
		},
	}
}

func newForgetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "forget <path>",
		Short: "Remove a recorded source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := absPath(args[0])
			if err != nil {
				return err
			}
			if !a.sources.Remove(path) {
				return fmt.Errorf("%w: %s", registry.ErrUnknownID, path)
			}
			return a.save()
		},
	}
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <path>...",
		Short: "Replace the recorded sources with a plain list",
		Long: `Replace the recorded sources with the given paths. Each occurrence
of a path counts as one use, and among equally used paths the one given
last comes first. Nothing is pinned afterwards.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := make([]string, len(args))
			for i, arg := range args {
				path, err := absPath(arg)
				if err != nil {
					return err
				}
				paths[i] = path
			}

			if err := a.sources.Reload(cmd.Context(), seq.Slice(paths)); err != nil {
				return err
			}
			return a.save()
		},
	}
}
