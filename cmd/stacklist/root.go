package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.lepak.sg/stacklist/registry"
	"go.lepak.sg/stacklist/state"
)

// app is the registry of sources loaded from the state file, shared by
// all subcommands of one invocation.
type app struct {
	statePath string
	sources   *registry.Registry[source]
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "stacklist",
		Short: "Keep track of the files you use most",
		Long: `stacklist remembers which source files you use and how often.
The most used file comes first, unless you pin another one.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd.Context())
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.statePath, "state", state.GetStatePath(""), "path to the state file")

	rootCmd.AddCommand(
		newUseCmd(a),
		newPinCmd(a),
		newUnpinCmd(a),
		newListCmd(a),
		newDefaultCmd(a),
		newForgetCmd(a),
		newImportCmd(a),
	)
	return rootCmd
}

func (a *app) open(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := state.Load(a.statePath)
	if err != nil {
		return err
	}

	a.sources = registry.New[source](registry.Options[source]{
		Loader: statSource,
	})
	if err := a.sources.Restore(ctx, st.Snapshot); err != nil {
		return fmt.Errorf("failed to load state file: %w", err)
	}
	return nil
}

// save writes the state file if anything changed.
func (a *app) save() error {
	if !a.sources.Changed() {
		return nil
	}
	if err := state.Save(&state.State{Snapshot: a.sources.Snapshot()}, a.statePath); err != nil {
		return err
	}
	a.sources.MarkSaved()
	return nil
}

func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	return abs, nil
}
