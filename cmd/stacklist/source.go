package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"
)

// source is a file the user works from. Files that disappeared since
// they were recorded are kept, marked missing.
type source struct {
	Path    string
	Size    int64
	ModTime time.Time
	Missing bool
}

func statSource(_ context.Context, path string) (source, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return source{Path: path, Missing: true}, nil
		}
		return source{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if fi.IsDir() {
		return source{}, fmt.Errorf("%s is a directory", path)
	}

	return source{
		Path:    path,
		Size:    fi.Size(),
		ModTime: fi.ModTime(),
	}, nil
}
