package pipeline

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"cutter/internal/preflight"
	"cutter/internal/services"
)

// resolveInput returns the absolute path of an existing regular file.
func resolveInput(input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", &InvalidPathError{Arg: "input", Reason: "path is empty"}
	}
	abs, err := filepath.Abs(input)
	if err != nil {
		return "", &InvalidPathError{Arg: "input", Path: input, Reason: err.Error()}
	}
	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", services.Wrap(services.ErrNotFound, stageValidate, "stat input", abs, err)
		}
		return "", services.Wrap(services.ErrValidation, stageValidate, "stat input", abs, err)
	}
	if info.IsDir() {
		return "", &InvalidPathError{Arg: "input", Path: abs, Reason: "is a directory"}
	}
	return abs, nil
}

// prepareOutputDir resolves the output directory, defaulting to the input's
// directory, creates it with parents and checks that it is writable.
func prepareOutputDir(source, outputDir string) (string, error) {
	dir := strings.TrimSpace(outputDir)
	if dir == "" {
		dir = filepath.Dir(source)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", &InvalidPathError{Arg: "output", Path: dir, Reason: err.Error()}
	}
	if info, err := os.Stat(abs); err == nil && !info.IsDir() {
		return "", &InvalidPathError{Arg: "output", Path: abs, Reason: "is not a directory"}
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return "", services.Wrap(services.ErrValidation, stageValidate, "create output directory", abs, err)
	}
	if check := preflight.CheckDirectoryAccess("output directory", abs); !check.Passed {
		return "", services.Wrap(services.ErrValidation, stageValidate, "check output directory", check.Detail, nil)
	}
	return abs, nil
}
