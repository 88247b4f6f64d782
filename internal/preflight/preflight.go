package preflight

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/sys/unix"

	"cutter/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name     string
	Passed   bool
	Optional bool
	Detail   string
}

// Requirement defines an external binary cutter relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// CheckBinaries resolves each requirement on PATH.
func CheckBinaries(requirements []Requirement) []Result {
	results := make([]Result, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		result := Result{Name: req.Name, Optional: req.Optional}
		switch resolved, err := exec.LookPath(cmd); {
		case cmd == "":
			result.Detail = "command not configured"
		case err != nil:
			result.Detail = fmt.Sprintf("binary %q not found (%s)", cmd, req.Description)
		default:
			result.Passed = true
			result.Detail = resolved
		}
		results = append(results, result)
	}
	return results
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// Requirements lists the binaries the configuration needs.
func Requirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{Name: "FFmpeg", Command: cfg.FFmpegBinary(), Description: "required for audio extraction and clip output"},
		{Name: "FFprobe", Command: cfg.FFprobeBinary(), Description: "required for duration and stream inspection"},
		{Name: "uvx", Command: cfg.UVXBinary(), Description: "required to launch WhisperX"},
	}
}

type dirCheck struct {
	name string
	path string
}

// RunAll executes every applicable check for the given config. Directories
// that are not configured are skipped.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := CheckBinaries(Requirements(cfg))

	dirs := []dirCheck{
		{"Output directory", cfg.Paths.OutputDir},
		{"Work directory", cfg.Paths.WorkDir},
		{"Log directory", cfg.Paths.LogDir},
	}
	if cfg.Cache.Enabled {
		dirs = append(dirs, dirCheck{"Cache directory", cfg.CacheDir()})
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir.path) == "" {
			continue
		}
		results = append(results, CheckDirectoryAccess(dir.name, dir.path))
	}
	return results
}

// Failed returns the required checks that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed && !r.Optional {
			failed = append(failed, r)
		}
	}
	return failed
}
