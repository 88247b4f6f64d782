package pipeline

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/gofrs/flock"

	"cutter/internal/logging"
	"cutter/internal/services"
)

// LockFileName is created inside the output directory and locked for the
// duration of a run. The file is left in place after unlock.
const LockFileName = ".cutter.lock"

// lockOutputDir takes an exclusive lock so two runs cannot interleave
// numbered clips in one directory.
func lockOutputDir(dir string, logger *slog.Logger) (func(), error) {
	lockPath := filepath.Join(dir, LockFileName)
	lock := flock.New(lockPath)

	ok, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, stageValidate, "lock output directory", lockPath, err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrBusy, stageValidate, "lock output directory",
			fmt.Sprintf("another cutter run is writing to %s", dir), nil)
	}

	return func() {
		if err := lock.Unlock(); err != nil {
			logging.WarnWithContext(logger, "failed to release output lock", "output_lock_release_failed",
				logging.String("lock", lockPath),
				logging.Error(err),
				logging.String(logging.FieldImpact, "a later run may report the directory as busy"),
				logging.String(logging.FieldErrorHint, "remove the lock file if no cutter run is active"),
			)
		}
	}, nil
}
