package services

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"time"
)

// CommandWaitDelay is how long a cancelled command may keep running after
// the interrupt before it is killed and its pipes are closed.
const CommandWaitDelay = 5 * time.Second

// Command builds an exec.Cmd that receives SIGINT when ctx is cancelled and
// is killed if it has not exited CommandWaitDelay later.
func Command(ctx context.Context, name string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = CommandWaitDelay
	return cmd
}

// CombinedOutput runs cmd and returns its combined output. A failure caused
// by cancellation matches ctx.Err() so callers can tell it apart from a tool
// error.
func CombinedOutput(ctx context.Context, cmd *exec.Cmd) ([]byte, error) {
	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
			err = errors.Join(ctxErr, err)
		}
	}
	return output, err
}

// RunCommand runs name with args and returns the combined output.
func RunCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return CombinedOutput(ctx, Command(ctx, name, args...))
}
