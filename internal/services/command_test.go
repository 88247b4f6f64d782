package services_test

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"cutter/internal/services"
)

func TestRunCommandCancelledMatchesContext(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	started := time.Now()
	_, err := services.RunCommand(ctx, "sleep", "5")
	if err == nil {
		t.Fatalf("expected error from interrupted command")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error in chain, got %v", err)
	}
	if elapsed := time.Since(started); elapsed > 3*time.Second {
		t.Fatalf("command outlived cancellation by %s", elapsed)
	}
}

func TestRunCommandCancelledExitsInterrupted(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(100*time.Millisecond, cancel)

	_, err := services.RunCommand(ctx, "sleep", "5")
	if got := services.ExitCode(err); got != 130 {
		t.Fatalf("ExitCode = %d, want 130 (err=%v)", got, err)
	}
}

func TestRunCommandFailureWithoutCancel(t *testing.T) {
	if _, err := exec.LookPath("false"); err != nil {
		t.Skip("false not available")
	}
	_, err := services.RunCommand(context.Background(), "false")
	if err == nil {
		t.Fatalf("expected error from failing command")
	}
	if errors.Is(err, context.Canceled) {
		t.Fatalf("tool failure must not look like cancellation: %v", err)
	}
	if got := services.ExitCode(err); got != 1 {
		t.Fatalf("ExitCode = %d, want 1", got)
	}
}

func TestCommandInstallsInterrupt(t *testing.T) {
	cmd := services.Command(context.Background(), "true")
	if cmd.Cancel == nil {
		t.Fatalf("expected Cancel to be set")
	}
	if cmd.WaitDelay != services.CommandWaitDelay {
		t.Fatalf("WaitDelay = %s, want %s", cmd.WaitDelay, services.CommandWaitDelay)
	}
}
