// Package generator runs an external etymology generator command.
//
// The command is an opaque collaborator: it is run via `sh -c` with no
// arguments, and its only contract is to exit zero and leave an updated
// etymologies file behind. Because its output is trusted for a commit, the
// generator runs against a staging copy of the artifacts; the produced file
// is validated before it is promoted over the committed version, and the
// staging directory is removed on every exit path.
package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/corrafig/louskubot/internal/etym"
	"github.com/corrafig/louskubot/internal/log"
)

// ErrInvalidOutput indicates the generator exited zero but did not leave a
// usable etymologies file behind.
var ErrInvalidOutput = errors.New("generator produced invalid output")

// Runner executes the configured external generator command.
type Runner struct {
	command string
	timeout time.Duration
}

// New creates a runner for the given shell command.
func New(command string, timeout time.Duration) *Runner {
	return &Runner{command: command, timeout: timeout}
}

// Run executes the generator in a staging directory seeded with the current
// artifacts from dir, validates the produced etymologies file, and promotes
// it into dir via atomic rename.
func (r *Runner) Run(ctx context.Context, dir, epithetsFile, etymologiesFile string) error {
	l := log.FromContext(ctx)

	staging, err := os.MkdirTemp("", "louskubot-gen-")
	if err != nil {
		return fmt.Errorf("create staging dir: %w", err)
	}
	defer os.RemoveAll(staging)

	// Seed the staging copy. The epithets file is the generator's input;
	// the etymologies file lets it update incrementally.
	if err := copyFile(filepath.Join(dir, epithetsFile), filepath.Join(staging, epithetsFile)); err != nil {
		return fmt.Errorf("stage %s: %w", epithetsFile, err)
	}
	if err := copyFile(filepath.Join(dir, etymologiesFile), filepath.Join(staging, etymologiesFile)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stage %s: %w", etymologiesFile, err)
	}

	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	l.Debug("running generator", "command", r.command, "staging", staging)
	done := l.Command(staging, "sh", "-c", r.command)
	start := time.Now()

	shellCmd := exec.CommandContext(runCtx, "sh", "-c", r.command)
	shellCmd.Dir = staging
	shellCmd.Stdout = l.Writer()
	shellCmd.Stderr = l.Writer()

	err = shellCmd.Run()
	done(time.Since(start))
	if err != nil {
		if ctxErr := runCtx.Err(); ctxErr != nil {
			return fmt.Errorf("generator: %w", ctxErr)
		}
		return fmt.Errorf("generator exited with error: %w", err)
	}

	// Validate before promoting over the committed version
	produced := filepath.Join(staging, etymologiesFile)
	data, err := os.ReadFile(produced)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if _, err := etym.ParseDocument(data); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	return promote(data, filepath.Join(dir, etymologiesFile))
}

// promote atomically replaces target with data.
func promote(data []byte, target string) error {
	tempPath := target + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return err
	}
	return os.Rename(tempPath, target)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
