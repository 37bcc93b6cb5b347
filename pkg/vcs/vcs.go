// Package vcs records an export in version control. It shells out to git.
package vcs

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/arthur-debert/ezconfig/pkg/errors"
	"github.com/arthur-debert/ezconfig/pkg/logging"
	"github.com/rs/zerolog"
)

// DefaultMessage starts the commit message when none is given.
const DefaultMessage = "Exported configuration."

// Runner executes external commands in a directory.
type Runner interface {
	// Run returns the combined output of the command.
	Run(ctx context.Context, dir, name string, args ...string) ([]byte, error)

	// RunInteractive attaches the command to the process terminal.
	RunInteractive(ctx context.Context, dir, name string, args ...string) error
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return out.Bytes(), err
}

func (ExecRunner) RunInteractive(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Git commits or stages an exported directory.
type Git struct {
	runner Runner
	logger zerolog.Logger
}

// NewGit creates a committer using runner; a nil runner uses ExecRunner.
func NewGit(runner Runner) *Git {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Git{runner: runner, logger: logging.GetLogger("vcs")}
}

// CommitMessage returns message, or the default message directly followed by
// the change preview when message is empty.
func CommitMessage(message, preview string) string {
	if message != "" {
		return message
	}
	return DefaultMessage + preview
}

// HasChanges reports whether dir has uncommitted changes.
func (g *Git) HasChanges(ctx context.Context, dir string) (bool, error) {
	out, err := g.run(ctx, dir, "status", "--porcelain", ".")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(string(out)) != "", nil
}

// Commit stages everything under dir and commits it with message. A clean
// directory is left alone and reported as not committed.
func (g *Git) Commit(ctx context.Context, dir, message string) (bool, error) {
	dirty, err := g.HasChanges(ctx, dir)
	if err != nil {
		return false, err
	}
	if !dirty {
		g.logger.Info().Str("dir", dir).Msg("Nothing to commit")
		return false, nil
	}

	if _, err := g.run(ctx, dir, "add", "-A", "."); err != nil {
		return false, err
	}

	msgFile, err := os.CreateTemp("", "ezconfig-commit-*.txt")
	if err != nil {
		return false, errors.IO(err, errors.ErrFileCreate, "create", os.TempDir())
	}
	defer func() { _ = os.Remove(msgFile.Name()) }()
	if _, err := msgFile.WriteString(message); err != nil {
		_ = msgFile.Close()
		return false, errors.IO(err, errors.ErrFileWrite, "write", msgFile.Name())
	}
	if err := msgFile.Close(); err != nil {
		return false, errors.IO(err, errors.ErrFileWrite, "close", msgFile.Name())
	}

	if _, err := g.run(ctx, dir, "commit", "--file="+msgFile.Name()); err != nil {
		return false, err
	}
	g.logger.Info().Str("dir", dir).Msg("Committed exported configuration")
	return true, nil
}

// AddInteractive lets the operator pick hunks to stage under dir.
func (g *Git) AddInteractive(ctx context.Context, dir string) error {
	args := []string{"add", "-p", "."}
	logging.LogCommand(g.logger, dir, "git", args)
	if err := g.runner.RunInteractive(ctx, dir, "git", args...); err != nil {
		return errors.Wrap(err, errors.ErrVCS, "`git add -p` failed").WithDetail("dir", dir)
	}
	return nil
}

func (g *Git) run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	logging.LogCommand(g.logger, dir, "git", args)
	out, err := g.runner.Run(ctx, dir, "git", args...)
	if err != nil {
		return out, errors.Wrapf(err, errors.ErrVCS, "`git %s` failed", args[0]).
			WithDetail("dir", dir).
			WithDetail("output", strings.TrimSpace(string(out)))
	}
	return out, nil
}
