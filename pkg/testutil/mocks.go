package testutil

import (
	"context"
)

// MockCommitter is a mock implementation of the export.Committer interface
// for testing. It records every call.
type MockCommitter struct {
	CommitFunc         func(ctx context.Context, dir, message string) (bool, error)
	AddInteractiveFunc func(ctx context.Context, dir string) error

	Commits []CommitCall
	Adds    []string
}

// CommitCall is one recorded Commit.
type CommitCall struct {
	Dir     string
	Message string
}

// Commit records the call and runs CommitFunc, reporting a commit by default.
func (m *MockCommitter) Commit(ctx context.Context, dir, message string) (bool, error) {
	m.Commits = append(m.Commits, CommitCall{Dir: dir, Message: message})
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx, dir, message)
	}
	return true, nil
}

// AddInteractive records the call and runs AddInteractiveFunc.
func (m *MockCommitter) AddInteractive(ctx context.Context, dir string) error {
	m.Adds = append(m.Adds, dir)
	if m.AddInteractiveFunc != nil {
		return m.AddInteractiveFunc(ctx, dir)
	}
	return nil
}
