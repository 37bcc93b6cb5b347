package vcs

import (
	"context"
	stderrors "errors"
	"os"
	"strings"
	"testing"

	"github.com/arthur-debert/ezconfig/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRunner struct {
	mock.Mock
	messages []string
}

func (m *mockRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	if len(args) > 0 && args[0] == "commit" {
		data, err := os.ReadFile(strings.TrimPrefix(args[1], "--file="))
		if err == nil {
			m.messages = append(m.messages, string(data))
		}
	}
	ret := m.Called(dir, name, args)
	return ret.Get(0).([]byte), ret.Error(1)
}

func (m *mockRunner) RunInteractive(ctx context.Context, dir, name string, args ...string) error {
	return m.Called(dir, name, args).Error(0)
}

func isCommit(args []string) bool {
	return len(args) == 2 && args[0] == "commit" && strings.HasPrefix(args[1], "--file=")
}

func TestCommitMessage(t *testing.T) {
	assert.Equal(t, "custom", CommitMessage("custom", "table"))
	assert.Equal(t, DefaultMessage, CommitMessage("", ""))
	assert.Equal(t, "Exported configuration.\n+---+\n| x |\n", CommitMessage("", "\n+---+\n| x |\n"))
	assert.Equal(t, "Exported configuration.table", CommitMessage("", "table"))
}

func TestCommit(t *testing.T) {
	r := &mockRunner{}
	r.On("Run", "/sync", "git", []string{"status", "--porcelain", "."}).Return([]byte(" M system.site.yml\n"), nil)
	r.On("Run", "/sync", "git", []string{"add", "-A", "."}).Return([]byte{}, nil)
	r.On("Run", "/sync", "git", mock.MatchedBy(isCommit)).Return([]byte("[main abc123] Exported"), nil)

	committed, err := NewGit(r).Commit(context.Background(), "/sync", "Exported configuration.\n\ntable")
	require.NoError(t, err)
	assert.True(t, committed)
	assert.Equal(t, []string{"Exported configuration.\n\ntable"}, r.messages)
	r.AssertExpectations(t)
}

func TestCommitCleanTree(t *testing.T) {
	r := &mockRunner{}
	r.On("Run", "/sync", "git", []string{"status", "--porcelain", "."}).Return([]byte("\n"), nil)

	committed, err := NewGit(r).Commit(context.Background(), "/sync", "msg")
	require.NoError(t, err)
	assert.False(t, committed)
	r.AssertNotCalled(t, "Run", "/sync", "git", []string{"add", "-A", "."})
}

func TestCommitFailureCarriesOutput(t *testing.T) {
	r := &mockRunner{}
	r.On("Run", "/sync", "git", []string{"status", "--porcelain", "."}).Return([]byte("?? a.yml\n"), nil)
	r.On("Run", "/sync", "git", []string{"add", "-A", "."}).Return([]byte{}, nil)
	r.On("Run", "/sync", "git", mock.MatchedBy(isCommit)).
		Return([]byte("Author identity unknown\n"), stderrors.New("exit status 128"))

	_, err := NewGit(r).Commit(context.Background(), "/sync", "msg")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrVCS))
	assert.Equal(t, "Author identity unknown", errors.GetErrorDetails(err)["output"])
}

func TestStatusFailure(t *testing.T) {
	r := &mockRunner{}
	r.On("Run", "/x", "git", []string{"status", "--porcelain", "."}).
		Return([]byte("fatal: not a git repository"), stderrors.New("exit status 128"))

	_, err := NewGit(r).HasChanges(context.Background(), "/x")
	assert.True(t, errors.IsErrorCode(err, errors.ErrVCS))
}

func TestAddInteractive(t *testing.T) {
	r := &mockRunner{}
	r.On("RunInteractive", "/sync", "git", []string{"add", "-p", "."}).Return(nil)
	require.NoError(t, NewGit(r).AddInteractive(context.Background(), "/sync"))

	r = &mockRunner{}
	r.On("RunInteractive", "/sync", "git", []string{"add", "-p", "."}).Return(stderrors.New("exit 1"))
	err := NewGit(r).AddInteractive(context.Background(), "/sync")
	assert.True(t, errors.IsErrorCode(err, errors.ErrVCS))
}
