// Package edit hand-edits one environment-specific document in the active
// overlay directory or a per-environment directory.
package edit

import (
	"context"
	"fmt"

	"github.com/arthur-debert/ezconfig/pkg/commands/session"
	"github.com/arthur-debert/ezconfig/pkg/editor"
	"github.com/arthur-debert/ezconfig/pkg/errors"
	"github.com/arthur-debert/ezconfig/pkg/logging"
	"github.com/arthur-debert/ezconfig/pkg/ui/confirmations"
)

const (
	MsgPickDocument  = "Which configuration document do you want to edit?"
	MsgPickDirectory = "Which directory should it be written to?"
	MsgEditDocument  = "Edit %s (%s)"
)

// EditOptions holds options for the edit command.
type EditOptions struct {
	Session  *session.Session
	Prompter confirmations.Prompter

	// Document and Dir skip the matching prompt when set. Dir is a label.
	Document string
	Dir      string
}

// EditResult describes the edited document.
type EditResult struct {
	Draft *editor.Draft
	// Saved is false when an existing file came back unchanged.
	Saved bool
}

// Edit picks a document listed in environment.ignore and a directory, opens
// the document in an editor and writes it back.
func Edit(ctx context.Context, opts EditOptions) (*EditResult, error) {
	logger := logging.GetLogger("commands.edit")
	s := opts.Session
	if s == nil || opts.Prompter == nil {
		return nil, errors.New(errors.ErrInvalidInput, "a session and a prompter are required")
	}

	choices := editor.Choices(s.Env.Ignore)
	if len(choices) == 0 {
		return nil, errors.New(errors.ErrNotFound, "no documents are listed in environment.ignore")
	}
	name, err := pick(opts.Prompter, MsgPickDocument, opts.Document, choices)
	if err != nil {
		return nil, err
	}

	ed := editor.New(s.FS, s.Live, s.Registry(), s.Env.Config)
	dirs, err := ed.Dirs()
	if err != nil {
		return nil, err
	}
	options := make([]string, len(dirs))
	byOption := make(map[string]editor.Dir, len(dirs))
	preset := ""
	for i, d := range dirs {
		options[i] = fmt.Sprintf("%s (%s)", d.Label, d.Path)
		byOption[options[i]] = d
		if d.Label == opts.Dir {
			preset = options[i]
		}
	}
	if opts.Dir != "" && preset == "" {
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown directory %q", opts.Dir)
	}
	choice, err := pick(opts.Prompter, MsgPickDirectory, preset, options)
	if err != nil {
		return nil, err
	}

	draft, err := ed.Load(ctx, name, byOption[choice])
	if err != nil {
		return nil, err
	}
	edited, err := opts.Prompter.Edit(fmt.Sprintf(MsgEditDocument, name, draft.Path), draft.Content)
	if err != nil {
		return nil, err
	}

	result := &EditResult{Draft: draft}
	if draft.Exists && edited == draft.Content {
		logger.Info().Str("path", draft.Path).Msg("Document unchanged")
		return result, nil
	}
	if err := ed.Save(draft, edited); err != nil {
		return result, err
	}
	draft.Content = edited
	result.Saved = true
	return result, nil
}

func pick(p confirmations.Prompter, message, preset string, options []string) (string, error) {
	if preset == "" {
		return p.Select(message, options)
	}
	for _, o := range options {
		if o == preset {
			return preset, nil
		}
	}
	return "", errors.Newf(errors.ErrInvalidInput, "%q is not one of the options", preset)
}
