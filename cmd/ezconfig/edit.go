package ezconfig

import (
	"os"

	"github.com/arthur-debert/ezconfig/pkg/commands"
	"github.com/arthur-debert/ezconfig/pkg/errors"
	"github.com/arthur-debert/ezconfig/pkg/style"
	"github.com/arthur-debert/ezconfig/pkg/ui/confirmations"
	"github.com/spf13/cobra"
)

func newEditCmd(g *globalFlags) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:     "edit [document]",
		Short:   MsgEditShort,
		Long:    MsgEditLong,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmations.IsInteractive(os.Stdin) {
				return errors.New(errors.ErrInvalidInput, MsgErrNotTerminal)
			}
			ctx := cmd.Context()
			s, err := g.openSession(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			result, err := commands.Edit(ctx, commands.EditOptions{
				Session:  s,
				Prompter: &confirmations.SurveyPrompter{In: os.Stdin, Out: os.Stdout, Err: os.Stderr},
				Document: labelArg(args),
				Dir:      dir,
			})
			if err != nil {
				return err
			}
			if result.Saved {
				style.PrintStatus(cmd.OutOrStdout(), style.StatusSuccess, MsgSaved, result.Draft.Path)
			} else {
				style.PrintStatus(cmd.OutOrStdout(), style.StatusInfo, MsgUnchanged, result.Draft.Path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", MsgFlagDir)

	return cmd
}
