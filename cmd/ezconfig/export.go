package ezconfig

import (
	"github.com/arthur-debert/ezconfig/pkg/commands"
	"github.com/arthur-debert/ezconfig/pkg/logging"
	"github.com/arthur-debert/ezconfig/pkg/overlay"
	"github.com/arthur-debert/ezconfig/pkg/style"
	"github.com/arthur-debert/ezconfig/pkg/ui/confirmations"
	"github.com/spf13/cobra"
)

// freshDestination is the value of a bare --destination.
const freshDestination = "<backup>"

func newExportCmd(g *globalFlags) *cobra.Command {
	var (
		add         bool
		commit      bool
		message     string
		destination string
		yes         bool
	)

	cmd := &cobra.Command{
		Use:               "export [label]",
		Aliases:           []string{"cex", "config-export"},
		Short:             MsgExportShort,
		Long:              MsgExportLong,
		Example:           MsgExportExample,
		GroupID:           "core",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: g.labelCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.export")
			ctx := cmd.Context()

			s, err := g.openSession(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			opts := commands.ExportOptions{
				Session:   s,
				Label:     labelArg(args),
				Confirmer: confirmations.Deferred(yes),
				Out:       cmd.OutOrStdout(),
				Lock:      overlay.NewFileLock(s.Config.Staging),
				Add:       add,
				Commit:    commit,
				Message:   message,
			}
			if destination == freshDestination {
				opts.Fresh = true
			} else {
				opts.Destination = destination
			}
			logger.Info().
				Str("label", opts.Label).
				Str("destination", destination).
				Bool("add", add).
				Bool("commit", commit).
				Msg("Starting export")

			result, err := commands.Export(ctx, opts)
			if err != nil {
				return err
			}
			if commit && !add {
				if result.Committed {
					style.PrintStatus(cmd.OutOrStdout(), style.StatusSuccess, MsgCommitted, result.Destination)
				} else {
					style.PrintStatus(cmd.OutOrStdout(), style.StatusInfo, MsgNothingToCommit, result.Destination)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&add, "add", false, MsgFlagAdd)
	cmd.Flags().BoolVar(&commit, "commit", false, MsgFlagCommit)
	cmd.Flags().StringVarP(&message, "message", "m", "", MsgFlagMessage)
	cmd.Flags().StringVar(&destination, "destination", "", MsgFlagDestination)
	cmd.Flags().Lookup("destination").NoOptDefVal = freshDestination
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, MsgFlagYes)
	cmd.MarkFlagsMutuallyExclusive("add", "commit")

	return cmd
}
