package ezconfig

import (
	"github.com/arthur-debert/ezconfig/pkg/commands"
	"github.com/arthur-debert/ezconfig/pkg/reconcile"
	"github.com/arthur-debert/ezconfig/pkg/ui"
	"github.com/spf13/cobra"
)

func newDiffCmd(g *globalFlags) *cobra.Command {
	var (
		destination string
		details     bool
		format      string
	)

	cmd := &cobra.Command{
		Use:               "diff [label]",
		Short:             MsgDiffShort,
		Long:              MsgDiffLong,
		GroupID:           "core",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: g.labelCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := ui.ParseFormat(format)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			s, err := g.openSession(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			result, err := commands.Diff(ctx, commands.DiffOptions{
				Session:     s,
				Label:       labelArg(args),
				Destination: destination,
				Details:     details,
			})
			if err != nil {
				return err
			}

			renderer, err := ui.NewRenderer(f, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			run := result.Run
			return renderer.RenderDiff(ui.NewDiffReport(
				result.Destination, run.Changes, run.Preview != reconcile.NoBaseline, result.Details))
		},
	}

	cmd.Flags().StringVar(&destination, "destination", "", MsgFlagDestination)
	cmd.Flags().BoolVar(&details, "details", false, MsgFlagDetails)
	cmd.Flags().StringVar(&format, "format", "auto", MsgFlagFormat)
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(ui.Formats, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}
