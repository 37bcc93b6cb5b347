package ezconfig

import (
	"fmt"

	"github.com/arthur-debert/ezconfig/internal/version"
	"github.com/arthur-debert/ezconfig/pkg/commands"
	"github.com/arthur-debert/ezconfig/pkg/config"
	"github.com/arthur-debert/ezconfig/pkg/paths"
	"github.com/arthur-debert/ezconfig/pkg/style"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newGenConfigCmd(g *globalFlags) *cobra.Command {
	var (
		write    bool
		resolved bool
	)

	cmd := &cobra.Command{
		Use:     "gen-config",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := paths.Root(g.root)
			if err != nil {
				return err
			}
			opts := commands.GenConfigOptions{Root: root, Write: write}
			if resolved {
				var cfg *config.Config
				if cfg, err = g.loadConfig(); err != nil {
					return err
				}
				opts.Resolved = cfg
			}

			result, err := commands.GenConfig(opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !write {
				_, _ = fmt.Fprint(out, result.ConfigContent)
				return nil
			}
			if len(result.FilesWritten) == 0 {
				style.PrintStatus(out, style.StatusWarning, MsgConfigExists, commands.ConfigFileName)
				return nil
			}
			for _, path := range result.FilesWritten {
				style.PrintStatus(out, style.StatusSuccess, MsgConfigWritten, path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	cmd.Flags().BoolVar(&resolved, "resolved", false, MsgFlagResolved)

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			var err error
			switch args[0] {
			case "bash":
				err = cmd.Root().GenBashCompletion(out)
			case "zsh":
				err = cmd.Root().GenZshCompletion(out)
			case "fish":
				err = cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				err = cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			if err != nil {
				log.Error().Err(err).Str("shell", args[0]).Msg("Failed to generate completion")
			}
			return err
		},
	}
}
