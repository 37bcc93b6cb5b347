package ezconfig

import (
	"context"
	"embed"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/arthur-debert/ezconfig/internal/version"
	"github.com/arthur-debert/ezconfig/pkg/cobrax/topics"
	"github.com/arthur-debert/ezconfig/pkg/commands"
	"github.com/arthur-debert/ezconfig/pkg/config"
	"github.com/arthur-debert/ezconfig/pkg/errors"
	"github.com/arthur-debert/ezconfig/pkg/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics
var topicFiles embed.FS

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	verbosity int
	root      string
	set       []string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "ezconfig",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(g.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoSubcommand)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&g.root, "root", "", MsgFlagRoot)
	rootCmd.PersistentFlags().StringArrayVar(&g.set, "set", nil, MsgFlagSet)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newExportCmd(g))
	rootCmd.AddCommand(newDiffCmd(g))
	rootCmd.AddCommand(newEditCmd(g))
	rootCmd.AddCommand(newGenConfigCmd(g))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	initHelpTopics(rootCmd)

	return rootCmd
}

// initHelpTopics adds `ezconfig help <topic>`. Markdown topics are rendered
// with glamour on a terminal.
func initHelpTopics(rootCmd *cobra.Command) {
	var renderer topics.Renderer = &topics.PlainRenderer{}
	if isTerminal(os.Stdout) {
		renderer = topics.NewGlamourRenderer()
	}
	sub, err := fs.Sub(topicFiles, "topics")
	if err == nil {
		_, err = topics.Initialize(rootCmd, sub, topics.Options{Renderer: renderer})
	}
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}
}

// loadConfig loads the site configuration with the --root and --set flags
// applied.
func (g *globalFlags) loadConfig() (*config.Config, error) {
	overrides, err := parseOverrides(g.set)
	if err != nil {
		return nil, err
	}
	return config.Load(config.Options{Root: g.root, Overrides: overrides})
}

// openSession loads the configuration and opens the live store.
func (g *globalFlags) openSession(ctx context.Context) (*commands.Session, error) {
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, err
	}
	return commands.OpenSession(ctx, commands.SessionOptions{Config: cfg})
}

func parseOverrides(values []string) (map[string]interface{}, error) {
	if len(values) == 0 {
		return nil, nil
	}
	out := make(map[string]interface{}, len(values))
	for _, v := range values {
		key, value, ok := strings.Cut(v, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, MsgErrBadOverride, v)
		}
		out[key] = value
	}
	return out, nil
}

// labelCompletion completes the configured directory labels.
func (g *globalFlags) labelCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var labels []string
	for label := range cfg.Directories {
		if strings.HasPrefix(label, toComplete) {
			labels = append(labels, label)
		}
	}
	sort.Strings(labels)
	return labels, cobra.ShellCompDirectiveNoFileComp
}

func labelArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
