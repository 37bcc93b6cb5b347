package ezconfig

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Export and review a site's live configuration"
	MsgExportShort     = "Export the live configuration to a directory"
	MsgDiffShort       = "Show what an export would change"
	MsgEditShort       = "Edit one environment-specific document"
	MsgGenConfigShort  = "Generate the site configuration file"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgAborted         = "Aborted."
	MsgCommitted       = "Committed the export in %s."
	MsgNothingToCommit = "Nothing to commit in %s."
	MsgSaved           = "Saved %s."
	MsgUnchanged       = "%s is unchanged."
	MsgConfigWritten   = "Wrote %s."
	MsgConfigExists    = "%s already exists, left untouched."
	MsgVersionFormat   = "ezconfig version %s\n  commit: %s\n  built:  %s\n"

	// Error messages
	MsgErrorPrefix     = "Error: "
	MsgErrNotTerminal  = "editing needs a terminal"
	MsgErrBadOverride  = "invalid --set value %q, expected key=value"
	MsgErrNoSubcommand = "no command specified"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagRoot        = "Site root (default: $EZCONFIG_ROOT or the current directory)"
	MsgFlagSet         = "Override a configuration key, e.g. --set live.driver=sqlite3"
	MsgFlagAdd         = "Run `git add -p` in the destination after exporting"
	MsgFlagCommit      = "Commit the destination with git after exporting"
	MsgFlagMessage     = "Commit message (default: a summary of the changes)"
	MsgFlagDestination = "Export to this path; without a value, to a new backup directory"
	MsgFlagYes         = "Do not ask for confirmation"
	MsgFlagDetails     = "Show a unified diff for every changed document"
	MsgFlagFormat      = "Output format: auto, term, text or json"
	MsgFlagDir         = "Directory label to write to (skips the prompt)"
	MsgFlagWrite       = "Write ezconfig.toml to the site root instead of stdout"
	MsgFlagResolved    = "Print the effective configuration instead of the defaults"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/export-long.txt
	msgExportLongRaw string
	MsgExportLong    = strings.TrimSpace(msgExportLongRaw)

	//go:embed msgs/export-example.txt
	msgExportExampleRaw string
	MsgExportExample    = strings.TrimRight(msgExportExampleRaw, "\n")

	//go:embed msgs/diff-long.txt
	msgDiffLongRaw string
	MsgDiffLong    = strings.TrimSpace(msgDiffLongRaw)

	//go:embed msgs/edit-long.txt
	msgEditLongRaw string
	MsgEditLong    = strings.TrimSpace(msgEditLongRaw)

	//go:embed msgs/genconfig-long.txt
	msgGenConfigLongRaw string
	MsgGenConfigLong    = strings.TrimSpace(msgGenConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
