// Package paths provides centralized path handling for ezconfig.
//
// It resolves the site root, the XDG locations used for the staging area and
// export backups, and the destination directory of an export.
//
// # Environment Variables
//
//   - EZCONFIG_ROOT: site root (default: the current directory)
//   - XDG_CACHE_HOME: staging lives in $XDG_CACHE_HOME/ezconfig/staging
//   - XDG_DATA_HOME: backups live in $XDG_DATA_HOME/ezconfig/backups
//
// # Destinations
//
// An export writes into one of three places:
//
//   - a configured directory, selected by label (default "sync")
//   - an explicit path given with --destination
//   - a fresh timestamped directory under the backup directory, when
//     --destination is given without a value
//
// ValidateDestination runs before anything is staged or written.
package paths
