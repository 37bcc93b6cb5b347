// Package testutil provides utilities for testing ezconfig components.
//
// Key components:
//   - TestEnvironment: a site with a sync directory, an active overlay
//     directory, a staging area and a live store, isolated per test
//   - MockCommitter: func-field stand-in for the git committer
//   - file assertions working on any filesystem.FS
//
// Usage guidelines:
//   - most tests should use EnvMemoryOnly for speed and isolation
//   - EnvIsolated uses a temp directory on disk, for code that needs real
//     files such as the staging lock
//   - all test data should be defined inline, not in external files
package testutil
