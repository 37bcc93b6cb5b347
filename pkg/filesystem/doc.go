// Package filesystem provides the filesystem abstraction used by ezconfig.
//
// Every store, the overlay stager and the directory registry reach the disk
// through FS. Production code runs on the OS filesystem, tests on an
// in-memory one; both are afero backends.
package filesystem
