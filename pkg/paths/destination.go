package paths

import (
	"path/filepath"
	"sort"
	"time"

	"github.com/arthur-debert/ezconfig/pkg/errors"
	"github.com/arthur-debert/ezconfig/pkg/filesystem"
)

const (
	// DefaultLabel is the directory label used when none is given
	DefaultLabel = "sync"

	// BackupPrefix starts the name of a fresh export directory
	BackupPrefix = "config-export-"

	// BackupTimeFormat is the timestamp suffix, YYYYmmddHHMMSS
	BackupTimeFormat = "20060102150405"
)

// DestinationRequest describes where an export should go.
type DestinationRequest struct {
	// Label selects one of Directories; empty means DefaultLabel.
	Label string
	// Path is an explicit destination and wins over Label.
	Path string
	// Fresh asks for a new timestamped directory under BackupDir and wins
	// over both Path and Label.
	Fresh bool

	Directories map[string]string
	BackupDir   string
	Now         time.Time
}

// ResolveDestination returns the absolute export destination for req. A fresh
// backup directory is created; other destinations are only resolved.
func ResolveDestination(fsys filesystem.FS, req DestinationRequest) (string, error) {
	switch {
	case req.Fresh:
		if req.BackupDir == "" {
			return "", errors.New(errors.ErrDestination, "no backup directory configured")
		}
		now := req.Now
		if now.IsZero() {
			now = time.Now()
		}
		dest := filepath.Join(req.BackupDir, BackupPrefix+now.Format(BackupTimeFormat))
		if err := filesystem.EnsureDir(fsys, dest); err != nil {
			return "", err
		}
		return dest, nil

	case req.Path != "":
		abs, err := filepath.Abs(ExpandHome(req.Path))
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrDestination, "invalid destination %q", req.Path)
		}
		return abs, nil
	}

	label := req.Label
	if label == "" {
		label = DefaultLabel
	}
	dir, ok := req.Directories[label]
	if !ok || dir == "" {
		return "", errors.Newf(errors.ErrDestination, "unknown configuration directory %q", label).
			WithDetail("labels", labels(req.Directories))
	}
	return dir, nil
}

func labels(dirs map[string]string) []string {
	out := make([]string, 0, len(dirs))
	for l := range dirs {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}
