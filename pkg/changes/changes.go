// Package changes computes the structural differences between the live store
// and a target store and renders them for review.
package changes

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/arthur-debert/ezconfig/pkg/document"
	"github.com/arthur-debert/ezconfig/pkg/store"
)

// Kind is the operation needed to bring one target document in line with live.
type Kind string

const (
	Create Kind = "create"
	Update Kind = "update"
	Delete Kind = "delete"
	Rename Kind = "rename"
)

// RenameSeparator joins the old and new names of a renamed document.
const RenameSeparator = "::"

var kindOrder = map[Kind]int{Create: 0, Update: 1, Delete: 2, Rename: 3}

// Kinds lists every kind in rendering order.
func Kinds() []Kind {
	return []Kind{Create, Update, Delete, Rename}
}

// Entry is one change for one document in one collection.
type Entry struct {
	Collection string
	Name       string
	Kind       Kind

	// OldName and NewName are set for renames; Name is "old::new".
	OldName string
	NewName string

	// Live is nil for deletes, Target is nil for creates.
	Live   *document.Document
	Target *document.Document
}

// ChangeSet is the ordered list of changes that turns target into live.
// Entries are sorted by collection (default first), then kind, then name.
type ChangeSet struct {
	Entries []Entry
}

// HasChanges reports whether there is anything to apply.
func (c *ChangeSet) HasChanges() bool {
	return c != nil && len(c.Entries) > 0
}

// Collections returns the collections with at least one change, in order.
func (c *ChangeSet) Collections() []string {
	var out []string
	seen := make(map[string]bool)
	for _, e := range c.Entries {
		if !seen[e.Collection] {
			seen[e.Collection] = true
			out = append(out, e.Collection)
		}
	}
	return out
}

// Count returns the number of entries of kind.
func (c *ChangeSet) Count(kind Kind) int {
	n := 0
	for _, e := range c.Entries {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Summary is a one-line count of changes, e.g. "1 create, 2 update".
func (c *ChangeSet) Summary() string {
	var parts []string
	for _, k := range Kinds() {
		if n := c.Count(k); n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, k))
		}
	}
	if len(parts) == 0 {
		return "no changes"
	}
	return strings.Join(parts, ", ")
}

// Compute diffs every collection present in either store.
func Compute(ctx context.Context, live, target store.Store) (*ChangeSet, error) {
	collections, err := unionCollections(ctx, live, target)
	if err != nil {
		return nil, err
	}

	cs := &ChangeSet{}
	for _, collection := range collections {
		liveDocs, err := live.WithCollection(collection).ReadAll(ctx)
		if err != nil {
			return nil, err
		}
		targetDocs, err := target.WithCollection(collection).ReadAll(ctx)
		if err != nil {
			return nil, err
		}
		cs.Entries = append(cs.Entries, diffCollection(collection, liveDocs, targetDocs)...)
	}
	return cs, nil
}

func unionCollections(ctx context.Context, live, target store.Store) ([]string, error) {
	seen := map[string]bool{store.DefaultCollection: true}
	for _, s := range []store.Store{live, target} {
		named, err := s.ListCollections(ctx)
		if err != nil {
			return nil, err
		}
		for _, c := range named {
			seen[c] = true
		}
	}
	var named []string
	for c := range seen {
		if c != store.DefaultCollection {
			named = append(named, c)
		}
	}
	sort.Strings(named)
	return append([]string{store.DefaultCollection}, named...), nil
}

func diffCollection(collection string, live, target map[string]*document.Document) []Entry {
	var creates, deletes, entries []Entry

	for _, name := range store.SortedNames(live) {
		t, ok := target[name]
		switch {
		case !ok:
			creates = append(creates, Entry{Collection: collection, Name: name, Kind: Create, Live: live[name]})
		case !live[name].Equal(t):
			entries = append(entries, Entry{Collection: collection, Name: name, Kind: Update, Live: live[name], Target: t})
		}
	}
	for _, name := range store.SortedNames(target) {
		if _, ok := live[name]; !ok {
			deletes = append(deletes, Entry{Collection: collection, Name: name, Kind: Delete, Target: target[name]})
		}
	}

	creates, deletes, renames := pairRenames(collection, creates, deletes)
	entries = append(entries, creates...)
	entries = append(entries, deletes...)
	entries = append(entries, renames...)

	sort.SliceStable(entries, func(i, j int) bool {
		if kindOrder[entries[i].Kind] != kindOrder[entries[j].Kind] {
			return kindOrder[entries[i].Kind] < kindOrder[entries[j].Kind]
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// pairRenames collapses a delete and a create that share a top-level uuid.
func pairRenames(collection string, creates, deletes []Entry) ([]Entry, []Entry, []Entry) {
	byUUID := make(map[string]int)
	for i, c := range creates {
		if id := uuidOf(c.Live); id != "" {
			if _, dup := byUUID[id]; !dup {
				byUUID[id] = i
			}
		}
	}
	if len(byUUID) == 0 {
		return creates, deletes, nil
	}

	paired := make(map[int]bool)
	var renames, keptDeletes []Entry
	for _, d := range deletes {
		id := uuidOf(d.Target)
		i, ok := byUUID[id]
		if id == "" || !ok || paired[i] {
			keptDeletes = append(keptDeletes, d)
			continue
		}
		paired[i] = true
		c := creates[i]
		renames = append(renames, Entry{
			Collection: collection,
			Name:       d.Name + RenameSeparator + c.Name,
			Kind:       Rename,
			OldName:    d.Name,
			NewName:    c.Name,
			Live:       c.Live,
			Target:     d.Target,
		})
	}

	var keptCreates []Entry
	for i, c := range creates {
		if !paired[i] {
			keptCreates = append(keptCreates, c)
		}
	}
	return keptCreates, keptDeletes, renames
}

func uuidOf(doc *document.Document) string {
	if doc == nil {
		return ""
	}
	var v struct {
		UUID string `yaml:"uuid"`
	}
	if err := doc.Decode(&v); err != nil {
		return ""
	}
	return v.UUID
}
