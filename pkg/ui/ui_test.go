package ui_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/arthur-debert/ezconfig/pkg/changes"
	"github.com/arthur-debert/ezconfig/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleChanges() *changes.ChangeSet {
	return &changes.ChangeSet{Entries: []changes.Entry{
		{Collection: "", Name: "system.site", Kind: changes.Update},
		{Collection: "", Name: "old.view::new.view", Kind: changes.Rename, OldName: "old.view", NewName: "new.view"},
		{Collection: "language.fr", Name: "node.settings", Kind: changes.Create},
	}}
}

func TestNewRenderer(t *testing.T) {
	for _, f := range []ui.Format{ui.FormatAuto, ui.FormatTerminal, ui.FormatText, ui.FormatJSON} {
		t.Run(f.String(), func(t *testing.T) {
			r, err := ui.NewRenderer(f, &bytes.Buffer{})
			require.NoError(t, err)
			assert.NotNil(t, r)
		})
	}

	r, err := ui.NewRenderer(ui.Format(999), &bytes.Buffer{})
	assert.Error(t, err)
	assert.Nil(t, r)
}

func TestNewDiffReport(t *testing.T) {
	report := ui.NewDiffReport("/site/config/sync", sampleChanges(), true, "")
	assert.True(t, report.HasChanges())
	assert.Equal(t, "1 create, 1 update, 1 rename", report.Summary)
	require.Len(t, report.Changes, 3)
	assert.Equal(t, "new.view", report.Changes[1].NewName)

	empty := ui.NewDiffReport("/site/config/sync", nil, false, "")
	assert.False(t, empty.HasChanges())
	assert.Equal(t, "no changes", empty.Summary)
	assert.NotNil(t, empty.Changes)
}

func TestTextRenderer(t *testing.T) {
	tests := []struct {
		name     string
		report   ui.DiffReport
		contains []string
	}{
		{
			name:     "no baseline",
			report:   ui.NewDiffReport("/dest", nil, false, ""),
			contains: []string{ui.MsgNoBaseline},
		},
		{
			name:     "identical",
			report:   ui.NewDiffReport("/dest", &changes.ChangeSet{}, true, ""),
			contains: []string{"identical to the configuration in /dest"},
		},
		{
			name:     "changes with details",
			report:   ui.NewDiffReport("/dest", sampleChanges(), true, "-name: Old\n+name: New"),
			contains: []string{"Differences of the active config to /dest:", "system.site", "language.fr", "rename", "+name: New"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			r, err := ui.NewRenderer(ui.FormatText, &buf)
			require.NoError(t, err)
			require.NoError(t, r.RenderDiff(tt.report))

			out := buf.String()
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			assert.NotContains(t, out, "\x1b[")
		})
	}
}

func TestTerminalRenderer(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatTerminal, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderDiff(ui.NewDiffReport("/dest", sampleChanges(), true, "")))
	assert.Contains(t, buf.String(), "node.settings")

	buf.Reset()
	require.NoError(t, r.RenderMessage("hello"))
	assert.Contains(t, buf.String(), "hello")
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatJSON, &buf)
	require.NoError(t, err)
	require.NoError(t, r.RenderDiff(ui.NewDiffReport("/dest", sampleChanges(), true, "")))

	var decoded struct {
		Destination string `json:"destination"`
		Baseline    bool   `json:"baseline"`
		Summary     string `json:"summary"`
		Changes     []struct {
			Collection string `json:"collection"`
			Name       string `json:"name"`
			Kind       string `json:"kind"`
			OldName    string `json:"old_name"`
		} `json:"changes"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "/dest", decoded.Destination)
	assert.True(t, decoded.Baseline)
	require.Len(t, decoded.Changes, 3)
	assert.Equal(t, "update", decoded.Changes[0].Kind)
	assert.Equal(t, "old.view", decoded.Changes[1].OldName)
	assert.Equal(t, "language.fr", decoded.Changes[2].Collection)
	assert.NotContains(t, buf.String(), "details")

	buf.Reset()
	require.NoError(t, r.RenderMessage("done"))
	assert.JSONEq(t, `{"message":"done"}`, buf.String())
}
