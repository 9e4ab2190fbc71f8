package fs_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EagleStelle/InStelle/pkg/adapters/fs"
	"github.com/EagleStelle/InStelle/pkg/core"
)

func sampleTabs() []*core.Tab {
	return []*core.Tab{
		{
			Icon: "📄",
			Notes: []*core.Note{
				{ID: "11111111-1111-1111-1111-111111111111", Title: "Groceries", Description: "milk, eggs"},
				{ID: "22222222-2222-2222-2222-222222222222", Title: "Tom & Jerry <3", Description: ""},
			},
		},
		{Icon: "/home/me/.config/InStelle/cat.png", Notes: []*core.Note{}},
	}
}

func TestJSONSerializer_RoundTrip(t *testing.T) {
	s := fs.NewJSONSerializer()

	data, err := s.Serialize(sampleTabs())
	require.NoError(t, err)

	got, err := s.Deserialize(data)
	require.NoError(t, err)
	assert.Equal(t, sampleTabs(), got)
}

func TestJSONSerializer_Schema(t *testing.T) {
	data, err := fs.NewJSONSerializer().Serialize(sampleTabs())
	require.NoError(t, err)

	assert.Contains(t, string(data), "Tom & Jerry <3", "HTML characters stay unescaped")
	assert.Contains(t, string(data), "📄")

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 2)
	assert.Equal(t, "📄", raw[0]["Icon"])

	notes, ok := raw[0]["Notes"].([]any)
	require.True(t, ok)
	first := notes[0].(map[string]any)
	assert.Equal(t, "11111111-1111-1111-1111-111111111111", first["Id"])
	assert.Equal(t, "Groceries", first["Title"])
	assert.Equal(t, "milk, eggs", first["Description"])

	empty, ok := raw[1]["Notes"].([]any)
	require.True(t, ok, "empty notes serialize as [] not null")
	assert.Empty(t, empty)
}

func TestJSONSerializer_EmptyList(t *testing.T) {
	s := fs.NewJSONSerializer()
	data, err := s.Serialize(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(string(data)))
}

func TestJSONSerializer_Deserialize(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantErr   bool
		wantTabs  int
		wantNotes int
	}{
		{name: "not json", input: "not json", wantErr: true},
		{name: "empty input", input: "", wantErr: true},
		{name: "object top level", input: `{"Icon":"x"}`, wantErr: true},
		{name: "wrong field type", input: `[{"Icon":1}]`, wantErr: true},
		{name: "null tab", input: `[null]`, wantErr: true},
		{name: "missing icon", input: `[{"Notes":[]}]`, wantErr: true},
		{name: "null icon", input: `[{"Icon":null,"Notes":[]}]`, wantErr: true},
		{name: "empty icon", input: `[{"Icon":"","Notes":[]}]`, wantTabs: 1},
		{name: "null note", input: `[{"Icon":"x","Notes":[null]}]`, wantErr: true},
		{name: "null document", input: `null`, wantTabs: 0},
		{name: "empty array", input: `[]`, wantTabs: 0},
		{name: "legacy without ids", input: `[{"Icon":"📄","Notes":[{"Title":"a","Description":"b"}]}]`, wantTabs: 1, wantNotes: 1},
		{name: "unknown fields ignored", input: `[{"Icon":"x","Color":"red","Notes":[{"Id":"1","Pinned":true}]}]`, wantTabs: 1, wantNotes: 1},
		{name: "missing notes", input: `[{"Icon":"x"}]`, wantTabs: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tabs, err := fs.NewJSONSerializer().Deserialize([]byte(tt.input))
			if tt.wantErr {
				assert.ErrorIs(t, err, core.ErrParse)
				return
			}
			require.NoError(t, err)
			require.Len(t, tabs, tt.wantTabs)
			if tt.wantTabs > 0 {
				assert.Len(t, tabs[0].Notes, tt.wantNotes)
				assert.NotNil(t, tabs[0].Notes)
			}
		})
	}
}

func TestJSONSerializer_LegacyIDDefaults(t *testing.T) {
	tabs, err := fs.NewJSONSerializer().Deserialize([]byte(`[{"Icon":"📄","Notes":[{"Title":"a","Description":"b"}]}]`))
	require.NoError(t, err)
	assert.Equal(t, "", tabs[0].Notes[0].ID)
	assert.Equal(t, "a", tabs[0].Notes[0].Title)
	assert.Equal(t, "b", tabs[0].Notes[0].Description)
}

func TestYAMLSerializer_RoundTrip(t *testing.T) {
	s := fs.NewYAMLSerializer()

	data, err := s.Serialize(sampleTabs())
	require.NoError(t, err)
	assert.Contains(t, string(data), "icon:")
	assert.Contains(t, string(data), "description:")

	got, err := s.Deserialize(data)
	require.NoError(t, err)
	assert.Equal(t, sampleTabs(), got)

	_, err = s.Deserialize([]byte("icon: [unclosed"))
	assert.ErrorIs(t, err, core.ErrParse)
}

func TestSerializerFor(t *testing.T) {
	s, ok := fs.SerializerFor("notesAppData.json")
	require.True(t, ok)
	assert.IsType(t, &fs.JSONSerializer{}, s)

	s, ok = fs.SerializerFor("export.YML")
	require.True(t, ok)
	assert.IsType(t, &fs.YAMLSerializer{}, s)

	_, ok = fs.SerializerFor("notes.csv")
	assert.False(t, ok)
}

func TestJSONSerializer_BlankIconsDefault(t *testing.T) {
	input := `[
		{"Icon":"📄","Notes":[{"Id":"a","Title":"kept","Description":""}]},
		{"Icon":"","Notes":[{"Id":"b","Title":"empty icon","Description":""}]},
		{"Icon":"   ","Notes":[]}
	]`

	tabs, err := fs.NewJSONSerializer().Deserialize([]byte(input))
	require.NoError(t, err)
	require.Len(t, tabs, 3, "one blank icon does not drop the document")

	assert.Equal(t, "📄", tabs[0].Icon)
	assert.Equal(t, core.DefaultIcon, tabs[1].Icon)
	assert.Equal(t, core.DefaultIcon, tabs[2].Icon)
	assert.Equal(t, "empty icon", tabs[1].Notes[0].Title)
}
