package fs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/EagleStelle/InStelle/pkg/core"
)

// Serializer converts the tab list to and from a document format.
type Serializer interface {
	// Serialize converts the tabs to bytes.
	Serialize(tabs []*core.Tab) ([]byte, error)
	// Deserialize parses a document. Errors wrap core.ErrParse.
	Deserialize(data []byte) ([]*core.Tab, error)
}

// DefaultSerializers returns the standard set of serializers keyed by extension.
func DefaultSerializers() map[string]Serializer {
	return map[string]Serializer{
		".json": NewJSONSerializer(),
		".yaml": NewYAMLSerializer(),
		".yml":  NewYAMLSerializer(),
	}
}

// SerializerFor picks a default serializer from the extension of filename.
func SerializerFor(filename string) (Serializer, bool) {
	s, ok := DefaultSerializers()[strings.ToLower(filepath.Ext(filename))]
	return s, ok
}

// tabRecord and noteRecord are the persisted shapes.
// JSON keys are PascalCase to stay readable by documents written by earlier
// releases; Id is absent in the oldest of those. Icon is a pointer so that a
// null or missing icon can be told apart from an empty one.
type tabRecord struct {
	Icon  *string       `json:"Icon" yaml:"icon"`
	Notes []*noteRecord `json:"Notes" yaml:"notes"`
}

type noteRecord struct {
	ID          string `json:"Id" yaml:"id"`
	Title       string `json:"Title" yaml:"title"`
	Description string `json:"Description" yaml:"description"`
}

func toRecords(tabs []*core.Tab) []*tabRecord {
	records := make([]*tabRecord, 0, len(tabs))
	for _, t := range tabs {
		icon := t.Icon
		rec := &tabRecord{Icon: &icon, Notes: make([]*noteRecord, 0, len(t.Notes))}
		for _, n := range t.Notes {
			rec.Notes = append(rec.Notes, &noteRecord{
				ID:          n.ID,
				Title:       n.Title,
				Description: n.Description,
			})
		}
		records = append(records, rec)
	}
	return records
}

func fromRecords(records []*tabRecord) ([]*core.Tab, error) {
	tabs := make([]*core.Tab, 0, len(records))
	for i, rec := range records {
		if rec == nil {
			return nil, fmt.Errorf("%w: tab %d is null", core.ErrParse, i)
		}
		if rec.Icon == nil {
			return nil, fmt.Errorf("%w: tab %d has no icon", core.ErrParse, i)
		}
		icon := *rec.Icon
		// Older releases saved whatever the icon box held, including nothing.
		if strings.TrimSpace(icon) == "" {
			icon = core.DefaultIcon
		}
		tab, err := core.NewTab(icon)
		if err != nil {
			return nil, fmt.Errorf("%w: tab %d: %v", core.ErrParse, i, err)
		}
		for j, n := range rec.Notes {
			if n == nil {
				return nil, fmt.Errorf("%w: tab %d note %d is null", core.ErrParse, i, j)
			}
			tab.Notes = append(tab.Notes, &core.Note{
				ID:          n.ID,
				Title:       n.Title,
				Description: n.Description,
			})
		}
		tabs = append(tabs, tab)
	}
	return tabs, nil
}

// --- JSON Serializer ---

// JSONSerializer handles the canonical notes document.
type JSONSerializer struct {
	// Indent is the per-level indentation. Empty writes compact JSON.
	Indent string
}

// NewJSONSerializer creates a JSON serializer with two-space indentation.
func NewJSONSerializer() *JSONSerializer {
	return &JSONSerializer{Indent: "  "}
}

func (s *JSONSerializer) Serialize(tabs []*core.Tab) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	// Titles commonly contain '&' and '<'.
	enc.SetEscapeHTML(false)
	if s.Indent != "" {
		enc.SetIndent("", s.Indent)
	}
	if err := enc.Encode(toRecords(tabs)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *JSONSerializer) Deserialize(data []byte) ([]*core.Tab, error) {
	var records []*tabRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: invalid json: %v", core.ErrParse, err)
	}
	return fromRecords(records)
}

// --- YAML Serializer ---

// YAMLSerializer renders the same structure as YAML with lowercase keys.
type YAMLSerializer struct{}

// NewYAMLSerializer creates a new YAML serializer.
func NewYAMLSerializer() *YAMLSerializer {
	return &YAMLSerializer{}
}

func (s *YAMLSerializer) Serialize(tabs []*core.Tab) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(toRecords(tabs)); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *YAMLSerializer) Deserialize(data []byte) ([]*core.Tab, error) {
	var records []*tabRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: invalid yaml: %v", core.ErrParse, err)
	}
	return fromRecords(records)
}
