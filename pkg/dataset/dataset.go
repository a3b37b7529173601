// Package dataset loads settlement and corridor lists from files, object
// storage and Postgres, and hands them to the planarity analyzer.
package dataset

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/dd0wney/corridor-planarity/pkg/planarity"
	"github.com/dd0wney/corridor-planarity/pkg/validation"
	"gopkg.in/yaml.v3"
)

// Format identifies a dataset encoding
type Format string

const (
	FormatJSONL Format = "jsonl"
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
)

// SnappySuffix marks a snappy-compressed dataset
const SnappySuffix = ".sz"

// maxLineSize bounds a single JSON Lines record
const maxLineSize = 1 << 20

// ParseFormat accepts the names used in configuration and on the command line
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "jsonl", "ndjson":
		return FormatJSONL, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// DetectFormat infers the format from a file name or object key. The
// compressed result is true when the name carries the snappy suffix.
func DetectFormat(name string) (format Format, compressed bool, err error) {
	base := strings.ToLower(name)
	if strings.HasSuffix(base, SnappySuffix) {
		compressed = true
		base = strings.TrimSuffix(base, SnappySuffix)
	}
	ext := strings.TrimPrefix(path.Ext(base), ".")
	if ext == "" {
		return "", compressed, fmt.Errorf("%w: cannot infer format of %q", ErrUnsupportedFormat, name)
	}
	format, err = ParseFormat(ext)
	return format, compressed, err
}

// Dataset is a canonicalized settlement and corridor list
type Dataset struct {
	Source      string
	Settlements []string
	Corridors   []planarity.Edge

	// DuplicateSettlements counts repeated identifiers that were skipped
	DuplicateSettlements int
}

// NodeCount returns the number of distinct settlements
func (d *Dataset) NodeCount() int { return len(d.Settlements) }

// EdgeCount returns the number of corridor records, before normalization
func (d *Dataset) EdgeCount() int { return len(d.Corridors) }

// Settlement is one settlement record. In YAML and JSON documents a bare
// string is accepted as shorthand for {id: ...}.
type Settlement struct {
	ID   string `json:"id" yaml:"id" validate:"identifier"`
	Name string `json:"name,omitempty" yaml:"name,omitempty" validate:"max=256"`
}

// UnmarshalYAML accepts a scalar or a mapping
func (s *Settlement) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		s.ID = node.Value
		return nil
	}
	type plain Settlement
	return node.Decode((*plain)(s))
}

// UnmarshalJSON accepts a string or an object
func (s *Settlement) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &s.ID)
	}
	type plain Settlement
	return json.Unmarshal(data, (*plain)(s))
}

// Corridor is one corridor record between two settlements
type Corridor struct {
	From   string `json:"from" yaml:"from" validate:"identifier"`
	To     string `json:"to" yaml:"to" validate:"identifier"`
	Medium string `json:"medium,omitempty" yaml:"medium,omitempty" validate:"max=64"`
}

// Document is the YAML and JSON dataset layout
type Document struct {
	Settlements []Settlement `json:"settlements" yaml:"settlements"`
	Corridors   []Corridor   `json:"corridors" yaml:"corridors"`
}

// lineRecord is one JSON Lines record
type lineRecord struct {
	Kind   string `json:"kind" validate:"required,oneof=settlement corridor"`
	ID     string `json:"id,omitempty"`
	Name   string `json:"name,omitempty"`
	From   string `json:"from,omitempty"`
	To     string `json:"to,omitempty"`
	Medium string `json:"medium,omitempty"`
}

// Decode reads a dataset in the given format. Identifiers are trimmed and
// repeated settlements keep their first position.
func Decode(r io.Reader, format Format) (*Dataset, error) {
	return decode(r, format, string(format))
}

func decode(r io.Reader, format Format, source string) (*Dataset, error) {
	b := newBuilder(source)

	switch format {
	case FormatJSONL:
		if err := b.readLines(r); err != nil {
			return nil, err
		}
	case FormatYAML, FormatJSON:
		doc, err := readDocument(r, format)
		if err != nil {
			return nil, newLoadError("decode", source, 0, err)
		}
		if err := b.addDocument(doc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	return b.finish()
}

func readDocument(r io.Reader, format Format) (*Document, error) {
	var doc Document
	var err error
	if format == FormatYAML {
		err = yaml.NewDecoder(r).Decode(&doc)
	} else {
		err = json.NewDecoder(r).Decode(&doc)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &doc, nil
}

// builder accumulates canonical records
type builder struct {
	ds   *Dataset
	seen mapset.Set[string]
}

func newBuilder(source string) *builder {
	return &builder{
		ds:   &Dataset{Source: source},
		seen: mapset.NewThreadUnsafeSet[string](),
	}
}

func (b *builder) readLines(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}

		var rec lineRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return newLoadError("decode", b.ds.Source, line, err)
		}
		rec.Kind = strings.TrimSpace(rec.Kind)
		if err := validation.ValidateStruct(&rec); err != nil {
			return newLoadError("decode", b.ds.Source, line, fmt.Errorf("%w: %w", ErrInvalidRecord, err))
		}

		var err error
		if rec.Kind == "settlement" {
			err = b.addSettlement(Settlement{ID: rec.ID, Name: rec.Name})
		} else {
			err = b.addCorridor(Corridor{From: rec.From, To: rec.To, Medium: rec.Medium})
		}
		if err != nil {
			return newLoadError("decode", b.ds.Source, line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return newLoadError("read", b.ds.Source, line, err)
	}
	return nil
}

func (b *builder) addDocument(doc *Document) error {
	for i, s := range doc.Settlements {
		if err := b.addSettlement(s); err != nil {
			return newLoadError("decode", b.ds.Source+" settlements", i+1, err)
		}
	}
	for i, c := range doc.Corridors {
		if err := b.addCorridor(c); err != nil {
			return newLoadError("decode", b.ds.Source+" corridors", i+1, err)
		}
	}
	return nil
}

func (b *builder) addSettlement(s Settlement) error {
	s.ID = strings.TrimSpace(s.ID)
	if err := validation.ValidateStruct(&s); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	if !b.seen.Add(s.ID) {
		b.ds.DuplicateSettlements++
		return nil
	}
	b.ds.Settlements = append(b.ds.Settlements, s.ID)
	return nil
}

// addCorridor keeps corridors whose endpoints are unknown; the graph builder
// drops and counts them.
func (b *builder) addCorridor(c Corridor) error {
	c.From = strings.TrimSpace(c.From)
	c.To = strings.TrimSpace(c.To)
	c.Medium = strings.TrimSpace(c.Medium)
	if err := validation.ValidateStruct(&c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	b.ds.Corridors = append(b.ds.Corridors, planarity.Edge{From: c.From, To: c.To, Medium: c.Medium})
	return nil
}

func (b *builder) finish() (*Dataset, error) {
	if len(b.ds.Settlements) == 0 && len(b.ds.Corridors) == 0 {
		return nil, newLoadError("decode", b.ds.Source, 0, ErrEmptyDataset)
	}
	return b.ds, nil
}

// Encode writes a dataset as a YAML or JSON document, or as JSON Lines
func Encode(w io.Writer, ds *Dataset, format Format) error {
	switch format {
	case FormatJSONL:
		enc := json.NewEncoder(w)
		for _, id := range ds.Settlements {
			if err := enc.Encode(lineRecord{Kind: "settlement", ID: id}); err != nil {
				return err
			}
		}
		for _, e := range ds.Corridors {
			rec := lineRecord{Kind: "corridor", From: e.From, To: e.To, Medium: e.Medium}
			if err := enc.Encode(rec); err != nil {
				return err
			}
		}
		return nil
	case FormatYAML, FormatJSON:
		doc := Document{
			Settlements: make([]Settlement, len(ds.Settlements)),
			Corridors:   make([]Corridor, len(ds.Corridors)),
		}
		for i, id := range ds.Settlements {
			doc.Settlements[i] = Settlement{ID: id}
		}
		for i, e := range ds.Corridors {
			doc.Corridors[i] = Corridor{From: e.From, To: e.To, Medium: e.Medium}
		}
		if format == FormatJSON {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
