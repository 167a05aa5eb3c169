// Package graph builds and serves the drug cross-reference graph: for
// every drug in the registry, the publications and clinical trials whose
// title mentions the drug by name.
package graph

import (
	"bytes"
	"fmt"
	"io"

	"github.com/segmentio/encoding/json"

	"github.com/miku/drugxref/tabular"
)

// Mention is a denormalized projection of one matched publication or
// trial record.
type Mention struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Date    string `json:"date"`
	Journal string `json:"journal"`
}

// Entry collects the mentions of one drug, split by source kind.
type Entry struct {
	Pubmed         []Mention `json:"pubmed"`
	ClinicalTrials []Mention `json:"clinical_trials"`
}

// Graph maps drug codes to their entries, in registry order. Every drug
// from the source registry has an entry, even with empty mention lists.
type Graph struct {
	codes   []string
	entries map[string]*Entry
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{entries: make(map[string]*Entry)}
}

// Ensure returns the entry for a drug code, inserting a default entry
// with empty mention lists if the code is new.
func (g *Graph) Ensure(code string) *Entry {
	if e, ok := g.entries[code]; ok {
		return e
	}
	e := &Entry{Pubmed: []Mention{}, ClinicalTrials: []Mention{}}
	g.entries[code] = e
	g.codes = append(g.codes, code)
	return e
}

// Entry returns the entry for a drug code.
func (g *Graph) Entry(code string) (*Entry, bool) {
	e, ok := g.entries[code]
	return e, ok
}

// Codes returns the drug codes in insertion order.
func (g *Graph) Codes() []string {
	return g.codes
}

// Len returns the number of drugs in the graph.
func (g *Graph) Len() int {
	return len(g.codes)
}

// WriteJSON renders the graph as a JSON object keyed by drug code, keys
// in graph order, two-space indentation, non-ASCII characters literal.
func (g *Graph) WriteJSON(w io.Writer) error {
	if len(g.codes) == 0 {
		_, err := io.WriteString(w, "{}")
		return err
	}
	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, code := range g.codes {
		var entry bytes.Buffer
		enc := json.NewEncoder(&entry)
		enc.SetEscapeHTML(false)
		enc.SetIndent("  ", "  ")
		if err := enc.Encode(g.entries[code]); err != nil {
			return err
		}
		key, err := json.Marshal(code)
		if err != nil {
			return err
		}
		buf.WriteString("  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(bytes.TrimRight(entry.Bytes(), "\n"))
		if i < len(g.codes)-1 {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
	}
	buf.WriteString("}")
	_, err := w.Write(buf.Bytes())
	return err
}

// ReadJSON parses a graph serialized by WriteJSON, preserving the
// document's key order.
func ReadJSON(r io.Reader) (*Graph, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	fields, err := tabular.ObjectFields(b)
	if err != nil {
		return nil, fmt.Errorf("graph document: %w", err)
	}
	g := NewGraph()
	for _, f := range fields {
		var entry Entry
		if err := json.Unmarshal(f.Raw, &entry); err != nil {
			return nil, fmt.Errorf("entry %s: %w", f.Key, err)
		}
		if entry.Pubmed == nil {
			entry.Pubmed = []Mention{}
		}
		if entry.ClinicalTrials == nil {
			entry.ClinicalTrials = []Mention{}
		}
		*g.Ensure(f.Key) = entry
	}
	return g, nil
}
