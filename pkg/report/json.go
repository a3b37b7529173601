// Package report renders planarity analysis results for people and machines.
package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/dd0wney/corridor-planarity/pkg/planarity"
)

// Document is the JSON form of a report
type Document struct {
	RunID             string            `json:"run_id"`
	Source            string            `json:"source,omitempty"`
	StartedAt         time.Time         `json:"started_at"`
	DurationMillis    float64           `json:"duration_ms"`
	Settlements       int               `json:"settlements"`
	Corridors         int               `json:"corridors"`
	Dropped           Dropped           `json:"dropped"`
	AllPossiblyPlanar bool              `json:"all_possibly_planar"`
	ExitCode          int               `json:"exit_code"`
	VerdictCounts     map[string]int    `json:"verdict_counts"`
	Components        []ComponentResult `json:"components"`
}

// Dropped summarizes input normalized away before analysis
type Dropped struct {
	UnknownEndpoint int `json:"unknown_endpoint"`
	SelfLoops       int `json:"self_loops"`
	Duplicates      int `json:"duplicates"`
	DuplicateNodes  int `json:"duplicate_settlements"`
}

// ComponentResult is one component in the JSON document
type ComponentResult struct {
	Index       int               `json:"index"`
	Settlements int               `json:"settlements"`
	Corridors   int               `json:"corridors"`
	Verdict     planarity.Verdict `json:"verdict"`
	Members     []string          `json:"members"`
	Witness     *Witness          `json:"witness,omitempty"`
}

// Witness lists the identifiers of a forbidden subgraph
type Witness struct {
	Kind  string   `json:"kind"`
	Nodes []string `json:"nodes,omitempty"`
	A     []string `json:"a,omitempty"`
	B     []string `json:"b,omitempty"`
}

// NewDocument converts an analysis report. source may be empty.
func NewDocument(r *planarity.Report, source string) Document {
	doc := Document{
		RunID:          r.RunID,
		Source:         source,
		StartedAt:      r.StartedAt.UTC(),
		DurationMillis: float64(r.Duration.Microseconds()) / 1000,
		Settlements:    r.NodeCount,
		Corridors:      r.EdgeCount,
		Dropped: Dropped{
			UnknownEndpoint: r.Build.UnknownEndpoint,
			SelfLoops:       r.Build.SelfLoops,
			Duplicates:      r.Build.Duplicates,
			DuplicateNodes:  r.Build.DuplicateNodes,
		},
		AllPossiblyPlanar: r.AllPossiblyPlanar,
		ExitCode:          r.ExitCode(),
		VerdictCounts:     make(map[string]int, len(planarity.AllVerdicts())),
		Components:        make([]ComponentResult, 0, len(r.Components)),
	}

	counts := r.Counts()
	for _, v := range planarity.AllVerdicts() {
		doc.VerdictCounts[v.Tag()] = counts[v]
	}

	for _, c := range r.Components {
		cr := ComponentResult{
			Index:       c.Index,
			Settlements: c.NodeCount,
			Corridors:   c.EdgeCount,
			Verdict:     c.Verdict,
			Members:     c.Members,
		}
		switch c.Verdict {
		case planarity.VerdictK5:
			cr.Witness = &Witness{Kind: planarity.WitnessK5.String(), Nodes: c.K5}
		case planarity.VerdictK33:
			cr.Witness = &Witness{Kind: planarity.WitnessK33.String(), A: c.K33A, B: c.K33B}
		}
		doc.Components = append(doc.Components, cr)
	}

	return doc
}

// WriteJSON writes the report as an indented JSON document
func WriteJSON(w io.Writer, r *planarity.Report, source string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(r, source))
}
