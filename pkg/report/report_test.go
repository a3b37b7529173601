package report

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dd0wney/corridor-planarity/pkg/planarity"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func complete(ids ...string) []planarity.Edge {
	var edges []planarity.Edge
	for i := range ids {
		for j := i + 1; j < len(ids); j++ {
			edges = append(edges, planarity.Edge{From: ids[i], To: ids[j]})
		}
	}
	return edges
}

// mixedReport has a K5 with a tail, a K3,3 and a planar pair
func mixedReport(t *testing.T) *planarity.Report {
	t.Helper()
	nodes := []string{"A", "B", "C", "D", "E", "F", "G", "H", "P", "Q", "R", "X", "Y", "Z", "S", "T"}

	edges := complete("A", "B", "C", "D", "E")
	edges = append(edges,
		planarity.Edge{From: "E", To: "F"},
		planarity.Edge{From: "F", To: "G"},
		planarity.Edge{From: "G", To: "H"},
	)
	for _, a := range []string{"P", "Q", "R"} {
		for _, b := range []string{"X", "Y", "Z"} {
			edges = append(edges, planarity.Edge{From: a, To: b, Medium: "rail"})
		}
	}
	edges = append(edges,
		planarity.Edge{From: "S", To: "T"},
		planarity.Edge{From: "T", To: "T"},
		planarity.Edge{From: "S", To: "Nowhere"},
	)

	r, err := planarity.NewAnalyzer(planarity.WithRunID("run-1")).
		AnalyzeContext(context.Background(), nodes, edges)
	require.NoError(t, err)
	return r
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument(mixedReport(t), "atlas.jsonl")

	want := Document{
		RunID:       "run-1",
		Source:      "atlas.jsonl",
		Settlements: 16,
		Corridors:   23,
		Dropped:     Dropped{UnknownEndpoint: 1, SelfLoops: 1},
		ExitCode:    1,
		VerdictCounts: map[string]int{
			"possibly-planar": 1,
			"bound-violation": 0,
			"k5":              1,
			"k33":             1,
		},
		Components: []ComponentResult{
			{
				Index: 0, Settlements: 8, Corridors: 13,
				Verdict: planarity.VerdictK5,
				Members: []string{"A", "B", "C", "D", "E", "F", "G", "H"},
				Witness: &Witness{Kind: "K5", Nodes: []string{"A", "B", "C", "D", "E"}},
			},
			{
				Index: 1, Settlements: 6, Corridors: 9,
				Verdict: planarity.VerdictK33,
				Members: []string{"P", "Q", "R", "X", "Y", "Z"},
				Witness: &Witness{Kind: "K3,3", A: []string{"P", "Q", "R"}, B: []string{"X", "Y", "Z"}},
			},
			{
				Index: 2, Settlements: 2, Corridors: 1,
				Verdict: planarity.VerdictPossiblyPlanar,
				Members: []string{"S", "T"},
			},
		},
	}

	opts := cmpopts.IgnoreFields(Document{}, "StartedAt", "DurationMillis")
	if diff := cmp.Diff(want, doc, opts); diff != "" {
		t.Errorf("NewDocument() mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteJSON(t *testing.T) {
	report := mixedReport(t)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, report, ""))

	raw := buf.String()
	assert.Contains(t, raw, `"verdict": "k33"`)
	assert.Contains(t, raw, `"all_possibly_planar": false`)
	assert.NotContains(t, raw, `"source"`)

	var back Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	if diff := cmp.Diff(NewDocument(report, ""), back, cmpopts.EquateApproxTime(0)); diff != "" {
		t.Errorf("decoded document mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, mixedReport(t), TextOptions{Source: "atlas.jsonl"}))
	out := buf.String()

	for _, want := range []string{
		"Corridor planarity report",
		"run run-1",
		"Source: atlas.jsonl",
		"Settlements: 16",
		"Corridors: 23",
		"1 unknown endpoint, 1 self-loop",
		"Components: 3 (possibly-planar 1, bound-violation 0, k5 1, k33 1)",
		"component 0 (8 settlements, 13 corridors): nonplanar (K5 found)",
		"  K5: A, B, C, D, E",
		"  K3,3: {P, Q, R} x {X, Y, Z}",
		"component 2 (2 settlements, 1 corridors): possibly-planar",
		"Result: NONPLANAR (2 of 3 components)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text report missing %q\n%s", want, out)
		}
	}
}

func TestWriteText_Planar(t *testing.T) {
	report := planarity.Analyze([]string{"A", "B", "C", "D"}, complete("A", "B", "C", "D"))

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, report, TextOptions{}))
	out := buf.String()

	assert.Contains(t, out, "Result: possibly planar (no violation found)")
	assert.NotContains(t, out, "normalized:")
}

func TestJoinLimited(t *testing.T) {
	items := []string{"a", "b", "c", "d"}
	assert.Equal(t, "a, b, c, d", joinLimited(items, 4))
	assert.Equal(t, "a, b, ... and 2 more", joinLimited(items, 2))
	assert.Equal(t, "a, b, c, d", joinLimited(items, -1))
}
