package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dd0wney/corridor-planarity/pkg/planarity"
)

// DefaultMaxMembers caps the member list printed per component
const DefaultMaxMembers = 12

// TextOptions controls the human readable report
type TextOptions struct {
	Color      bool
	MaxMembers int // 0 means DefaultMaxMembers, negative prints all
	Source     string
}

type textStyles struct {
	title  lipgloss.Style
	label  lipgloss.Style
	ok     lipgloss.Style
	bad    lipgloss.Style
	muted  lipgloss.Style
	indent lipgloss.Style
}

func newTextStyles(w io.Writer, color bool) textStyles {
	if !color {
		plain := lipgloss.NewStyle()
		return textStyles{
			title:  plain,
			label:  plain,
			ok:     plain,
			bad:    plain,
			muted:  plain,
			indent: plain.PaddingLeft(2),
		}
	}

	r := lipgloss.NewRenderer(w)
	return textStyles{
		title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")),
		label: r.NewStyle().
			Bold(true),
		ok: r.NewStyle().
			Foreground(lipgloss.Color("#00FF87")),
		bad: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF5F87")),
		muted: r.NewStyle().
			Foreground(lipgloss.Color("#808080")),
		indent: r.NewStyle().PaddingLeft(2),
	}
}

// WriteText writes a human readable report
func WriteText(w io.Writer, r *planarity.Report, opts TextOptions) error {
	st := newTextStyles(w, opts.Color)
	maxMembers := opts.MaxMembers
	if maxMembers == 0 {
		maxMembers = DefaultMaxMembers
	}

	var b strings.Builder

	title := "Corridor planarity report"
	if r.RunID != "" {
		title += "  " + st.muted.Render("run "+r.RunID)
	}
	b.WriteString(st.title.Render(title) + "\n")
	if opts.Source != "" {
		fmt.Fprintf(&b, "%s %s\n", st.label.Render("Source:"), opts.Source)
	}

	fmt.Fprintf(&b, "%s %d  %s %d\n",
		st.label.Render("Settlements:"), r.NodeCount,
		st.label.Render("Corridors:"), r.EdgeCount)
	if dropped := r.Build.Dropped(); dropped > 0 || r.Build.DuplicateNodes > 0 {
		b.WriteString(st.muted.Render(fmt.Sprintf(
			"normalized: %d unknown endpoint, %d self-loop, %d duplicate corridor, %d duplicate settlement",
			r.Build.UnknownEndpoint, r.Build.SelfLoops, r.Build.Duplicates, r.Build.DuplicateNodes)) + "\n")
	}

	counts := r.Counts()
	parts := make([]string, 0, len(planarity.AllVerdicts()))
	for _, v := range planarity.AllVerdicts() {
		parts = append(parts, fmt.Sprintf("%s %d", v.Tag(), counts[v]))
	}
	fmt.Fprintf(&b, "%s %d (%s)\n\n", st.label.Render("Components:"), len(r.Components), strings.Join(parts, ", "))

	for _, c := range r.Components {
		verdict := st.ok.Render(c.Verdict.String())
		if c.Verdict.NonPlanar() {
			verdict = st.bad.Render(c.Verdict.String())
		}
		fmt.Fprintf(&b, "component %d (%d settlements, %d corridors): %s\n",
			c.Index, c.NodeCount, c.EdgeCount, verdict)

		b.WriteString(st.indent.Render("members: "+joinLimited(c.Members, maxMembers)) + "\n")
		switch c.Verdict {
		case planarity.VerdictK5:
			b.WriteString(st.indent.Render("K5: "+strings.Join(c.K5, ", ")) + "\n")
		case planarity.VerdictK33:
			b.WriteString(st.indent.Render(fmt.Sprintf("K3,3: {%s} x {%s}",
				strings.Join(c.K33A, ", "), strings.Join(c.K33B, ", "))) + "\n")
		}
	}

	b.WriteString("\n")
	if r.AllPossiblyPlanar {
		b.WriteString(st.ok.Render("Result: possibly planar (no violation found)") + "\n")
	} else {
		b.WriteString(st.bad.Render(fmt.Sprintf("Result: NONPLANAR (%d of %d components)",
			len(r.NonPlanar()), len(r.Components))) + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func joinLimited(items []string, max int) string {
	if max < 0 || len(items) <= max {
		return strings.Join(items, ", ")
	}
	return fmt.Sprintf("%s, ... and %d more", strings.Join(items[:max], ", "), len(items)-max)
}
