package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dd0wney/cluso-hpo/pkg/graph"
	"github.com/dd0wney/cluso-hpo/pkg/visualization"
)

var (
	accent = lipgloss.Color("#00FFFF")

	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))

	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accent).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(accent)).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		})
}

// termTable lists terms by short id and label.
func termTable(terms []*graph.Term) string {
	t := newTable("ID", "Label")
	for _, term := range terms {
		t.Row(term.ShortID, term.Label)
	}
	return t.String()
}

// positionTable lists nodes in order with their coordinates, when present.
func positionTable(terms []*graph.Term, positions map[string]visualization.Position) string {
	if len(positions) == 0 {
		return termTable(terms)
	}
	t := newTable("ID", "Label", "X", "Y")
	for _, term := range terms {
		p := positions[term.ID]
		t.Row(term.ShortID, term.Label, formatCoord(p.X), formatCoord(p.Y))
	}
	return t.String()
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// writeTerm renders one term as labelled fields.
func writeTerm(w io.Writer, term *graph.Term) {
	field := func(name, value string) {
		if value == "" {
			value = dimStyle.Render("-")
		}
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-11s", name)), value)
	}
	field("ID", term.ID)
	field("Short ID", term.ShortID)
	field("Label", term.Label)
	field("Definition", term.Definition)
	field("Synonyms", strings.Join(term.Synonyms, "; "))
	field("Parents", shortIDs(term.Parents))
	field("Children", shortIDs(term.Children))
}

func shortIDs(ids []string) string {
	short := make([]string, len(ids))
	for i, id := range ids {
		short[i] = graph.ShortID(id)
	}
	return strings.Join(short, ", ")
}
