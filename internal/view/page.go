package view

import (
	"fmt"
	"strconv"

	"github.com/henri123lemoine/aligns/internal/dataset"
)

// BlockKind says which field of a Block is populated.
type BlockKind int

const (
	BlockActions BlockKind = iota
	BlockTable
	BlockChart
	BlockSelect
	BlockDefinitions
)

// Page is the render-ready description of one view.
type Page struct {
	View     View
	Sidebar  View
	Title    string
	Subtitle string
	Card     string
	Blocks   []Block
}

// Block is one section of a page. Heading may be empty.
type Block struct {
	Kind        BlockKind
	Heading     string
	Actions     []Action
	Table       *Table
	Chart       *Chart
	Select      *Select
	Definitions []Definition
}

// Action is a Home-page button.
type Action struct {
	Label  string
	Target View
}

// Table is tabular data with preformatted cells.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Chart is a single-series bar chart. Labels may repeat.
type Chart struct {
	XAxis  string
	YAxis  string
	Points []ChartPoint
}

// ChartPoint is one bar.
type ChartPoint struct {
	Label string
	Value float64
}

// Select is a single-choice dropdown. Index is -1 when Selected is not an option.
type Select struct {
	Label    string
	Options  []string
	Selected string
	Index    int
}

// Definition is a term and its meaning.
type Definition struct {
	Term string
	Text string
}

// Build describes the session's current view over tbl.
func Build(s *Session, tbl *dataset.Table) Page {
	var p Page
	switch s.Current() {
	case Visualize:
		p = buildVisualize(tbl)
	case Explore:
		p = buildExplore(s, tbl)
	case ExploreFactor:
		p = buildExploreFactor(tbl)
	case ImplicitDefinition:
		p = buildImplicitDefinition()
	default:
		p = buildHome()
	}
	p.View = s.Current()
	p.Sidebar = s.Sidebar()
	return p
}

func buildHome() Page {
	actions := make([]Action, 0, len(Actions()))
	for _, v := range Actions() {
		actions = append(actions, Action{Label: v.String(), Target: v})
	}
	return Page{
		Title:    "Analysis of Latent Indicators to Generate Nomological Structures (ALIGNS)",
		Subtitle: "Explore the nomological networks of Behavioral Medicine and Information Systems",
		Card: "Welcome to the ALIGNs platform. Navigate through the sections using the sidebar or the " +
			"buttons below to view interactive visualizations, explore in-depth data, and understand " +
			"advanced psychometric models.",
		Blocks: []Block{{Kind: BlockActions, Actions: actions}},
	}
}

func buildVisualize(tbl *dataset.Table) Page {
	return Page{
		Title: "Data Visualization",
		Card:  "Visualize key metrics and trends through interactive charts and tables.",
		Blocks: []Block{
			{Kind: BlockTable, Heading: "Sample Data Table", Table: TableOf(tbl.Columns(), tbl.Records())},
			{Kind: BlockChart, Heading: "Emotional Distress Score Distribution", Chart: ScoreChart(tbl)},
		},
	}
}

func buildExplore(s *Session, tbl *dataset.Table) Page {
	sel := ExploreSelect(s, tbl)
	return Page{
		Title: "Data Exploration",
		Card:  "Dive deep into the dataset to uncover trends and correlations among variables.",
		Blocks: []Block{
			{Kind: BlockSelect, Heading: "Filter Data", Select: sel},
			{Kind: BlockTable, Table: TableOf(tbl.Columns(), tbl.Filter(sel.Selected))},
		},
	}
}

func buildExploreFactor(tbl *dataset.Table) Page {
	return Page{
		Title: "Factor Analysis",
		Card:  "Examine psychometric loadings and discover the key contributing factors within the dataset.",
		Blocks: []Block{
			{Kind: BlockChart, Heading: "Top Contributing Factors", Chart: ScoreChart(tbl)},
		},
	}
}

func buildImplicitDefinition() Page {
	return Page{
		Title: "Implicit Definitions",
		Card:  "Explore latent variable definitions and gain insights into modern psychometric constructs.",
		Blocks: []Block{{
			Kind:    BlockDefinitions,
			Heading: "Psychometric Concepts",
			Definitions: []Definition{
				{Term: "Emotional Distress", Text: "Measurement of mood disturbances."},
				{Term: "Risk Appraisal", Text: "Assessment of perceived risks in mental health."},
				{Term: "Social Influence", Text: "Impact of external factors on behavioral health."},
			},
		}},
	}
}

// ExploreSelect builds the Explore dropdown. Without a prior choice the
// first option is selected.
func ExploreSelect(s *Session, tbl *dataset.Table) *Select {
	options := tbl.Names()
	sel := &Select{Label: "Select a variable:", Options: options, Index: -1}

	if v, ok := s.Selection(); ok {
		sel.Selected = v
	} else if len(options) > 0 {
		sel.Selected = options[0]
	}
	for i, o := range options {
		if o == sel.Selected {
			sel.Index = i
			break
		}
	}
	return sel
}

// ScoreChart plots one bar per record, keyed by name. No aggregation.
func ScoreChart(tbl *dataset.Table) *Chart {
	records := tbl.Records()
	points := make([]ChartPoint, 0, len(records))
	for _, r := range records {
		points = append(points, ChartPoint{Label: r.Name, Value: r.Score})
	}
	return &Chart{
		XAxis:  dataset.ColumnName,
		YAxis:  dataset.ColumnScore,
		Points: points,
	}
}

// TableOf formats records into string cells.
func TableOf(columns []string, records []dataset.Record) *Table {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			strconv.Itoa(r.ID),
			r.Name,
			r.ItemText,
			FormatScore(r.Score),
		})
	}
	return &Table{Columns: columns, Rows: rows}
}

// FormatScore renders a score with two decimals.
func FormatScore(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
