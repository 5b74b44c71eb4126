// Package dataset holds the psychometric sample table shown by the dashboard.
package dataset

// Column labels, in display order.
const (
	ColumnID    = "Variable ID"
	ColumnName  = "Variable Name"
	ColumnItem  = "Item Text"
	ColumnScore = "Emotional Distress Score"
)

// Record is one survey-item measurement.
type Record struct {
	ID       int     `json:"variable_id" yaml:"variable_id"`
	Name     string  `json:"variable_name" yaml:"variable_name"`
	ItemText string  `json:"item_text" yaml:"item_text"`
	Score    float64 `json:"emotional_distress_score" yaml:"emotional_distress_score"`
}

// Table is an immutable, ordered set of records.
// Every accessor hands out copies so the shared rows never change.
type Table struct {
	records []Record
}

// New creates a table from records. The slice is copied.
func New(records []Record) *Table {
	rows := make([]Record, len(records))
	copy(rows, records)
	return &Table{records: rows}
}

var sample = New([]Record{
	{ID: 151, Name: "Mood And Feelings Questionnaire", ItemText: "I felt miserable or unhappy", Score: 1.41},
	{ID: 153, Name: "Mood and Feelings Questionnaire (Short)", ItemText: "I felt miserable or unhappy", Score: 1.41},
	{ID: 155, Name: "Child Short Version (MFQ)", ItemText: "I felt miserable or unhappy", Score: 1.41},
	{ID: 159, Name: "How did you feel yesterday?", ItemText: "I felt depressed/blue", Score: 1.40},
	{ID: 58, Name: "PROMIS Sleep Disturbance", ItemText: "My sleep was restless", Score: 1.39},
	{ID: 187, Name: "Mini Risk-Resilience Index", ItemText: "I felt down or sad", Score: 1.38},
	{ID: 42, Name: "CES-D Depression Scale", ItemText: "I was bothered by things that usually don’t bother me", Score: 1.37},
})

// Sample returns the shared sample table.
func Sample() *Table {
	return sample
}

// Columns returns the column labels in display order.
func (t *Table) Columns() []string {
	return []string{ColumnID, ColumnName, ColumnItem, ColumnScore}
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.records)
}

// Records returns a copy of all records in table order.
func (t *Table) Records() []Record {
	out := make([]Record, len(t.records))
	copy(out, t.records)
	return out
}

// Names returns the Variable Name column in table order.
// Repeated names are kept.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.records))
	for _, r := range t.records {
		names = append(names, r.Name)
	}
	return names
}

// Filter returns the records whose name equals name exactly.
// An unknown name yields an empty, non-nil slice.
func (t *Table) Filter(name string) []Record {
	out := []Record{}
	for _, r := range t.records {
		if r.Name == name {
			out = append(out, r)
		}
	}
	return out
}
