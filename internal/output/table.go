package output

import (
	"encoding/json"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// TableFormatter renders semicolon-separated report text as an ASCII
// table. Non-report results fall back to indented JSON.
type TableFormatter struct{}

// FormatResult renders a tool result as a table.
func (f *TableFormatter) FormatResult(result any) (string, error) {
	if result == nil {
		return "", nil
	}

	text, ok := result.(string)
	if !ok {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	rows := parseReport(text)
	if len(rows) < 2 {
		// Single-line responses such as the API unit balance are not
		// tabular; print them as-is.
		return strings.TrimSpace(text), nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(toRow(rows[0]))
	for _, row := range rows[1:] {
		t.AppendRow(toRow(row))
	}

	return t.Render(), nil
}

// parseReport splits report text into rows of semicolon-separated cells.
// The first row is the column header line.
func parseReport(text string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, strings.Split(line, ";"))
	}
	return rows
}

func toRow(cells []string) table.Row {
	row := make(table.Row, 0, len(cells))
	for _, cell := range cells {
		row = append(row, cell)
	}
	return row
}
