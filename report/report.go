// Package report renders tables, groups and validation findings as text
// tables for the command line.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"tedit/datatable"
	"tedit/store"
)

func newTable(out io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(out)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	return table
}

// Rows writes up to limit rows of source, each prefixed by its positional
// index. A limit <= 0 writes every row.
func Rows(out io.Writer, source datatable.DataSource, limit int) error {
	header := []string{"#"}
	for col := 0; col < source.ColumnCount(); col++ {
		name, err := source.ColumnName(col)
		if err != nil {
			return err
		}
		header = append(header, name)
	}

	n := source.RowCount()
	if limit > 0 && limit < n {
		n = limit
	}

	table := newTable(out, header)
	for row := 0; row < n; row++ {
		cells := []string{strconv.Itoa(row)}
		for col := 0; col < source.ColumnCount(); col++ {
			v, err := source.Cell(row, col)
			if err != nil {
				return err
			}
			cells = append(cells, v.String())
		}
		table.Append(cells)
	}
	table.SetCaption(true, fmt.Sprintf("%s of %s rows",
		humanize.Comma(int64(n)), humanize.Comma(int64(source.RowCount()))))
	table.Render()
	return nil
}

// Groups writes the grouped sums of yCol by xCol.
func Groups(out io.Writer, groups []store.Group, xCol, yCol string) {
	table := newTable(out, []string{xCol, yCol})
	for _, g := range groups {
		table.Append([]string{g.Key.String(), g.Sum.String()})
	}
	table.Render()
}

// Finding is a row that failed validation.
type Finding struct {
	Row     int
	Message string
}

// Validate checks every row of source and returns the rows that fail.
func Validate(source datatable.DataSource) ([]Finding, error) {
	var findings []Finding
	for i := 0; i < source.RowCount(); i++ {
		row, err := source.Row(i)
		if err != nil {
			return nil, err
		}
		if ok, msg := store.Validate(row); !ok {
			findings = append(findings, Finding{Row: i, Message: msg})
		}
	}
	return findings, nil
}

// Findings writes validation findings.
func Findings(out io.Writer, findings []Finding) {
	table := newTable(out, []string{"Row", "Problem"})
	for _, f := range findings {
		table.Append([]string{strconv.Itoa(f.Row), f.Message})
	}
	table.SetCaption(true, humanize.Comma(int64(len(findings)))+" invalid rows")
	table.Render()
}
