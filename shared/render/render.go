// Package render turns query results into tables, csv, json and yaml.
package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"gopkg.in/yaml.v2"
)

// Output formats.
const (
	FormatCSV     = "csv"
	FormatJSON    = "json"
	FormatTable   = "table"
	FormatYAML    = "yaml"
	FormatCompact = "compact"
)

const (
	// OptionNoHeader hides the table header when possible.
	OptionNoHeader = "noheader"

	// OptionHeader adds header to csv.
	OptionHeader = "header"
)

// Formats lists every accepted format.
var Formats = []string{FormatTable, FormatCompact, FormatCSV, FormatJSON, FormatYAML}

// ValidateFormat checks a --format value such as "csv,header".
func ValidateFormat(value string) error {
	fields := strings.SplitN(value, ",", 2)

	if len(fields) == 2 {
		for _, option := range strings.Split(fields[1], ",") {
			switch option {
			case OptionNoHeader, OptionHeader, "":
			default:
				return fmt.Errorf("invalid modifier %q on format %q", option, value)
			}
		}
	}

	if !slices.Contains(Formats, fields[0]) {
		return fmt.Errorf("invalid format %q", fields[0])
	}
	return nil
}

// Table renders tabular data in the given format. raw is what json and yaml
// output encode.
func Table(w io.Writer, format string, header []string, data [][]string, raw any) error {
	fields := strings.SplitN(format, ",", 2)
	format = fields[0]

	var options []string
	if len(fields) == 2 {
		options = strings.Split(fields[1], ",")

		if slices.Contains(options, OptionNoHeader) {
			header = nil
		}
	}

	switch format {
	case FormatTable:
		table := baseTable(w, header, data)
		table.SetRowLine(true)
		table.Render()
	case FormatCompact:
		table := baseTable(w, header, data)
		table.SetColumnSeparator("")
		table.SetHeaderLine(false)
		table.SetBorder(false)
		table.Render()
	case FormatCSV:
		cw := csv.NewWriter(w)
		if slices.Contains(options, OptionHeader) && header != nil {
			if err := cw.Write(header); err != nil {
				return err
			}
		}

		if err := cw.WriteAll(data); err != nil {
			return err
		}
		return cw.Error()
	case FormatJSON:
		return json.NewEncoder(w).Encode(raw)
	case FormatYAML:
		out, err := yaml.Marshal(Plain(raw))
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	default:
		return fmt.Errorf("invalid format %q", format)
	}

	return nil
}

func baseTable(w io.Writer, header []string, data [][]string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader(header)
	table.AppendBulk(data)
	return table
}

// Rows renders result rows. Columns are the union of all row keys, in order
// of first appearance after sorting each row's keys.
func Rows(w io.Writer, format string, rows []map[string]any) error {
	header := Columns(rows)
	return Table(w, format, header, Cells(header, rows, "NULL"), rows)
}

// Columns returns the column names of rows.
func Columns(rows []map[string]any) []string {
	var columns []string
	for _, row := range rows {
		keys := lo.Keys(row)
		slices.Sort(keys)
		columns = append(columns, keys...)
	}
	return lo.Uniq(columns)
}

// Cells flattens rows into string cells in column order. Missing and null
// values are rendered as null.
func Cells(columns []string, rows []map[string]any, null string) [][]string {
	return lo.Map(rows, func(row map[string]any, _ int) []string {
		return lo.Map(columns, func(col string, _ int) string {
			v, ok := row[col]
			if !ok || v == nil {
				return null
			}
			return Cell(v)
		})
	})
}

// Cell formats a single value for display.
func Cell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprint(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
}

// Plain converts json.Number values to int64, uint64 or float64 so that yaml
// emits them as numbers rather than quoted strings. Integers wider than 64
// bits are kept as their exact digits.
func Plain(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if !strings.ContainsAny(val.String(), ".eE") {
			if u, err := strconv.ParseUint(val.String(), 10, 64); err == nil {
				return u
			}
			return val.String()
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = Plain(item)
		}
		return out
	case []any:
		return lo.Map(val, func(item any, _ int) any { return Plain(item) })
	case []map[string]any:
		return lo.Map(val, func(item map[string]any, _ int) any { return Plain(item) })
	default:
		return v
	}
}
