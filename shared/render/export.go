package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v2"
)

// ExportFormats lists the formats accepted by Export.
var ExportFormats = []string{FormatJSON, FormatCSV, FormatYAML}

// ExportFilename names a query result download, e.g. query-results-2024-01-31.csv.
func ExportFilename(format string, now time.Time) string {
	return fmt.Sprintf("query-results-%s.%s", now.Format("2006-01-02"), format)
}

// ExportContentType returns the content type of a download format.
func ExportContentType(format string) string {
	switch format {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatYAML:
		return "application/x-yaml; charset=utf-8"
	default:
		return "application/json; charset=utf-8"
	}
}

// Export writes rows as a downloadable document: indented json, csv with a
// header line, or yaml.
func Export(w io.Writer, format string, rows []map[string]any) error {
	if rows == nil {
		rows = []map[string]any{}
	}

	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case FormatCSV:
		columns := Columns(rows)
		cw := csv.NewWriter(w)
		if err := cw.Write(columns); err != nil {
			return err
		}
		if err := cw.WriteAll(Cells(columns, rows, "")); err != nil {
			return err
		}
		return cw.Error()
	case FormatYAML:
		out, err := yaml.Marshal(Plain(rows))
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}
