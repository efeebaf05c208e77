// Package export writes the expense collection to CSV files.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jask/financeflow/internal/expense"
)

// Header is the fixed CSV header row.
const Header = "Title,Amount,Category,Date"

// Filename returns the export file name for the given export date,
// e.g. expenses_2024-02-01.csv.
func Filename(exportDate time.Time) string {
	return fmt.Sprintf("expenses_%s.csv", exportDate.Format(expense.DateLayout))
}

// Render formats the full record collection as CSV: a header row, then one
// line per record as `"title",amount,"category",date`. Title and category
// are always quoted, with embedded quotes doubled; the amount is emitted at
// full precision.
func Render(records []expense.Record) string {
	lines := make([]string, 0, len(records)+1)
	lines = append(lines, Header)
	for _, r := range records {
		lines = append(lines, fmt.Sprintf("%s,%s,%s,%s",
			quote(r.Title),
			strconv.FormatFloat(r.Amount, 'f', -1, 64),
			quote(string(r.Category)),
			r.Date,
		))
	}
	return strings.Join(lines, "\n") + "\n"
}

// WriteFile renders records and writes them to dir under the dated
// filename, returning the full path written.
func WriteFile(records []expense.Record, dir string, exportDate time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir export dir: %w", err)
	}
	path := filepath.Join(dir, Filename(exportDate))
	if err := os.WriteFile(path, []byte(Render(records)), 0o644); err != nil {
		return "", fmt.Errorf("write csv: %w", err)
	}
	return path, nil
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
