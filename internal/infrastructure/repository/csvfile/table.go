package csvfile

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

const utf8BOM = "\ufeff"

// table streams rows of a CSV file whose header names are matched
// case-insensitively.
type table struct {
	name    string
	reader  *csv.Reader
	columns map[string]int
	line    int
	record  []string
}

func newTable(name string, r io.Reader, required ...string) (*table, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if crerr.Is(err, io.EOF) {
			return nil, crerr.Newf("%s: missing header row", name)
		}
		return nil, crerr.Wrapf(err, "%s: read header", name)
	}

	columns := make(map[string]int, len(header))
	for i, col := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, utf8BOM)))
		if _, dup := columns[key]; dup {
			continue
		}
		columns[key] = i
	}
	for _, col := range required {
		if _, ok := columns[col]; !ok {
			return nil, crerr.WithHint(
				crerr.Newf("%s: missing required column %q", name, col),
				"column names are matched case-insensitively",
			)
		}
	}

	return &table{name: name, reader: reader, columns: columns, line: 1}, nil
}

// next advances to the next data row. It returns false at end of file.
func (t *table) next() (bool, error) {
	record, err := t.reader.Read()
	if crerr.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, crerr.Wrapf(err, "%s: read row", t.name)
	}
	t.line++
	t.record = record
	return true, nil
}

func (t *table) has(column string) bool {
	_, ok := t.columns[column]
	return ok
}

func (t *table) str(column string) string {
	idx, ok := t.columns[column]
	if !ok || idx >= len(t.record) {
		return ""
	}
	return strings.TrimSpace(t.record[idx])
}

func (t *table) requiredStr(column string) (string, error) {
	v := t.str(column)
	if v == "" {
		return "", crerr.Newf("%s line %d: %s is empty", t.name, t.line, column)
	}
	return v, nil
}

func (t *table) integer(column string) (int, error) {
	raw := t.str(column)
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, crerr.Wrapf(err, "%s line %d: %s=%q is not an integer", t.name, t.line, column, raw)
	}
	return v, nil
}

// invalid attaches the file and line to a record validation error.
func (t *table) invalid(err error) error {
	return crerr.Wrapf(err, "%s line %d", t.name, t.line)
}

// optionalInt returns 0 for a missing column or blank cell.
func (t *table) optionalInt(column string) (int, error) {
	if !t.has(column) || t.str(column) == "" {
		return 0, nil
	}
	return t.integer(column)
}
