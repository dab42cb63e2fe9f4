package sheet

import (
	"regexp"
	"strconv"
	"strings"
)

// Sheets exported this way never contain escaped commas, so a naive split is
// enough: fields are trimmed and any double quotes are dropped wholesale.
// This is NOT a general CSV parser and does not try to be one.

var accountColPattern = regexp.MustCompile(`^Account_[0-9]+$`)

type table struct {
	headers []string
	rows    []map[string]string // only rows with a non-empty Date survive
}

func cleanField(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, `"`, ""))
}

// parseTable splits raw CSV text into a header + row records. Rows lacking a
// Date are dropped here; every other malformed cell degrades to "".
func parseTable(text, projectID string) (*table, error) {
	var lines []string
	for _, ln := range strings.Split(text, "\n") {
		if strings.TrimSpace(ln) != "" {
			lines = append(lines, ln)
		}
	}
	if len(lines) < 2 {
		return nil, &FormatError{Project: projectID}
	}

	rawHeaders := strings.Split(lines[0], ",")
	headers := make([]string, len(rawHeaders))
	for i, h := range rawHeaders {
		headers[i] = cleanField(h)
	}

	t := &table{headers: headers}
	for _, line := range lines[1:] {
		values := strings.Split(line, ",")
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(values) {
				row[h] = cleanField(values[i])
			} else {
				row[h] = ""
			}
		}
		if row["Date"] == "" {
			continue
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}

// accountColumns counts headers that exactly match Account_<n>.
func (t *table) accountColumns() int {
	n := 0
	for _, h := range t.headers {
		if accountColPattern.MatchString(h) {
			n++
		}
	}
	return n
}

// users parses a Users_<n> cell; anything unparseable counts as zero.
func users(row map[string]string, i int) int {
	v, err := strconv.Atoi(row["Users_"+strconv.Itoa(i)])
	if err != nil || v < 0 {
		return 0
	}
	return v
}
