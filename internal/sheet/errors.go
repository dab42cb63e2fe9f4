package sheet

import "fmt"

// FormatError means the CSV had no header or no data rows. Fatal for the
// project and, by the all-or-nothing run policy, for the whole refresh.
type FormatError struct {
	Project string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid CSV format for %s: expected a header line and at least one data row", e.Project)
}

// SchemaError means the header contained no Account_<n> columns.
type SchemaError struct {
	Project string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("no account columns found for %s (Account_X)", e.Project)
}
