// Package repositories implements data access over database/sql with parameterized Postgres statements
package repositories

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// displayOrder maps an empty form value to the column default; anything else is sent as is
func displayOrder(value string) string {
	if value == "" {
		return "0"
	}
	return value
}
