package repository

import (
	"database/sql"
	"time"
)

// parseNullableTime parses a sql.NullString with the given layout. NULL,
// empty, and unparseable values all come back nil.
func parseNullableTime(s sql.NullString, layout string) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTimeToString formats a *time.Time for SQLite storage, mapping nil
// to SQL NULL.
func nullableTimeToString(t *time.Time, layout string) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(layout)
}

// boolToInt stores a bool as 0/1, SQLite's boolean convention.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int) bool {
	return i != 0
}
