package store

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/roach88/hashlookup/internal/result"
)

// timestampFormat renders time values the way SQLite stores them as text.
const timestampFormat = "2006-01-02 15:04:05.999999999-07:00"

// Collect walks rows and converts each one into a result.Row, one field per
// projected column, sorted by name. NULL becomes "". Values are never coerced
// beyond rendering them as text.
//
// Returns an empty (non-nil) set when there are no rows.
func Collect(rows *sql.Rows) (result.Set, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read result columns: %w", err)
	}

	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	set := result.Set{}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		var row result.Row
		for i, name := range columns {
			row.Set(name, textValue(values[i]))
		}
		set = append(set, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return set, nil
}

// textValue renders a driver value as text.
func textValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case bool:
		if val {
			return "1"
		}
		return "0"
	case time.Time:
		return val.Format(timestampFormat)
	default:
		return fmt.Sprint(val)
	}
}
