package replay

import (
	"math"
	"strconv"

	"github.com/slpstats/replayd/internal/queryengine"
)

// FieldKind selects how a string-typed result cell is coerced.
type FieldKind int

const (
	// FieldString passes the cell through unchanged.
	FieldString FieldKind = iota
	// FieldNumber parses the cell as a number. Empty or malformed cells
	// coerce to NaN; callers only read numeric fields the source guarantees.
	FieldNumber
	// FieldBool compares the cell against the literal "true".
	FieldBool
)

// Schema maps column names to coercion kinds. Columns absent from the
// schema pass through as strings.
type Schema map[string]FieldKind

// Record is one typed row decoded from a query result.
type Record map[string]any

// Str returns the string value of a column.
func (r Record) Str(col string) string {
	s, _ := r[col].(string)
	return s
}

// Float returns the numeric value of a column.
func (r Record) Float(col string) float64 {
	f, _ := r[col].(float64)
	return f
}

// Int returns the numeric value of a column truncated to an integer.
func (r Record) Int(col string) int {
	f, _ := r[col].(float64)
	if math.IsNaN(f) {
		return 0
	}
	return int(f)
}

// Bool returns the boolean value of a column.
func (r Record) Bool(col string) bool {
	b, _ := r[col].(bool)
	return b
}

// Normalize decodes a raw string-typed tabular result into typed records
// per the schema. Cells missing from a short row default to empty string
// before coercion. Malformed numerics are not an error here; they surface
// as a data error where the value is consumed.
func Normalize(res *queryengine.Result, schema Schema) []Record {
	records := make([]Record, 0, len(res.Rows))
	for _, row := range res.Rows {
		rec := make(Record, len(res.Columns))
		for i, col := range res.Columns {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			switch schema[col] {
			case FieldNumber:
				rec[col] = parseNumber(cell)
			case FieldBool:
				rec[col] = cell == "true"
			default:
				rec[col] = cell
			}
		}
		records = append(records, rec)
	}
	return records
}

func parseNumber(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
