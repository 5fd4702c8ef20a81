package queryengine

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteEngine runs submitted queries against a local SQLite database while
// presenting the same asynchronous, string-typed surface as a remote engine.
// Intended for development and tests.
type SQLiteEngine struct {
	db *sql.DB

	mu    sync.Mutex
	execs map[string]*execution
}

type execution struct {
	status Status
	result *Result
}

// NewSQLiteEngine opens the database at dbPath.
func NewSQLiteEngine(dbPath string) (*SQLiteEngine, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &SQLiteEngine{db: db, execs: make(map[string]*execution)}, nil
}

// Close closes the underlying database.
func (e *SQLiteEngine) Close() error {
	return e.db.Close()
}

// DB exposes the underlying handle for loading fixture data.
func (e *SQLiteEngine) DB() *sql.DB {
	return e.db
}

// SubmitQuery registers an execution and runs the query in the background.
func (e *SQLiteEngine) SubmitQuery(ctx context.Context, q Query) (string, error) {
	id := uuid.NewString()

	e.mu.Lock()
	e.execs[id] = &execution{status: Status{State: StateQueued}}
	e.mu.Unlock()

	go e.run(id, q.SQL)
	return id, nil
}

func (e *SQLiteEngine) run(id, sqlText string) {
	e.setStatus(id, Status{State: StateRunning})

	result, err := e.query(sqlText)
	if err != nil {
		e.setStatus(id, Status{State: StateFailed, FailureReason: err.Error()})
		return
	}

	e.mu.Lock()
	if exec, ok := e.execs[id]; ok {
		exec.status = Status{State: StateSucceeded}
		exec.result = result
	}
	e.mu.Unlock()
}

func (e *SQLiteEngine) query(sqlText string) (*Result, error) {
	rows, err := e.db.Query(sqlText)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := &Result{Columns: columns, Rows: [][]string{}}
	for rows.Next() {
		values := make([]any, len(columns))
		for i := range values {
			values[i] = new(any)
		}
		if err := rows.Scan(values...); err != nil {
			return nil, err
		}

		row := make([]string, len(columns))
		for i, v := range values {
			row[i] = stringify(*(v.(*any)))
		}
		result.Rows = append(result.Rows, row)
	}
	return result, rows.Err()
}

// stringify matches the remote engine's cell encoding: everything is a
// string, booleans as the literals "true"/"false", NULL as empty string.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case bool:
		if t {
			return "true"
		}
		return "false"
	case []byte:
		return string(t)
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

func (e *SQLiteEngine) setStatus(id string, s Status) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if exec, ok := e.execs[id]; ok {
		exec.status = s
	}
}

// QueryStatus returns the current state of an execution.
func (e *SQLiteEngine) QueryStatus(ctx context.Context, executionID string) (Status, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	exec, ok := e.execs[executionID]
	if !ok {
		return Status{}, fmt.Errorf("unknown execution %s", executionID)
	}
	return exec.status, nil
}

// QueryResults returns the rows of a succeeded execution.
func (e *SQLiteEngine) QueryResults(ctx context.Context, executionID string) (*Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	exec, ok := e.execs[executionID]
	if !ok {
		return nil, fmt.Errorf("unknown execution %s", executionID)
	}
	if exec.status.State != StateSucceeded {
		return nil, fmt.Errorf("execution %s is %s, results unavailable", executionID, exec.status.State)
	}
	return exec.result, nil
}
