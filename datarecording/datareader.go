package datarecording

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"
)

// Filter selects and orders the rows returned by DataReader.Query.
type Filter struct {
	// Where is a condition with ? placeholders, for example "RunID = ?".
	Where string
	Args  []any

	// OrderBy lists the sort columns, for example "Time DESC".
	OrderBy string
}

func (f Filter) clauses() string {
	var b strings.Builder

	if f.Where != "" {
		b.WriteString(" WHERE ")
		b.WriteString(f.Where)
	}

	if f.OrderBy != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(f.OrderBy)
	}

	return b.String()
}

// DataReader reads the rows of a recording back into structs.
type DataReader interface {
	// MapTable binds a table to the struct type of its rows. A table must be
	// mapped before it is queried.
	MapTable(tableName string, sampleEntry any)

	// ListTables returns the mapped tables, sorted.
	ListTables() []string

	// Query returns one pointer to a new struct per selected row.
	Query(ctx context.Context, tableName string, filter Filter) ([]any, error)

	// Close closes the database.
	Close() error
}

type sqliteReader struct {
	db   *sql.DB
	rows map[string]reflect.Type
}

// NewReader opens a recording for reading. The file must exist.
func NewReader(dbFilename string) (DataReader, error) {
	if _, err := os.Stat(dbFilename); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbFilename)
	if err != nil {
		return nil, err
	}

	return NewReaderWithDB(db), nil
}

// NewReaderWithDB creates a DataReader on an open database.
func NewReaderWithDB(db *sql.DB) DataReader {
	return &sqliteReader{
		db:   db,
		rows: make(map[string]reflect.Type),
	}
}

func (r *sqliteReader) MapTable(tableName string, sampleEntry any) {
	r.rows[tableName] = reflect.TypeOf(sampleEntry)
}

func (r *sqliteReader) ListTables() []string {
	names := make([]string, 0, len(r.rows))
	for name := range r.rows {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func (r *sqliteReader) Query(
	ctx context.Context,
	tableName string,
	filter Filter,
) ([]any, error) {
	rowType, mapped := r.rows[tableName]
	if !mapped {
		return nil, fmt.Errorf("datarecording: table %s is not mapped", tableName)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT * FROM "+tableName+filter.clauses(), filter.Args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var entries []any
	for rows.Next() {
		entry := reflect.New(rowType)

		err = rows.Scan(scanTargets(entry.Elem(), columns)...)
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry.Interface())
	}

	return entries, rows.Err()
}

// scanTargets points each column at the struct field of the same name.
// Columns without a field are read and dropped.
func scanTargets(row reflect.Value, columns []string) []any {
	targets := make([]any, len(columns))

	for i, column := range columns {
		field := row.FieldByName(column)
		if !field.IsValid() || !field.CanSet() {
			targets[i] = new(any)
			continue
		}

		targets[i] = field.Addr().Interface()
	}

	return targets
}

func (r *sqliteReader) Close() error {
	return r.db.Close()
}
