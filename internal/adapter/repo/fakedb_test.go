package repo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"flatify/internal/sqlinline"
)

// fakeDB emulates the handful of statements the repositories issue, keyed by
// the query constant.
type fakeDB struct {
	now     time.Time
	rows    map[string][]fakeRecord
	users   map[string][]byte
	failErr error
	calls   []string
}

type fakeRecord struct {
	id          string
	userID      string
	fingerprint string
	createdAt   time.Time
	values      []any
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		now:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		rows:  map[string][]fakeRecord{},
		users: map[string][]byte{},
	}
}

func (f *fakeDB) tick() time.Time {
	f.now = f.now.Add(time.Second)
	return f.now
}

var insertTables = map[string]struct {
	table  string
	fpArg  int
	values func(args []any) []any
}{
	sqlinline.QInsertNoviceGeneration: {"novice", 6, func(a []any) []any { return []any{a[1], a[2], a[3], a[4], a[5]} }},
	sqlinline.QInsertProfessionalGeneration: {"professional", 5, func(a []any) []any { return []any{a[1], a[2], a[3], a[4]} }},
	sqlinline.QInsertImageEditorGeneration: {"image", 6, func(a []any) []any { return []any{a[1], a[2], a[3], a[4], a[5]} }},
}

var listTables = map[string]string{
	sqlinline.QListNoviceGenerations:       "novice",
	sqlinline.QListProfessionalGenerations: "professional",
	sqlinline.QListImageEditorGenerations:  "image",
}

var deleteTables = map[string]string{
	sqlinline.QDeleteNoviceGeneration:       "novice",
	sqlinline.QDeleteProfessionalGeneration: "professional",
	sqlinline.QDeleteImageEditorGeneration:  "image",
}

func (f *fakeDB) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	f.calls = append(f.calls, query)
	if f.failErr != nil {
		return pgconn.CommandTag{}, f.failErr
	}
	table, ok := deleteTables[query]
	if !ok {
		return pgconn.CommandTag{}, errors.New("unexpected exec")
	}
	id, owner := args[0].(string), args[1].(string)
	kept := f.rows[table][:0]
	deleted := 0
	for _, rec := range f.rows[table] {
		if rec.id == id && rec.userID == owner {
			deleted++
			continue
		}
		kept = append(kept, rec)
	}
	f.rows[table] = kept
	return pgconn.NewCommandTag(fmt.Sprintf("DELETE %d", deleted)), nil
}

func (f *fakeDB) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	f.calls = append(f.calls, query)
	if f.failErr != nil {
		return fakeRow{err: f.failErr}
	}
	if spec, ok := insertTables[query]; ok {
		owner := args[0].(string)
		fp := args[spec.fpArg].(string)
		for _, rec := range f.rows[spec.table] {
			if rec.userID == owner && rec.fingerprint == fp {
				return fakeRow{values: []any{rec.id, rec.createdAt, false}}
			}
		}
		rec := fakeRecord{
			id:          uuid.NewString(),
			userID:      owner,
			fingerprint: fp,
			createdAt:   f.tick(),
			values:      spec.values(args),
		}
		f.rows[spec.table] = append(f.rows[spec.table], rec)
		return fakeRow{values: []any{rec.id, rec.createdAt, true}}
	}
	switch query {
	case sqlinline.QSelectPromptHistory:
		raw, ok := f.users[args[0].(string)]
		if !ok {
			return fakeRow{err: pgx.ErrNoRows}
		}
		return fakeRow{values: []any{raw}}
	case sqlinline.QUpdatePromptHistory:
		id := args[0].(string)
		if _, ok := f.users[id]; !ok {
			return fakeRow{err: pgx.ErrNoRows}
		}
		f.users[id] = []byte(args[1].(string))
		return fakeRow{values: []any{f.users[id]}}
	}
	return fakeRow{err: errors.New("unexpected query_row")}
}

func (f *fakeDB) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	f.calls = append(f.calls, query)
	if f.failErr != nil {
		return nil, f.failErr
	}
	table, ok := listTables[query]
	if !ok {
		return nil, errors.New("unexpected query")
	}
	owner := args[0].(string)
	var matched []fakeRecord
	for _, rec := range f.rows[table] {
		if rec.userID == owner {
			matched = append(matched, rec)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].createdAt.After(matched[j].createdAt) })
	out := &fakeRows{}
	for _, rec := range matched {
		vals := append([]any{rec.id, rec.userID}, rec.values...)
		vals = append(vals, rec.createdAt)
		out.data = append(out.data, vals)
	}
	return out, nil
}

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assign(r.values, dest)
}

type fakeRows struct {
	data [][]any
	pos  int
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.data) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	return assign(r.data[r.pos-1], dest)
}

func (r *fakeRows) Values() ([]any, error) {
	return r.data[r.pos-1], nil
}

func assign(values []any, dest []any) error {
	if len(values) != len(dest) {
		return fmt.Errorf("scan: %d values into %d targets", len(values), len(dest))
	}
	for i, v := range values {
		switch d := dest[i].(type) {
		case *string:
			*d = v.(string)
		case *bool:
			*d = v.(bool)
		case *time.Time:
			*d = v.(time.Time)
		case *[]byte:
			*d = v.([]byte)
		default:
			return fmt.Errorf("scan: unsupported target %T", dest[i])
		}
	}
	return nil
}
