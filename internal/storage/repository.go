package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/odiseo153/FeedBack-zone-sub001/internal/apperrors"
)

// DB is the slice of pgx both *pgxpool.Pool and pgx.Tx satisfy, so a
// repository can run inside or outside a transaction.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Loader populates one named relation on a batch of entities.
type Loader[T any] func(ctx context.Context, db DB, items []*T) error

// Repository implements the per-resource port (Create, FindByID, GetAll,
// Update, Delete) over a DB, driven entirely by the Spec.
type Repository[T any] struct {
	db      DB
	spec    Spec
	loaders map[string]Loader[T]
}

func NewRepository[T any](db DB, spec Spec, loaders map[string]Loader[T]) *Repository[T] {
	return &Repository[T]{db: db, spec: spec, loaders: loaders}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *Repository[T]) WithTx(tx DB) *Repository[T] {
	return &Repository[T]{db: tx, spec: r.spec, loaders: r.loaders}
}

func (r *Repository[T]) Spec() Spec { return r.spec }

// Create inserts the writable subset of fields and returns the stored row.
func (r *Repository[T]) Create(ctx context.Context, fields map[string]any) (T, error) {
	var zero T

	cols, args := r.writablePairs(fields)
	var sb strings.Builder
	if len(cols) == 0 {
		fmt.Fprintf(&sb, "insert into %s default values", r.spec.Table)
	} else {
		placeholders := make([]string, len(cols))
		for i := range cols {
			placeholders[i] = fmt.Sprintf("$%d", i+1)
		}
		fmt.Fprintf(&sb, "insert into %s (%s) values (%s)",
			r.spec.Table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))
	}
	fmt.Fprintf(&sb, " returning %s", strings.Join(r.spec.Columns, ", "))

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return zero, r.Classify(err)
	}
	ent, err := pgx.CollectOneRow(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		return zero, r.Classify(err)
	}
	return ent, nil
}

// FindByID returns the row or a not-found error, loading the requested
// relations. Relation names are checked against the includable allow-list.
func (r *Repository[T]) FindByID(ctx context.Context, id int64, includes ...string) (T, error) {
	var zero T

	for _, name := range includes {
		if !r.spec.Includable[name] {
			return zero, apperrors.BadRequest("include", "cannot include %q", name)
		}
	}

	q := fmt.Sprintf("select %s from %s where id = $1",
		strings.Join(r.spec.Columns, ", "), r.spec.Table)
	rows, err := r.db.Query(ctx, q, id)
	if err != nil {
		return zero, r.Classify(err)
	}
	ent, err := pgx.CollectOneRow(rows, pgx.RowToStructByNameLax[T])
	if errors.Is(err, pgx.ErrNoRows) {
		return zero, apperrors.NotFound(r.spec.Resource, id)
	}
	if err != nil {
		return zero, r.Classify(err)
	}

	if err := r.load(ctx, []*T{&ent}, includes); err != nil {
		return zero, err
	}
	return ent, nil
}

// GetAll returns one page of rows matching the validated query.
func (r *Repository[T]) GetAll(ctx context.Context, q Query) (Page[T], error) {
	where, args := r.whereClause(q.Filters)

	perPage := ClampPerPage(q.PerPage, DefaultPerPage)
	page := q.Page
	if page < 1 {
		page = 1
	}

	var total int64
	countSQL := fmt.Sprintf("select count(*) from %s%s", r.spec.Table, where)
	if err := r.db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return Page[T]{}, r.Classify(err)
	}

	listSQL := fmt.Sprintf("select %s from %s%s order by %s limit %d offset %d",
		strings.Join(r.spec.Columns, ", "), r.spec.Table, where,
		r.orderBy(q.Sorts), perPage, (page-1)*perPage)
	rows, err := r.db.Query(ctx, listSQL, args...)
	if err != nil {
		return Page[T]{}, r.Classify(err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		return Page[T]{}, r.Classify(err)
	}

	ptrs := make([]*T, len(items))
	for i := range items {
		ptrs[i] = &items[i]
	}
	if err := r.load(ctx, ptrs, q.Includes); err != nil {
		return Page[T]{}, err
	}

	return Page[T]{Items: items, Total: total, Page: page, PerPage: perPage}, nil
}

// Update changes only the provided writable fields. An empty field map is a
// read: the current row comes back unchanged.
func (r *Repository[T]) Update(ctx context.Context, id int64, fields map[string]any) (T, error) {
	var zero T

	cols, args := r.writablePairs(fields)
	if len(cols) == 0 {
		return r.FindByID(ctx, id)
	}

	sets := make([]string, len(cols))
	for i, c := range cols {
		sets[i] = fmt.Sprintf("%s = $%d", c, i+1)
	}
	if r.spec.TouchUpdatedAt {
		sets = append(sets, "updated_at = now()")
	}
	args = append(args, id)

	q := fmt.Sprintf("update %s set %s where id = $%d returning %s",
		r.spec.Table, strings.Join(sets, ", "), len(args), strings.Join(r.spec.Columns, ", "))
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return zero, r.Classify(err)
	}
	ent, err := pgx.CollectOneRow(rows, pgx.RowToStructByNameLax[T])
	if errors.Is(err, pgx.ErrNoRows) {
		return zero, apperrors.NotFound(r.spec.Resource, id)
	}
	if err != nil {
		return zero, r.Classify(err)
	}
	return ent, nil
}

// Delete removes the row, reporting whether it existed.
func (r *Repository[T]) Delete(ctx context.Context, id int64) (bool, error) {
	ct, err := r.db.Exec(ctx, fmt.Sprintf("delete from %s where id = $1", r.spec.Table), id)
	if err != nil {
		return false, r.Classify(err)
	}
	return ct.RowsAffected() > 0, nil
}

func (r *Repository[T]) load(ctx context.Context, items []*T, includes []string) error {
	if len(items) == 0 {
		return nil
	}
	for _, name := range includes {
		loader, ok := r.loaders[name]
		if !ok {
			return apperrors.BadRequest("include", "cannot include %q", name)
		}
		if err := loader(ctx, r.db, items); err != nil {
			return apperrors.From(err)
		}
	}
	return nil
}

// writablePairs filters fields through the writable allow-list and returns
// them in deterministic column order.
func (r *Repository[T]) writablePairs(fields map[string]any) ([]string, []any) {
	cols := make([]string, 0, len(fields))
	for name := range fields {
		if r.spec.Writable[name] {
			cols = append(cols, name)
		}
	}
	sort.Strings(cols)

	args := make([]any, len(cols))
	for i, c := range cols {
		args[i] = fields[c]
	}
	return cols, args
}

// whereClause renders validated filters. Exact filters compare the column's
// text form so numeric and string fields behave alike; partial filters use a
// wildcard-escaped case-insensitive containment match.
func (r *Repository[T]) whereClause(filters []FilterClause) (string, []any) {
	if len(filters) == 0 {
		return "", nil
	}
	conds := make([]string, 0, len(filters))
	args := make([]any, 0, len(filters))
	for _, f := range filters {
		switch f.Kind {
		case FilterPartial:
			conds = append(conds, fmt.Sprintf("%s ilike $%d", f.Field, len(args)+1))
			args = append(args, "%"+escapeLike(f.Value)+"%")
		default:
			conds = append(conds, fmt.Sprintf("%s::text = $%d", f.Field, len(args)+1))
			args = append(args, f.Value)
		}
	}
	return " where " + strings.Join(conds, " and "), args
}

// orderBy renders the sort expression, falling back to the Spec default.
// id ascending is always the final key so ties break by insertion order.
func (r *Repository[T]) orderBy(sorts []SortClause) string {
	if len(sorts) == 0 && r.spec.DefaultSort != "" {
		for _, part := range strings.Split(r.spec.DefaultSort, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			sorts = append(sorts, SortClause{
				Field: strings.TrimPrefix(part, "-"),
				Desc:  strings.HasPrefix(part, "-"),
			})
		}
	}

	keys := make([]string, 0, len(sorts)+1)
	for _, s := range sorts {
		dir := "asc"
		if s.Desc {
			dir = "desc"
		}
		keys = append(keys, s.Field+" "+dir)
	}
	keys = append(keys, "id asc")
	return strings.Join(keys, ", ")
}

// Classify maps store errors onto the app taxonomy. Unique violations become
// conflicts carrying the offending key; foreign key violations surface as
// validation failures on the referencing field.
func (r *Repository[T]) Classify(err error) error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			key := constraintKey(r.spec.Table, pgErr.ConstraintName)
			return apperrors.Conflict(key, fmt.Sprintf("%s already exists", r.spec.Resource))
		case pgerrcode.ForeignKeyViolation:
			field := constraintKey(r.spec.Table, pgErr.ConstraintName)
			return apperrors.Validation(apperrors.FieldError(field, "referenced row does not exist"))
		case pgerrcode.NotNullViolation:
			return apperrors.Validation(apperrors.FieldError(pgErr.ColumnName, "is required"))
		}
	}
	return apperrors.Internal(err)
}

// constraintKey derives the field name from a postgres constraint name such
// as "ratings_project_id_user_id_key" or "comments_project_id_fkey".
func constraintKey(table, constraint string) string {
	key := strings.TrimPrefix(constraint, table+"_")
	for _, suffix := range []string{"_key", "_fkey", "_idx", "_pkey"} {
		key = strings.TrimSuffix(key, suffix)
	}
	return key
}
