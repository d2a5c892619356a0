package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID    int64  `db:"id"`
	Title string `db:"title"`
}

func testRepo() *Repository[row] {
	return NewRepository[row](nil, testSpec(), nil)
}

func TestWhereClause(t *testing.T) {
	r := testRepo()

	t.Run("empty", func(t *testing.T) {
		where, args := r.whereClause(nil)
		assert.Empty(t, where)
		assert.Empty(t, args)
	})

	t.Run("exact and partial", func(t *testing.T) {
		where, args := r.whereClause([]FilterClause{
			{Field: "status", Kind: FilterExact, Value: "published"},
			{Field: "title", Kind: FilterPartial, Value: "50%_off"},
		})

		assert.Equal(t, " where status::text = $1 and title ilike $2", where)
		require.Len(t, args, 2)
		assert.Equal(t, "published", args[0])
		assert.Equal(t, `%50\%\_off%`, args[1])
	})
}

func TestOrderBy(t *testing.T) {
	r := testRepo()

	t.Run("default sort with id tiebreak", func(t *testing.T) {
		assert.Equal(t, "created_at desc, id asc", r.orderBy(nil))
	})

	t.Run("caller sorts in order", func(t *testing.T) {
		got := r.orderBy([]SortClause{
			{Field: "title", Desc: false},
			{Field: "created_at", Desc: true},
		})
		assert.Equal(t, "title asc, created_at desc, id asc", got)
	})
}

func TestWritablePairs(t *testing.T) {
	r := testRepo()

	cols, args := r.writablePairs(map[string]any{
		"title":      "Demo",
		"status":     "draft",
		"id":         int64(99),   // never writable
		"created_at": "2024-01-01", // store-owned
		"unknown":    "x",
	})

	assert.Equal(t, []string{"status", "title"}, cols)
	assert.Equal(t, []any{"draft", "Demo"}, args)
}

func TestConstraintKey(t *testing.T) {
	assert.Equal(t, "project_id_user_id", constraintKey("ratings", "ratings_project_id_user_id_key"))
	assert.Equal(t, "project_id", constraintKey("comments", "comments_project_id_fkey"))
	assert.Equal(t, "username", constraintKey("users", "users_username_key"))
}
