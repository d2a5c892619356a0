package projects

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPopTagIDs(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		fields := map[string]any{"title": "x"}
		assert.Nil(t, popTagIDs(fields))
		assert.Contains(t, fields, "title")
	})

	t.Run("mixed numeric forms", func(t *testing.T) {
		fields := map[string]any{"tag_ids": []any{float64(1), int64(2), float64(3)}}
		assert.Equal(t, []int64{1, 2, 3}, popTagIDs(fields))
		assert.NotContains(t, fields, "tag_ids")
	})

	t.Run("non-list removed without panic", func(t *testing.T) {
		fields := map[string]any{"tag_ids": "oops"}
		assert.Nil(t, popTagIDs(fields))
		assert.NotContains(t, fields, "tag_ids")
	})

	t.Run("non-numeric elements skipped", func(t *testing.T) {
		fields := map[string]any{"tag_ids": []any{float64(1), "two"}}
		assert.Equal(t, []int64{1}, popTagIDs(fields))
	})
}
