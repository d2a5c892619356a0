package comments

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odiseo153/FeedBack-zone-sub001/internal/apperrors"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/domain"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/middleware"
)

// fakeStore backs the creator's narrow find/create capabilities.
type fakeStore struct {
	byID    map[int64]domain.Comment
	created []map[string]any
}

func (f *fakeStore) FindByID(ctx context.Context, id int64, includes ...string) (domain.Comment, error) {
	cm, ok := f.byID[id]
	if !ok {
		return domain.Comment{}, apperrors.NotFound("comment", id)
	}
	return cm, nil
}

func (f *fakeStore) Create(ctx context.Context, fields map[string]any) (domain.Comment, error) {
	f.created = append(f.created, fields)
	return domain.Comment{ID: 100, ProjectID: fields["project_id"].(int64)}, nil
}

func TestCreatorParentScope(t *testing.T) {
	ctx := context.Background()

	t.Run("top-level comment needs no parent lookup", func(t *testing.T) {
		store := &fakeStore{}
		_, err := (&creator{find: store, create: store}).Create(ctx, map[string]any{
			"content": "hi", "project_id": int64(2), "user_id": int64(1),
		})
		require.NoError(t, err)
		assert.Len(t, store.created, 1)
	})

	t.Run("reply in the same project succeeds", func(t *testing.T) {
		store := &fakeStore{byID: map[int64]domain.Comment{
			5: {ID: 5, ProjectID: 2},
		}}
		_, err := (&creator{find: store, create: store}).Create(ctx, map[string]any{
			"content": "agreed", "project_id": int64(2), "user_id": int64(1), "parent_id": int64(5),
		})
		require.NoError(t, err)
		assert.Len(t, store.created, 1)
	})

	t.Run("parent from another project fails validation", func(t *testing.T) {
		store := &fakeStore{byID: map[int64]domain.Comment{
			5: {ID: 5, ProjectID: 9},
		}}
		_, err := (&creator{find: store, create: store}).Create(ctx, map[string]any{
			"content": "agreed", "project_id": int64(2), "user_id": int64(1), "parent_id": int64(5),
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
		assert.Contains(t, err.Error(), "different project")
		assert.Empty(t, store.created)
	})

	t.Run("missing parent fails validation, not 404", func(t *testing.T) {
		store := &fakeStore{}
		_, err := (&creator{find: store, create: store}).Create(ctx, map[string]any{
			"content": "agreed", "project_id": int64(2), "user_id": int64(1), "parent_id": int64(5),
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
		assert.False(t, apperrors.IsNotFound(err))
		assert.Empty(t, store.created)
	})
}

func TestAsInt64(t *testing.T) {
	v, ok := asInt64(int64(7))
	assert.True(t, ok)
	assert.Equal(t, int64(7), v)

	v, ok = asInt64(float64(7))
	assert.True(t, ok)
	assert.Equal(t, int64(7), v)

	_, ok = asInt64("7")
	assert.False(t, ok)

	_, ok = asInt64(nil)
	assert.False(t, ok)
}

func testCtx(t *testing.T) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	return c
}

func TestAttachUser(t *testing.T) {
	t.Run("fills user_id from context", func(t *testing.T) {
		c := testCtx(t)
		c.Set(middleware.CtxUserID, int64(42))

		fields := map[string]any{"content": "hi"}
		require.NoError(t, attachUser(c, fields))
		assert.Equal(t, int64(42), fields["user_id"])
	})

	t.Run("explicit user_id wins", func(t *testing.T) {
		c := testCtx(t)
		c.Set(middleware.CtxUserID, int64(42))

		fields := map[string]any{"user_id": float64(7)}
		require.NoError(t, attachUser(c, fields))
		assert.Equal(t, float64(7), fields["user_id"])
	})

	t.Run("anonymous write rejected", func(t *testing.T) {
		c := testCtx(t)

		err := attachUser(c, map[string]any{"content": "hi"})
		require.Error(t, err)
		var appErr *apperrors.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 403, appErr.Code)
	})
}
