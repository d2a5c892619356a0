package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odiseo153/FeedBack-zone-sub001/internal/apperrors"
)

var rules = Rules{
	"title":   "required,max=10",
	"email":   "required,email",
	"score":   "required,min=1,max=5",
	"bio":     "omitempty,max=20",
	"user_id": "required,min=1",
}

func fieldSources(t *testing.T, err error) []string {
	t.Helper()
	var appErr *apperrors.Error
	require.True(t, errors.As(err, &appErr))
	out := make([]string, len(appErr.Items))
	for i, it := range appErr.Items {
		out[i] = it.Source
	}
	return out
}

func TestApply_Valid(t *testing.T) {
	out, err := Apply(rules, map[string]any{
		"title":   "Demo",
		"email":   "dev@example.com",
		"score":   float64(4),
		"user_id": float64(12),
		"ignored": "dropped silently",
	})
	require.NoError(t, err)

	assert.Equal(t, "Demo", out["title"])
	// integral JSON numbers bind to integer columns
	assert.Equal(t, int64(4), out["score"])
	assert.Equal(t, int64(12), out["user_id"])
	// only rule-listed fields pass through
	assert.NotContains(t, out, "ignored")
}

func TestApply_MissingRequired(t *testing.T) {
	_, err := Apply(rules, map[string]any{"title": "Demo"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	sources := fieldSources(t, err)
	assert.Contains(t, sources, "email")
	assert.Contains(t, sources, "score")
	assert.Contains(t, sources, "user_id")
	assert.NotContains(t, sources, "title")
	assert.NotContains(t, sources, "bio")
}

func TestApply_RuleViolations(t *testing.T) {
	_, err := Apply(rules, map[string]any{
		"title":   "way too long for the rule",
		"email":   "not-an-email",
		"score":   float64(9),
		"user_id": float64(1),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Len(t, fieldSources(t, err), 3)
}

func TestApplyPartial(t *testing.T) {
	t.Run("absent fields stay absent", func(t *testing.T) {
		out, err := ApplyPartial(rules, map[string]any{"title": "New"})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"title": "New"}, out)
	})

	t.Run("present fields still checked", func(t *testing.T) {
		_, err := ApplyPartial(rules, map[string]any{"score": float64(0)})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("explicit null clears nullable field", func(t *testing.T) {
		out, err := ApplyPartial(rules, map[string]any{"bio": nil})
		require.NoError(t, err)
		require.Contains(t, out, "bio")
		assert.Nil(t, out["bio"])
	})
}

func TestNormalizeKeepsFractions(t *testing.T) {
	out, err := Apply(Rules{"price": "required,min=0"}, map[string]any{"price": 9.99})
	require.NoError(t, err)
	assert.Equal(t, 9.99, out["price"])
}
