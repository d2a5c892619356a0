package shapes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odiseo153/FeedBack-zone-sub001/internal/domain"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/rest"
)

var now = time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC)

func TestUser_PasswordNeverExposed(t *testing.T) {
	doc := User(domain.User{
		ID:       1,
		Name:     "Ada",
		Username: "ada",
		Email:    "ada@example.com",
		Password: "s3cret-hash",
	})

	assert.NotContains(t, doc.Attributes, "password")
	assert.Equal(t, "ada", doc.Attributes["username"])
	assert.Equal(t, "/api/v1/users/1", doc.Links.Self)
}

func TestProject_UnloadedRelationsRenderNull(t *testing.T) {
	doc := Project(domain.Project{ID: 2, Title: "Demo", Status: domain.ProjectStatusDraft})

	for _, rel := range []string{"user", "category", "tags", "comments"} {
		require.Contains(t, doc.Relationships, rel)
		assert.Nil(t, doc.Relationships[rel], rel)
	}
}

func TestProject_LoadedRelationsWrapData(t *testing.T) {
	bio := "builder"
	p := domain.Project{
		ID:         2,
		Title:      "Demo",
		Status:     domain.ProjectStatusPublished,
		UserID:     1,
		CreatedAt:  now,
		User:       &domain.User{ID: 1, Username: "ada", Bio: &bio},
		TagsLoaded: true,
		Tags:       []domain.Tag{{ID: 10, Name: "go"}},
	}
	doc := Project(p)

	user := doc.Relationships["user"].(map[string]any)
	require.Contains(t, user, "data")
	assert.Equal(t, int64(1), user["data"].(rest.Doc).ID)

	tags := doc.Relationships["tags"].(map[string]any)
	docs := tags["data"].([]rest.Doc)
	require.Len(t, docs, 1)
	assert.Equal(t, "go", docs[0].Attributes["name"])
}

func TestRelationLoadIsNotTransitive(t *testing.T) {
	p := domain.Project{
		ID:   2,
		User: &domain.User{ID: 1, Username: "ada"},
	}
	doc := Project(p)

	// the nested user doc carries its own all-null relationship markers
	nested := doc.Relationships["user"].(map[string]any)["data"].(rest.Doc)
	assert.Nil(t, nested.Relationships["projects"])
	assert.Nil(t, nested.Relationships["comments"])
}

func TestProject_LoadedEmptyTagsRenderEmptyList(t *testing.T) {
	doc := Project(domain.Project{ID: 2, TagsLoaded: true, Tags: nil})

	tags := doc.Relationships["tags"].(map[string]any)
	require.Contains(t, tags, "data")
	assert.Empty(t, tags["data"])
}

func TestProject_LoadedNullCategory(t *testing.T) {
	doc := Project(domain.Project{ID: 2, CategoryLoaded: true, Category: nil})

	cat := doc.Relationships["category"].(map[string]any)
	require.Contains(t, cat, "data")
	assert.Nil(t, cat["data"])
}

func TestComment_ParentMarker(t *testing.T) {
	parentID := int64(5)
	reply := domain.Comment{
		ID:           6,
		Content:      "agreed",
		ProjectID:    2,
		UserID:       1,
		ParentID:     &parentID,
		ParentLoaded: true,
		Parent:       &domain.Comment{ID: 5, Content: "root", ProjectID: 2, UserID: 3},
	}
	doc := Comment(reply)

	parent := doc.Relationships["parent"].(map[string]any)
	require.Contains(t, parent, "data")
	assert.Equal(t, &parentID, doc.Attributes["parent_id"])

	// top-level comment, parent relation loaded but absent
	root := Comment(domain.Comment{ID: 5, ParentLoaded: true})
	assert.Equal(t, map[string]any{"data": any(nil)}, root.Relationships["parent"])
}

func TestRating(t *testing.T) {
	doc := Rating(domain.Rating{ID: 3, Score: 4, ProjectID: 2, UserID: 1})

	assert.Equal(t, int64(3), doc.ID)
	assert.Equal(t, "/api/v1/ratings/3", doc.Links.Self)
	assert.Nil(t, doc.Relationships["user"])
	assert.Nil(t, doc.Relationships["project"])
}

func TestProjectLike(t *testing.T) {
	doc := ProjectLike(domain.ProjectLike{ID: 9, ProjectID: 2, UserID: 1, CreatedAt: now})

	assert.Equal(t, "/api/v1/likes/9", doc.Links.Self)
	assert.Equal(t, int64(2), doc.Attributes["project_id"])
	assert.NotContains(t, doc.Attributes, "updated_at")
}
