// Package projects configures the generic engine for the projects resource
// and adds its policy hooks: the authenticated user becomes the owner, tag
// attachment happens atomically with the create, and an aggregate stats
// endpoint reports ratings and comment counts.
package projects

import (
	"context"

	"github.com/odiseo153/FeedBack-zone-sub001/internal/domain"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/relations"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/storage"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/validation"
)

// BrowsePerPage is the page-size default on browsing-oriented endpoints.
const BrowsePerPage = 12

var Spec = storage.Spec{
	Resource: "project",
	Table:    "projects",
	Columns:  []string{"id", "title", "description", "url", "image_url", "status", "likes_count", "user_id", "category_id", "created_at", "updated_at"},
	Writable: storage.Set("title", "description", "url", "image_url", "status", "user_id", "category_id"),
	Filterable: map[string]storage.FilterKind{
		"title":       storage.FilterPartial,
		"status":      storage.FilterExact,
		"user_id":     storage.FilterExact,
		"category_id": storage.FilterExact,
	},
	Sortable:       storage.Set("title", "created_at", "likes_count"),
	Includable:     storage.Set("user", "category", "tags", "comments"),
	DefaultSort:    "-created_at",
	TouchUpdatedAt: true,
}

var CreateRules = validation.Rules{
	"title":       "required,max=255",
	"description": "omitempty,max=10000",
	"url":         "omitempty,url",
	"image_url":   "omitempty,url",
	"status":      "required,oneof=draft published",
	"user_id":     "required,min=1",
	"category_id": "omitempty,min=1",
	"tag_ids":     "omitempty",
}

var UpdateRules = validation.Rules{
	"title":       "required,max=255",
	"description": "omitempty,max=10000",
	"url":         "omitempty,url",
	"image_url":   "omitempty,url",
	"status":      "required,oneof=draft published",
	"category_id": "omitempty,min=1",
}

func NewRepo(db storage.DB) *storage.Repository[domain.Project] {
	return storage.NewRepository(db, Spec, map[string]storage.Loader[domain.Project]{
		"user":     loadUser,
		"category": loadCategory,
		"tags":     loadTags,
		"comments": loadComments,
	})
}

func loadUser(ctx context.Context, db storage.DB, items []*domain.Project) error {
	ids := make([]int64, len(items))
	for i, p := range items {
		ids[i] = p.UserID
	}
	byID, err := relations.UsersByID(ctx, db, ids)
	if err != nil {
		return err
	}
	for _, p := range items {
		if u, ok := byID[p.UserID]; ok {
			uu := u
			p.User = &uu
		}
	}
	return nil
}

func loadCategory(ctx context.Context, db storage.DB, items []*domain.Project) error {
	ids := make([]int64, 0, len(items))
	for _, p := range items {
		if p.CategoryID != nil {
			ids = append(ids, *p.CategoryID)
		}
	}
	byID, err := relations.CategoriesByID(ctx, db, ids)
	if err != nil {
		return err
	}
	for _, p := range items {
		if p.CategoryID != nil {
			if cat, ok := byID[*p.CategoryID]; ok {
				c := cat
				p.Category = &c
			}
		}
		p.CategoryLoaded = true
	}
	return nil
}

func loadTags(ctx context.Context, db storage.DB, items []*domain.Project) error {
	ids := make([]int64, len(items))
	for i, p := range items {
		ids[i] = p.ID
	}
	byProject, err := relations.TagsByProjectID(ctx, db, ids)
	if err != nil {
		return err
	}
	for _, p := range items {
		p.Tags = byProject[p.ID]
		p.TagsLoaded = true
	}
	return nil
}

func loadComments(ctx context.Context, db storage.DB, items []*domain.Project) error {
	ids := make([]int64, len(items))
	for i, p := range items {
		ids[i] = p.ID
	}
	byProject, err := relations.CommentsByProjectID(ctx, db, ids)
	if err != nil {
		return err
	}
	for _, p := range items {
		p.Comments = byProject[p.ID]
		p.CommentsLoaded = true
	}
	return nil
}
