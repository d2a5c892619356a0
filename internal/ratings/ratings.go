// Package ratings configures the generic engine for project ratings. The
// (project_id, user_id) unique index is the only enforcement point for the
// one-rating-per-user rule; the repository surfaces its violation as a
// conflict, so concurrent duplicate creates lose cleanly with a 409.
package ratings

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/odiseo153/FeedBack-zone-sub001/internal/apperrors"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/domain"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/middleware"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/relations"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/rest"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/services"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/shapes"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/storage"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/validation"
)

var Spec = storage.Spec{
	Resource: "rating",
	Table:    "ratings",
	Columns:  []string{"id", "score", "project_id", "user_id", "created_at", "updated_at"},
	Writable: storage.Set("score", "project_id", "user_id"),
	Filterable: map[string]storage.FilterKind{
		"project_id": storage.FilterExact,
		"user_id":    storage.FilterExact,
		"score":      storage.FilterExact,
	},
	Sortable:       storage.Set("score", "created_at"),
	Includable:     storage.Set("user", "project"),
	DefaultSort:    "-created_at",
	TouchUpdatedAt: true,
}

var CreateRules = validation.Rules{
	"score":      "required,min=1,max=5",
	"project_id": "required,min=1",
	"user_id":    "required,min=1",
}

var UpdateRules = validation.Rules{
	"score": "required,min=1,max=5",
}

func NewRepo(db storage.DB) *storage.Repository[domain.Rating] {
	return storage.NewRepository(db, Spec, map[string]storage.Loader[domain.Rating]{
		"user":    loadUser,
		"project": loadProject,
	})
}

func loadUser(ctx context.Context, db storage.DB, items []*domain.Rating) error {
	ids := make([]int64, len(items))
	for i, r := range items {
		ids[i] = r.UserID
	}
	byID, err := relations.UsersByID(ctx, db, ids)
	if err != nil {
		return err
	}
	for _, r := range items {
		if u, ok := byID[r.UserID]; ok {
			uu := u
			r.User = &uu
		}
	}
	return nil
}

func loadProject(ctx context.Context, db storage.DB, items []*domain.Rating) error {
	ids := make([]int64, len(items))
	for i, r := range items {
		ids[i] = r.ProjectID
	}
	byID, err := relations.ProjectsByID(ctx, db, ids)
	if err != nil {
		return err
	}
	for _, r := range items {
		if p, ok := byID[r.ProjectID]; ok {
			pp := p
			r.Project = &pp
		}
	}
	return nil
}

func attachUser(c *gin.Context, fields map[string]any) error {
	if _, ok := fields["user_id"]; ok {
		return nil
	}
	uid := middleware.UserID(c)
	if uid == 0 {
		return apperrors.Forbidden("authentication required")
	}
	fields["user_id"] = uid
	return nil
}

func Register(rg *gin.RouterGroup, db storage.DB) {
	repo := NewRepo(db)

	ct := &rest.Controller[domain.Rating]{
		Spec:         Spec,
		Create:       services.NewCreate[domain.Rating](repo),
		List:         services.NewList[domain.Rating](repo),
		Find:         services.NewFind[domain.Rating](repo),
		Update:       services.NewUpdate[domain.Rating](repo),
		Delete:       services.NewDelete[domain.Rating](repo),
		Shape:        shapes.Rating,
		CreateRules:  CreateRules,
		UpdateRules:  UpdateRules,
		BeforeCreate: attachUser,
	}
	ct.Register(rg)
}
