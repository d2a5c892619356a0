// Package comments configures the generic engine for threaded project
// comments. The create path checks that a parent comment belongs to the
// same project before the row is written.
package comments

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
	Resource: "comment",
	Table:    "comments",
	Columns:  []string{"id", "content", "project_id", "user_id", "parent_id", "created_at", "updated_at"},
	Writable: storage.Set("content", "project_id", "user_id", "parent_id"),
	Filterable: map[string]storage.FilterKind{
		"content":    storage.FilterPartial,
		"project_id": storage.FilterExact,
		"user_id":    storage.FilterExact,
	},
	Sortable:       storage.Set("created_at"),
	Includable:     storage.Set("user", "project", "parent"),
	DefaultSort:    "-created_at",
	TouchUpdatedAt: true,
}

var CreateRules = validation.Rules{
	"content":    "required,max=5000",
	"project_id": "required,min=1",
	"user_id":    "required,min=1",
	"parent_id":  "omitempty,min=1",
}

var UpdateRules = validation.Rules{
	"content": "required,max=5000",
}

func NewRepo(db storage.DB) *storage.Repository[domain.Comment] {
	return storage.NewRepository(db, Spec, map[string]storage.Loader[domain.Comment]{
		"user":    loadUser,
		"project": loadProject,
		"parent":  loadParent,
	})
}

func loadUser(ctx context.Context, db storage.DB, items []*domain.Comment) error {
	ids := make([]int64, len(items))
	for i, cm := range items {
		ids[i] = cm.UserID
	}
	byID, err := relations.UsersByID(ctx, db, ids)
	if err != nil {
		return err
	}
	for _, cm := range items {
		if u, ok := byID[cm.UserID]; ok {
			uu := u
			cm.User = &uu
		}
	}
	return nil
}

func loadProject(ctx context.Context, db storage.DB, items []*domain.Comment) error {
	ids := make([]int64, len(items))
	for i, cm := range items {
		ids[i] = cm.ProjectID
	}
	byID, err := relations.ProjectsByID(ctx, db, ids)
	if err != nil {
		return err
	}
	for _, cm := range items {
		if p, ok := byID[cm.ProjectID]; ok {
			pp := p
			cm.Project = &pp
		}
	}
	return nil
}

func loadParent(ctx context.Context, db storage.DB, items []*domain.Comment) error {
	ids := make([]int64, 0, len(items))
	for _, cm := range items {
		if cm.ParentID != nil {
			ids = append(ids, *cm.ParentID)
		}
	}
	byID, err := relations.CommentsByID(ctx, db, ids)
	if err != nil {
		return err
	}
	for _, cm := range items {
		if cm.ParentID != nil {
			if parent, ok := byID[*cm.ParentID]; ok {
				p := parent
				cm.Parent = &p
			}
		}
		cm.ParentLoaded = true
	}
	return nil
}

// creator enforces the threading rule: a parent comment must live in the
// same project as the reply. It only needs find and create, so it holds the
// narrow capabilities rather than the concrete repository.
type creator struct {
	find   rest.Finder[domain.Comment]
	create rest.Creator[domain.Comment]
}

func (s *creator) Create(ctx context.Context, fields map[string]any) (domain.Comment, error) {
	if parentID, ok := asInt64(fields["parent_id"]); ok {
		projectID, _ := asInt64(fields["project_id"])

		parent, err := s.find.FindByID(ctx, parentID)
		if apperrors.IsNotFound(err) {
			return domain.Comment{}, apperrors.Validation(
				apperrors.FieldError("parent_id", "referenced comment does not exist"))
		}
		if err != nil {
			return domain.Comment{}, err
		}
		if parent.ProjectID != projectID {
			return domain.Comment{}, apperrors.Validation(
				apperrors.FieldError("parent_id", "parent comment belongs to a different project"))
		}
	}
	return s.create.Create(ctx, fields)
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
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

	ct := &rest.Controller[domain.Comment]{
		Spec:         Spec,
		Create:       &creator{find: repo, create: repo},
		List:         services.NewList[domain.Comment](repo),
		Find:         services.NewFind[domain.Comment](repo),
		Update:       services.NewUpdate[domain.Comment](repo),
		Delete:       services.NewDelete[domain.Comment](repo),
		Shape:        shapes.Comment,
		CreateRules:  CreateRules,
		UpdateRules:  UpdateRules,
		ShowIncludes: []string{"user", "parent"},
		BeforeCreate: attachUser,
	}
	ct.Register(rg)
}
