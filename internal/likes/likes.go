package likes

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
	Resource: "like",
	Table:    "project_likes",
	Columns:  []string{"id", "project_id", "user_id", "created_at"},
	Writable: storage.Set("project_id", "user_id"),
	Filterable: map[string]storage.FilterKind{
		"project_id": storage.FilterExact,
		"user_id":    storage.FilterExact,
	},
	Sortable:    storage.Set("created_at"),
	Includable:  storage.Set("user", "project"),
	DefaultSort: "-created_at",
}

var CreateRules = validation.Rules{
	"project_id": "required,min=1",
	"user_id":    "required,min=1",
}

var UpdateRules = validation.Rules{}

func NewRepo(db storage.DB) *storage.Repository[domain.ProjectLike] {
	return storage.NewRepository(db, Spec, map[string]storage.Loader[domain.ProjectLike]{
		"user":    loadUser,
		"project": loadProject,
	})
}

func loadUser(ctx context.Context, db storage.DB, items []*domain.ProjectLike) error {
	ids := make([]int64, len(items))
	for i, l := range items {
		ids[i] = l.UserID
	}
	byID, err := relations.UsersByID(ctx, db, ids)
	if err != nil {
		return err
	}
	for _, l := range items {
		if u, ok := byID[l.UserID]; ok {
			uu := u
			l.User = &uu
		}
	}
	return nil
}

func loadProject(ctx context.Context, db storage.DB, items []*domain.ProjectLike) error {
	ids := make([]int64, len(items))
	for i, l := range items {
		ids[i] = l.ProjectID
	}
	byID, err := relations.ProjectsByID(ctx, db, ids)
	if err != nil {
		return err
	}
	for _, l := range items {
		if p, ok := byID[l.ProjectID]; ok {
			pp := p
			l.Project = &pp
		}
	}
	return nil
}

// service wraps create/delete so the redis counter tracks the row changes.
// The counter is advisory; a failed bump never fails the request.
type service struct {
	repo    *storage.Repository[domain.ProjectLike]
	counter *Counter
}

func (s *service) Create(ctx context.Context, fields map[string]any) (domain.ProjectLike, error) {
	l, err := s.repo.Create(ctx, fields)
	if err != nil {
		return domain.ProjectLike{}, err
	}
	if s.counter != nil {
		_ = s.counter.Incr(ctx, l.ProjectID)
	}
	return l, nil
}

func (s *service) Delete(ctx context.Context, id int64) (bool, error) {
	l, err := s.repo.FindByID(ctx, id)
	if apperrors.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if removed && s.counter != nil {
		_ = s.counter.Decr(ctx, l.ProjectID)
	}
	return removed, nil
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

// Deps bundles what the likes routes need.
type Deps struct {
	DB      storage.DB
	Counter *Counter
}

func Register(rg *gin.RouterGroup, dep Deps) {
	repo := NewRepo(dep.DB)
	svc := &service{repo: repo, counter: dep.Counter}

	ct := &rest.Controller[domain.ProjectLike]{
		Spec:         Spec,
		Create:       svc,
		List:         services.NewList[domain.ProjectLike](repo),
		Find:         services.NewFind[domain.ProjectLike](repo),
		Update:       services.NewUpdate[domain.ProjectLike](repo),
		Delete:       svc,
		Shape:        shapes.ProjectLike,
		CreateRules:  CreateRules,
		UpdateRules:  UpdateRules,
		BeforeCreate: attachUser,
	}
	ct.Register(rg)
}
