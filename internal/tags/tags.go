// Package tags configures the generic engine for project tags.
package tags

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/odiseo153/FeedBack-zone-sub001/internal/domain"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/relations"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/rest"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/services"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/shapes"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/storage"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/validation"
)

var Spec = storage.Spec{
	Resource: "tag",
	Table:    "tags",
	Columns:  []string{"id", "name", "created_at", "updated_at"},
	Writable: storage.Set("name"),
	Filterable: map[string]storage.FilterKind{
		"name": storage.FilterPartial,
	},
	Sortable:       storage.Set("name", "created_at"),
	Includable:     storage.Set("projects"),
	DefaultSort:    "-created_at",
	TouchUpdatedAt: true,
}

var CreateRules = validation.Rules{
	"name": "required,max=64",
}

var UpdateRules = CreateRules

func NewRepo(db storage.DB) *storage.Repository[domain.Tag] {
	return storage.NewRepository(db, Spec, map[string]storage.Loader[domain.Tag]{
		"projects": loadProjects,
	})
}

func loadProjects(ctx context.Context, db storage.DB, items []*domain.Tag) error {
	ids := make([]int64, len(items))
	for i, t := range items {
		ids[i] = t.ID
	}
	byTag, err := relations.ProjectsByTagID(ctx, db, ids)
	if err != nil {
		return err
	}
	for _, t := range items {
		t.Projects = byTag[t.ID]
		t.ProjectsLoaded = true
	}
	return nil
}

func Register(rg *gin.RouterGroup, db storage.DB) {
	repo := NewRepo(db)

	ct := &rest.Controller[domain.Tag]{
		Spec:        Spec,
		Create:      services.NewCreate[domain.Tag](repo),
		List:        services.NewList[domain.Tag](repo),
		Find:        services.NewFind[domain.Tag](repo),
		Update:      services.NewUpdate[domain.Tag](repo),
		Delete:      services.NewDelete[domain.Tag](repo),
		Shape:       shapes.Tag,
		CreateRules: CreateRules,
		UpdateRules: UpdateRules,
	}
	ct.Register(rg)
}
