// Package categories configures the generic engine for product categories.
package categories

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
	Resource: "category",
	Table:    "categories",
	Columns:  []string{"id", "name", "description", "created_at", "updated_at"},
	Writable: storage.Set("name", "description"),
	Filterable: map[string]storage.FilterKind{
		"name": storage.FilterPartial,
	},
	Sortable:       storage.Set("name", "created_at"),
	Includable:     storage.Set("products"),
	DefaultSort:    "-created_at",
	TouchUpdatedAt: true,
}

var CreateRules = validation.Rules{
	"name":        "required,max=255",
	"description": "omitempty,max=2000",
}

var UpdateRules = CreateRules

func NewRepo(db storage.DB) *storage.Repository[domain.Category] {
	return storage.NewRepository(db, Spec, map[string]storage.Loader[domain.Category]{
		"products": loadProducts,
	})
}

func loadProducts(ctx context.Context, db storage.DB, items []*domain.Category) error {
	ids := make([]int64, len(items))
	for i, cat := range items {
		ids[i] = cat.ID
	}
	byCategory, err := relations.ProductsByCategoryID(ctx, db, ids)
	if err != nil {
		return err
	}
	for _, cat := range items {
		cat.Products = byCategory[cat.ID]
		cat.ProductsLoaded = true
	}
	return nil
}

func Register(rg *gin.RouterGroup, db storage.DB) {
	repo := NewRepo(db)

	ct := &rest.Controller[domain.Category]{
		Spec:        Spec,
		Create:      services.NewCreate[domain.Category](repo),
		List:        services.NewList[domain.Category](repo),
		Find:        services.NewFind[domain.Category](repo),
		Update:      services.NewUpdate[domain.Category](repo),
		Delete:      services.NewDelete[domain.Category](repo),
		Shape:       shapes.Category,
		CreateRules: CreateRules,
		UpdateRules: UpdateRules,
	}
	ct.Register(rg)
}
