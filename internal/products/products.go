// Package products configures the generic engine for the products resource.
package products

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

// BrowsePerPage is the page-size default on browsing-oriented endpoints.
const BrowsePerPage = 12

var Spec = storage.Spec{
	Resource: "product",
	Table:    "products",
	Columns:  []string{"id", "name", "description", "price", "category_id", "user_id", "created_at", "updated_at"},
	Writable: storage.Set("name", "description", "price", "category_id", "user_id"),
	Filterable: map[string]storage.FilterKind{
		"name":        storage.FilterPartial,
		"category_id": storage.FilterExact,
		"user_id":     storage.FilterExact,
	},
	Sortable:       storage.Set("name", "price", "created_at"),
	Includable:     storage.Set("category", "user"),
	DefaultSort:    "-created_at",
	TouchUpdatedAt: true,
}

var CreateRules = validation.Rules{
	"name":        "required,max=255",
	"description": "omitempty,max=5000",
	"price":       "required,min=0",
	"category_id": "omitempty,min=1",
	"user_id":     "required,min=1",
}

var UpdateRules = CreateRules

func NewRepo(db storage.DB) *storage.Repository[domain.Product] {
	return storage.NewRepository(db, Spec, map[string]storage.Loader[domain.Product]{
		"category": loadCategory,
		"user":     loadUser,
	})
}

func loadCategory(ctx context.Context, db storage.DB, items []*domain.Product) error {
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

func loadUser(ctx context.Context, db storage.DB, items []*domain.Product) error {
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

	ct := &rest.Controller[domain.Product]{
		Spec:           Spec,
		Create:         services.NewCreate[domain.Product](repo),
		List:           services.NewList[domain.Product](repo),
		Find:           services.NewFind[domain.Product](repo),
		Update:         services.NewUpdate[domain.Product](repo),
		Delete:         services.NewDelete[domain.Product](repo),
		Shape:          shapes.Product,
		CreateRules:    CreateRules,
		UpdateRules:    UpdateRules,
		DefaultPerPage: BrowsePerPage,
		ShowIncludes:   []string{"category", "user"},
		BeforeCreate:   attachUser,
	}
	ct.Register(rg)
}
