package rest

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/odiseo153/FeedBack-zone-sub001/internal/apperrors"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/storage"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/validation"
)

// Narrow capabilities the controller dispatches to, one per operation.
type (
	Creator[T any] interface {
		Create(ctx context.Context, fields map[string]any) (T, error)
	}
	Lister[T any] interface {
		GetAll(ctx context.Context, q storage.Query) (storage.Page[T], error)
	}
	Finder[T any] interface {
		FindByID(ctx context.Context, id int64, includes ...string) (T, error)
	}
	Updater[T any] interface {
		Update(ctx context.Context, id int64, fields map[string]any) (T, error)
	}
	Deleter[T any] interface {
		Delete(ctx context.Context, id int64) (bool, error)
	}
)

// Controller is the generic dispatcher for one resource: it binds the five
// services and the shaper, then exposes index/store/show/update/destroy as
// pure delegation. Per-resource policy lives in the hook fields.
type Controller[T any] struct {
	Spec   storage.Spec
	Create Creator[T]
	List   Lister[T]
	Find   Finder[T]
	Update Updater[T]
	Delete Deleter[T]
	Shape  Shaper[T]

	CreateRules validation.Rules
	UpdateRules validation.Rules

	// DefaultPerPage overrides the global page-size default; browse
	// oriented resources set this to 12.
	DefaultPerPage int
	// ShowIncludes are relations eagerly loaded on show.
	ShowIncludes []string
	// BeforeCreate runs on the bound field map before validation;
	// resources use it to attach the authenticated user id or defaults.
	BeforeCreate func(c *gin.Context, fields map[string]any) error
}

// Register attaches the resource routes to the given router group.
func (ct *Controller[T]) Register(rg *gin.RouterGroup) {
	rg.GET("", ct.index)
	rg.POST("", ct.store)
	rg.GET("/:id", ct.show)
	rg.PATCH("/:id", ct.update)
	rg.DELETE("/:id", ct.destroy)
}

func (ct *Controller[T]) perPage() int {
	if ct.DefaultPerPage > 0 {
		return ct.DefaultPerPage
	}
	return storage.DefaultPerPage
}

func (ct *Controller[T]) index(c *gin.Context) {
	q, err := storage.ParseQuery(ct.Spec, c.Request.URL.Query(), ct.perPage())
	if err != nil {
		RespondError(c, err)
		return
	}

	page, err := ct.List.GetAll(c.Request.Context(), q)
	if err != nil {
		RespondError(c, err)
		return
	}

	docs := make([]Doc, len(page.Items))
	for i, item := range page.Items {
		docs[i] = ct.Shape(item)
	}
	c.JSON(http.StatusOK, gin.H{
		"data": docs,
		"meta": Meta{Page: page.Page, PerPage: page.PerPage, Total: page.Total},
	})
}

func (ct *Controller[T]) store(c *gin.Context) {
	fields, ok := ct.bindFields(c)
	if !ok {
		return
	}
	if ct.BeforeCreate != nil {
		if err := ct.BeforeCreate(c, fields); err != nil {
			RespondError(c, err)
			return
		}
	}

	validated, err := validation.Apply(ct.CreateRules, fields)
	if err != nil {
		RespondError(c, err)
		return
	}

	ent, err := ct.Create.Create(c.Request.Context(), validated)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": ct.Shape(ent)})
}

func (ct *Controller[T]) show(c *gin.Context) {
	id, ok := ct.paramID(c)
	if !ok {
		return
	}

	ent, err := ct.Find.FindByID(c.Request.Context(), id, ct.ShowIncludes...)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ct.Shape(ent)})
}

func (ct *Controller[T]) update(c *gin.Context) {
	id, ok := ct.paramID(c)
	if !ok {
		return
	}
	fields, ok := ct.bindFields(c)
	if !ok {
		return
	}

	validated, err := validation.ApplyPartial(ct.UpdateRules, fields)
	if err != nil {
		RespondError(c, err)
		return
	}

	ent, err := ct.Update.Update(c.Request.Context(), id, validated)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ct.Shape(ent)})
}

func (ct *Controller[T]) destroy(c *gin.Context) {
	id, ok := ct.paramID(c)
	if !ok {
		return
	}

	removed, err := ct.Delete.Delete(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	if !removed {
		RespondError(c, apperrors.NotFound(ct.Spec.Resource, id))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": ct.Spec.Resource + " deleted"})
}

func (ct *Controller[T]) paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		RespondError(c, apperrors.BadRequest("id", "invalid id %q", c.Param("id")))
		return 0, false
	}
	return id, true
}

func (ct *Controller[T]) bindFields(c *gin.Context) (map[string]any, bool) {
	fields := map[string]any{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		RespondError(c, apperrors.BadRequest("body", "invalid json body"))
		return nil, false
	}
	return fields, true
}
