package projects

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odiseo153/FeedBack-zone-sub001/internal/apperrors"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/domain"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/middleware"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/rest"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/services"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/shapes"
)

// Deps bundles what the projects routes need beyond the pool.
type Deps struct {
	Pool  *pgxpool.Pool
	Stats *StatsRepository
}

// attachDefaults is the create policy hook: owner comes from the identity
// context and status defaults to published.
func attachDefaults(c *gin.Context, fields map[string]any) error {
	if _, ok := fields["user_id"]; !ok {
		uid := middleware.UserID(c)
		if uid == 0 {
			return apperrors.Forbidden("authentication required")
		}
		fields["user_id"] = uid
	}
	if _, ok := fields["status"]; !ok {
		fields["status"] = domain.ProjectStatusPublished
	}
	return nil
}

// Register wires the projects resource plus its stats endpoint.
func Register(rg *gin.RouterGroup, dep Deps) {
	repo := NewRepo(dep.Pool)

	ct := &rest.Controller[domain.Project]{
		Spec:           Spec,
		Create:         &creator{pool: dep.Pool, repo: repo},
		List:           services.NewList[domain.Project](repo),
		Find:           services.NewFind[domain.Project](repo),
		Update:         services.NewUpdate[domain.Project](repo),
		Delete:         services.NewDelete[domain.Project](repo),
		Shape:          shapes.Project,
		CreateRules:    CreateRules,
		UpdateRules:    UpdateRules,
		DefaultPerPage: BrowsePerPage,
		ShowIncludes:   []string{"user", "category", "tags", "comments"},
		BeforeCreate:   attachDefaults,
	}
	ct.Register(rg)

	if dep.Stats != nil {
		rg.GET("/:id/stats", statsHandler(dep.Stats))
	}
}

func statsHandler(stats *StatsRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || id < 1 {
			rest.RespondError(c, apperrors.BadRequest("id", "invalid id %q", c.Param("id")))
			return
		}

		s, err := stats.GetByProjectID(c.Request.Context(), id)
		if err != nil {
			rest.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": s})
	}
}
