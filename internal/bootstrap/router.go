package bootstrap

import (
	"database/sql"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/odiseo153/FeedBack-zone-sub001/internal/api/http"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/categories"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/comments"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/likes"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/middleware"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/products"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/projects"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/ratings"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/tags"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/users"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	DB          *pgxpool.Pool
	SQLDB       *sql.DB
	Redis       *redis.Client
	CORSOrigins []string
	RateRPS     float64
	RateBurst   int
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.RequestID())
	if len(dep.CORSOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = dep.CORSOrigins
		corsCfg.AllowHeaders = append(corsCfg.AllowHeaders,
			"X-User-Id", "X-User-Name", "X-User-Email", "X-User-Photo", "X-Request-Id")
		r.Use(cors.New(corsCfg))
	}

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	if dep.RateRPS > 0 {
		api.Use(middleware.RateLimit(dep.RateRPS, dep.RateBurst))
	}
	api.Use(middleware.WithUser(users.Ensurer(dep.DB)))

	users.Register(api.Group("/users"), dep.DB)
	categories.Register(api.Group("/categories"), dep.DB)
	tags.Register(api.Group("/tags"), dep.DB)
	products.Register(api.Group("/products"), dep.DB)
	comments.Register(api.Group("/comments"), dep.DB)
	ratings.Register(api.Group("/ratings"), dep.DB)

	var stats *projects.StatsRepository
	if dep.SQLDB != nil {
		stats = projects.NewStatsRepository(dep.SQLDB)
	}
	projects.Register(api.Group("/projects"), projects.Deps{Pool: dep.DB, Stats: stats})

	var counter *likes.Counter
	if dep.Redis != nil {
		counter = likes.NewCounter(dep.Redis)
	}
	likes.Register(api.Group("/likes"), likes.Deps{DB: dep.DB, Counter: counter})

	return r
}
