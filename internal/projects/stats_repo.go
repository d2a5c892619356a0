package projects

import (
	"context"
	"database/sql"
	"errors"

	"github.com/odiseo153/FeedBack-zone-sub001/internal/apperrors"
)

// ProjectStats is the aggregate view served by GET /projects/:id/stats.
type ProjectStats struct {
	ProjectID     int64   `json:"project_id"`
	AverageScore  float64 `json:"average_score"`
	RatingsCount  int64   `json:"ratings_count"`
	CommentsCount int64   `json:"comments_count"`
	LikesCount    int64   `json:"likes_count"`
}

// StatsRepository computes project aggregates over database/sql. It stays on
// the plain driver so the heavy grouped query is easy to exercise with
// sqlmock.
type StatsRepository struct {
	db *sql.DB
}

func NewStatsRepository(db *sql.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) GetByProjectID(ctx context.Context, projectID int64) (*ProjectStats, error) {
	const q = `
SELECT p.id,
       COALESCE(AVG(r.score), 0) AS average_score,
       COUNT(DISTINCT r.id)      AS ratings_count,
       COUNT(DISTINCT c.id)      AS comments_count,
       p.likes_count
FROM projects p
LEFT JOIN ratings r ON r.project_id = p.id
LEFT JOIN comments c ON c.project_id = p.id
WHERE p.id = $1
GROUP BY p.id, p.likes_count`

	var s ProjectStats
	err := r.db.QueryRowContext(ctx, q, projectID).Scan(
		&s.ProjectID, &s.AverageScore, &s.RatingsCount, &s.CommentsCount, &s.LikesCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("project", projectID)
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &s, nil
}
