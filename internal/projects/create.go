package projects

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odiseo153/FeedBack-zone-sub001/internal/domain"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/storage"
)

// creator replaces the generic create service: when the body carries
// tag_ids, the project row and its pivot rows are written in one
// transaction so a failed attach leaves no project behind.
type creator struct {
	pool *pgxpool.Pool
	repo *storage.Repository[domain.Project]
}

func (s *creator) Create(ctx context.Context, fields map[string]any) (domain.Project, error) {
	tagIDs := popTagIDs(fields)
	if len(tagIDs) == 0 {
		return s.repo.Create(ctx, fields)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return domain.Project{}, err
	}
	defer tx.Rollback(ctx)

	txRepo := s.repo.WithTx(tx)
	p, err := txRepo.Create(ctx, fields)
	if err != nil {
		return domain.Project{}, err
	}

	for _, tagID := range tagIDs {
		if _, err := tx.Exec(ctx,
			"insert into project_tags (project_id, tag_id) values ($1, $2)", p.ID, tagID); err != nil {
			return domain.Project{}, txRepo.Classify(err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Project{}, err
	}
	return p, nil
}

// popTagIDs removes tag_ids from the field map; JSON numbers arrive as
// float64, validated creates may already carry int64.
func popTagIDs(fields map[string]any) []int64 {
	raw, ok := fields["tag_ids"]
	delete(fields, "tag_ids")
	if !ok {
		return nil
	}

	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]int64, 0, len(list))
	for _, v := range list {
		switch n := v.(type) {
		case int64:
			out = append(out, n)
		case float64:
			out = append(out, int64(n))
		}
	}
	return out
}
