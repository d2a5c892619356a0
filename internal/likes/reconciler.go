package likes

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/odiseo153/FeedBack-zone-sub001/internal/storage"
)

// Reconciler folds pending redis like deltas into projects.likes_count.
type Reconciler struct {
	db      storage.DB
	counter *Counter
}

func NewReconciler(db storage.DB, counter *Counter) *Reconciler {
	return &Reconciler{db: db, counter: counter}
}

// Run drains the dirty set and applies one UPDATE per project with a
// pending delta. A failed update puts the delta back so no like is lost.
func (r *Reconciler) Run(ctx context.Context) error {
	ids, err := r.counter.TakeDirty(ctx)
	if err != nil {
		return err
	}

	for _, projectID := range ids {
		delta, err := r.counter.TakeDelta(ctx, projectID)
		if err != nil {
			return err
		}
		if delta == 0 {
			continue
		}

		_, err = r.db.Exec(ctx,
			"update projects set likes_count = greatest(likes_count + $1, 0), updated_at = now() where id = $2",
			delta, projectID)
		if err != nil {
			if rerr := r.counter.bump(ctx, projectID, delta); rerr != nil {
				log.Printf("likes reconcile: re-queue project %d failed: %v", projectID, rerr)
			}
			return err
		}
	}
	return nil
}

// Schedule registers the reconcile job on the given cron, e.g. "@every 1m".
func (r *Reconciler) Schedule(c *cron.Cron, spec string) (cron.EntryID, error) {
	return c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := r.Run(ctx); err != nil {
			log.Printf("likes reconcile failed: %v", err)
		}
	})
}
