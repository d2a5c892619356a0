package domain

import "time"

// Rating is unique per (project, user) pair; the store's unique index is
// the single enforcement point, surfaced to callers as a conflict.
type Rating struct {
	ID        int64     `db:"id" json:"id"`
	Score     int       `db:"score" json:"score"`
	ProjectID int64     `db:"project_id" json:"project_id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	User    *User    `db:"-" json:"-"`
	Project *Project `db:"-" json:"-"`
}
