package domain

import "time"

// ProjectLike records one user liking one project, unique per pair.
type ProjectLike struct {
	ID        int64     `db:"id" json:"id"`
	ProjectID int64     `db:"project_id" json:"project_id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	User    *User    `db:"-" json:"-"`
	Project *Project `db:"-" json:"-"`
}
