package domain

import "time"

type Comment struct {
	ID        int64     `db:"id" json:"id"`
	Content   string    `db:"content" json:"content"`
	ProjectID int64     `db:"project_id" json:"project_id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	ParentID  *int64    `db:"parent_id" json:"parent_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	User         *User    `db:"-" json:"-"`
	Project      *Project `db:"-" json:"-"`
	Parent       *Comment `db:"-" json:"-"`
	ParentLoaded bool     `db:"-" json:"-"`
}
