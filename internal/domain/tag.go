package domain

import "time"

type Tag struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	Projects       []Project `db:"-" json:"-"`
	ProjectsLoaded bool      `db:"-" json:"-"`
}
