// Package domain holds the in-process representation of persisted records,
// independent of wire shape and storage schema. Relation fields are
// populated only when a caller requests them; the *Loaded flags record
// whether a relation was fetched at all.
package domain

import "time"

type User struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Username  string    `db:"username" json:"username"`
	Email     string    `db:"email" json:"email"`
	Password  string    `db:"password" json:"-"`
	Bio       *string   `db:"bio" json:"bio"`
	AvatarURL *string   `db:"avatar_url" json:"avatar_url"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	Projects       []Project `db:"-" json:"-"`
	ProjectsLoaded bool      `db:"-" json:"-"`
	Comments       []Comment `db:"-" json:"-"`
	CommentsLoaded bool      `db:"-" json:"-"`
}
