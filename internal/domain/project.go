package domain

import "time"

const (
	ProjectStatusDraft     = "draft"
	ProjectStatusPublished = "published"
)

type Project struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description"`
	URL         *string   `db:"url" json:"url"`
	ImageURL    *string   `db:"image_url" json:"image_url"`
	Status      string    `db:"status" json:"status"`
	LikesCount  int64     `db:"likes_count" json:"likes_count"`
	UserID      int64     `db:"user_id" json:"user_id"`
	CategoryID  *int64    `db:"category_id" json:"category_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`

	User           *User     `db:"-" json:"-"`
	Category       *Category `db:"-" json:"-"`
	CategoryLoaded bool      `db:"-" json:"-"`
	Tags           []Tag     `db:"-" json:"-"`
	TagsLoaded     bool      `db:"-" json:"-"`
	Comments       []Comment `db:"-" json:"-"`
	CommentsLoaded bool      `db:"-" json:"-"`
}
