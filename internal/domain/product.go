package domain

import "time"

type Product struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description"`
	Price       float64   `db:"price" json:"price"`
	CategoryID  *int64    `db:"category_id" json:"category_id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`

	Category       *Category `db:"-" json:"-"`
	CategoryLoaded bool      `db:"-" json:"-"`
	User           *User     `db:"-" json:"-"`
}
