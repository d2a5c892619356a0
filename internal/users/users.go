// Package users configures the generic engine for the users resource and
// owns the identity upsert used by the WithUser middleware.
package users

import (
	"context"

	"github.com/odiseo153/FeedBack-zone-sub001/internal/domain"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/middleware"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/relations"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/storage"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/validation"
)

var Spec = storage.Spec{
	Resource: "user",
	Table:    "users",
	Columns:  []string{"id", "name", "username", "email", "password", "bio", "avatar_url", "created_at", "updated_at"},
	Writable: storage.Set("name", "username", "email", "password", "bio", "avatar_url"),
	Filterable: map[string]storage.FilterKind{
		"name":     storage.FilterPartial,
		"username": storage.FilterPartial,
		"email":    storage.FilterExact,
	},
	Sortable:       storage.Set("name", "username", "created_at"),
	Includable:     storage.Set("projects", "comments"),
	DefaultSort:    "-created_at",
	TouchUpdatedAt: true,
}

var CreateRules = validation.Rules{
	"name":       "required,max=255",
	"username":   "required,min=2,max=64",
	"email":      "required,email",
	"password":   "required,min=8",
	"bio":        "omitempty,max=2000",
	"avatar_url": "omitempty,url",
}

var UpdateRules = CreateRules

func NewRepo(db storage.DB) *storage.Repository[domain.User] {
	return storage.NewRepository(db, Spec, map[string]storage.Loader[domain.User]{
		"projects": loadProjects,
		"comments": loadComments,
	})
}

func loadProjects(ctx context.Context, db storage.DB, items []*domain.User) error {
	ids := make([]int64, len(items))
	for i, u := range items {
		ids[i] = u.ID
	}
	byUser, err := relations.ProjectsByUserID(ctx, db, ids)
	if err != nil {
		return err
	}
	for _, u := range items {
		u.Projects = byUser[u.ID]
		u.ProjectsLoaded = true
	}
	return nil
}

func loadComments(ctx context.Context, db storage.DB, items []*domain.User) error {
	ids := make([]int64, len(items))
	for i, u := range items {
		ids[i] = u.ID
	}
	byUser, err := relations.CommentsByUserID(ctx, db, ids)
	if err != nil {
		return err
	}
	for _, u := range items {
		u.Comments = byUser[u.ID]
		u.CommentsLoaded = true
	}
	return nil
}

// Ensurer returns the upsert the WithUser middleware calls: identity headers
// become a users row, keyed by username, and the numeric id comes back.
func Ensurer(db storage.DB) middleware.EnsureFunc {
	return func(ctx context.Context, ident middleware.Identity) (int64, error) {
		const q = `
insert into users (name, username, email, password, avatar_url, updated_at)
values (coalesce(nullif($1,''), $2), $2, coalesce(nullif($3,''), $2 || '@local'), '', nullif($4,''), now())
on conflict (username) do update
set
  name = coalesce(nullif(excluded.name, ''), users.name),
  email = coalesce(nullif(excluded.email, ''), users.email),
  avatar_url = coalesce(excluded.avatar_url, users.avatar_url),
  updated_at = now()
returning id;
`
		var id int64
		err := db.QueryRow(ctx, q, ident.Name, ident.Username, ident.Email, ident.AvatarURL).Scan(&id)
		return id, err
	}
}
