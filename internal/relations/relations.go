// Package relations holds the batch fetchers the per-resource loaders share.
// Each fetcher issues one query for a whole page of parents, so includes
// never degrade into per-row lookups.
package relations

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/odiseo153/FeedBack-zone-sub001/internal/domain"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/storage"
)

const (
	userColumns     = "id, name, username, email, password, bio, avatar_url, created_at, updated_at"
	projectColumns  = "id, title, description, url, image_url, status, likes_count, user_id, category_id, created_at, updated_at"
	commentColumns  = "id, content, project_id, user_id, parent_id, created_at, updated_at"
	categoryColumns = "id, name, description, created_at, updated_at"
	productColumns  = "id, name, description, price, category_id, user_id, created_at, updated_at"
	tagColumns      = "id, name, created_at, updated_at"
)

func collect[T any](ctx context.Context, db storage.DB, sql string, arg any) ([]T, error) {
	rows, err := db.Query(ctx, sql, arg)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByNameLax[T])
}

// Dedupe drops duplicate and zero ids while keeping order.
func Dedupe(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func UsersByID(ctx context.Context, db storage.DB, ids []int64) (map[int64]domain.User, error) {
	ids = Dedupe(ids)
	if len(ids) == 0 {
		return map[int64]domain.User{}, nil
	}
	items, err := collect[domain.User](ctx, db,
		"select "+userColumns+" from users where id = any($1)", ids)
	if err != nil {
		return nil, err
	}
	out := make(map[int64]domain.User, len(items))
	for _, u := range items {
		out[u.ID] = u
	}
	return out, nil
}

func CategoriesByID(ctx context.Context, db storage.DB, ids []int64) (map[int64]domain.Category, error) {
	ids = Dedupe(ids)
	if len(ids) == 0 {
		return map[int64]domain.Category{}, nil
	}
	items, err := collect[domain.Category](ctx, db,
		"select "+categoryColumns+" from categories where id = any($1)", ids)
	if err != nil {
		return nil, err
	}
	out := make(map[int64]domain.Category, len(items))
	for _, cat := range items {
		out[cat.ID] = cat
	}
	return out, nil
}

func ProjectsByID(ctx context.Context, db storage.DB, ids []int64) (map[int64]domain.Project, error) {
	ids = Dedupe(ids)
	if len(ids) == 0 {
		return map[int64]domain.Project{}, nil
	}
	items, err := collect[domain.Project](ctx, db,
		"select "+projectColumns+" from projects where id = any($1)", ids)
	if err != nil {
		return nil, err
	}
	out := make(map[int64]domain.Project, len(items))
	for _, p := range items {
		out[p.ID] = p
	}
	return out, nil
}

func CommentsByID(ctx context.Context, db storage.DB, ids []int64) (map[int64]domain.Comment, error) {
	ids = Dedupe(ids)
	if len(ids) == 0 {
		return map[int64]domain.Comment{}, nil
	}
	items, err := collect[domain.Comment](ctx, db,
		"select "+commentColumns+" from comments where id = any($1)", ids)
	if err != nil {
		return nil, err
	}
	out := make(map[int64]domain.Comment, len(items))
	for _, cm := range items {
		out[cm.ID] = cm
	}
	return out, nil
}

func ProjectsByUserID(ctx context.Context, db storage.DB, userIDs []int64) (map[int64][]domain.Project, error) {
	userIDs = Dedupe(userIDs)
	out := map[int64][]domain.Project{}
	if len(userIDs) == 0 {
		return out, nil
	}
	items, err := collect[domain.Project](ctx, db,
		"select "+projectColumns+" from projects where user_id = any($1) order by created_at desc, id asc", userIDs)
	if err != nil {
		return nil, err
	}
	for _, p := range items {
		out[p.UserID] = append(out[p.UserID], p)
	}
	return out, nil
}

func CommentsByProjectID(ctx context.Context, db storage.DB, projectIDs []int64) (map[int64][]domain.Comment, error) {
	projectIDs = Dedupe(projectIDs)
	out := map[int64][]domain.Comment{}
	if len(projectIDs) == 0 {
		return out, nil
	}
	items, err := collect[domain.Comment](ctx, db,
		"select "+commentColumns+" from comments where project_id = any($1) order by created_at desc, id asc", projectIDs)
	if err != nil {
		return nil, err
	}
	for _, cm := range items {
		out[cm.ProjectID] = append(out[cm.ProjectID], cm)
	}
	return out, nil
}

func CommentsByUserID(ctx context.Context, db storage.DB, userIDs []int64) (map[int64][]domain.Comment, error) {
	userIDs = Dedupe(userIDs)
	out := map[int64][]domain.Comment{}
	if len(userIDs) == 0 {
		return out, nil
	}
	items, err := collect[domain.Comment](ctx, db,
		"select "+commentColumns+" from comments where user_id = any($1) order by created_at desc, id asc", userIDs)
	if err != nil {
		return nil, err
	}
	for _, cm := range items {
		out[cm.UserID] = append(out[cm.UserID], cm)
	}
	return out, nil
}

func ProductsByCategoryID(ctx context.Context, db storage.DB, categoryIDs []int64) (map[int64][]domain.Product, error) {
	categoryIDs = Dedupe(categoryIDs)
	out := map[int64][]domain.Product{}
	if len(categoryIDs) == 0 {
		return out, nil
	}
	items, err := collect[domain.Product](ctx, db,
		"select "+productColumns+" from products where category_id = any($1) order by created_at desc, id asc", categoryIDs)
	if err != nil {
		return nil, err
	}
	for _, p := range items {
		if p.CategoryID != nil {
			out[*p.CategoryID] = append(out[*p.CategoryID], p)
		}
	}
	return out, nil
}

// TagsByProjectID resolves the project_tags pivot in one query.
func TagsByProjectID(ctx context.Context, db storage.DB, projectIDs []int64) (map[int64][]domain.Tag, error) {
	projectIDs = Dedupe(projectIDs)
	out := map[int64][]domain.Tag{}
	if len(projectIDs) == 0 {
		return out, nil
	}
	rows, err := db.Query(ctx, `
select pt.project_id, t.id, t.name, t.created_at, t.updated_at
from project_tags pt
join tags t on t.id = pt.tag_id
where pt.project_id = any($1)
order by t.name asc, t.id asc`, projectIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var projectID int64
		var t domain.Tag
		if err := rows.Scan(&projectID, &t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out[projectID] = append(out[projectID], t)
	}
	return out, rows.Err()
}

// ProjectsByTagID resolves the pivot in the tag → projects direction.
func ProjectsByTagID(ctx context.Context, db storage.DB, tagIDs []int64) (map[int64][]domain.Project, error) {
	tagIDs = Dedupe(tagIDs)
	out := map[int64][]domain.Project{}
	if len(tagIDs) == 0 {
		return out, nil
	}
	rows, err := db.Query(ctx, `
select pt.tag_id, p.id, p.title, p.description, p.url, p.image_url, p.status, p.likes_count, p.user_id, p.category_id, p.created_at, p.updated_at
from project_tags pt
join projects p on p.id = pt.project_id
where pt.tag_id = any($1)
order by p.created_at desc, p.id asc`, tagIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var tagID int64
		var p domain.Project
		if err := rows.Scan(&tagID, &p.ID, &p.Title, &p.Description, &p.URL, &p.ImageURL, &p.Status,
			&p.LikesCount, &p.UserID, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out[tagID] = append(out[tagID], p)
	}
	return out, rows.Err()
}
