// Package shapes projects domain entities into their wire Docs. Shapers are
// pure: deterministic for a given entity and load state, tolerant of
// partially loaded relations. Relations of a related entity are never loaded
// transitively, so nested docs render all-null relationship markers.
package shapes

import (
	"fmt"

	"github.com/odiseo153/FeedBack-zone-sub001/internal/domain"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/rest"
)

func self(resource string, id int64) *rest.Links {
	return &rest.Links{Self: fmt.Sprintf("/api/v1/%s/%d", resource, id)}
}

func many[T any](items []T, shape func(T) rest.Doc) []rest.Doc {
	docs := make([]rest.Doc, len(items))
	for i, it := range items {
		docs[i] = shape(it)
	}
	return docs
}

// User omits the password from attributes unconditionally.
func User(u domain.User) rest.Doc {
	return rest.Doc{
		ID: u.ID,
		Attributes: map[string]any{
			"name":       u.Name,
			"username":   u.Username,
			"email":      u.Email,
			"bio":        u.Bio,
			"avatar_url": u.AvatarURL,
			"created_at": u.CreatedAt,
			"updated_at": u.UpdatedAt,
		},
		Relationships: map[string]any{
			"projects": rest.RelMany(u.ProjectsLoaded, many(u.Projects, Project)),
			"comments": rest.RelMany(u.CommentsLoaded, many(u.Comments, Comment)),
		},
		Links: self("users", u.ID),
	}
}

func Project(p domain.Project) rest.Doc {
	var user any
	if p.User != nil {
		user = User(*p.User)
	}
	var category any
	if p.Category != nil {
		category = Category(*p.Category)
	}
	return rest.Doc{
		ID: p.ID,
		Attributes: map[string]any{
			"title":       p.Title,
			"description": p.Description,
			"url":         p.URL,
			"image_url":   p.ImageURL,
			"status":      p.Status,
			"likes_count": p.LikesCount,
			"user_id":     p.UserID,
			"category_id": p.CategoryID,
			"created_at":  p.CreatedAt,
			"updated_at":  p.UpdatedAt,
		},
		Relationships: map[string]any{
			"user":     rest.RelOne(p.User != nil, user),
			"category": rest.RelOne(p.CategoryLoaded, category),
			"tags":     rest.RelMany(p.TagsLoaded, many(p.Tags, Tag)),
			"comments": rest.RelMany(p.CommentsLoaded, many(p.Comments, Comment)),
		},
		Links: self("projects", p.ID),
	}
}

func Comment(cm domain.Comment) rest.Doc {
	var user any
	if cm.User != nil {
		user = User(*cm.User)
	}
	var project any
	if cm.Project != nil {
		project = Project(*cm.Project)
	}
	var parent any
	if cm.Parent != nil {
		parent = Comment(*cm.Parent)
	}
	return rest.Doc{
		ID: cm.ID,
		Attributes: map[string]any{
			"content":    cm.Content,
			"project_id": cm.ProjectID,
			"user_id":    cm.UserID,
			"parent_id":  cm.ParentID,
			"created_at": cm.CreatedAt,
			"updated_at": cm.UpdatedAt,
		},
		Relationships: map[string]any{
			"user":    rest.RelOne(cm.User != nil, user),
			"project": rest.RelOne(cm.Project != nil, project),
			"parent":  rest.RelOne(cm.ParentLoaded, parent),
		},
		Links: self("comments", cm.ID),
	}
}

func Rating(r domain.Rating) rest.Doc {
	var user any
	if r.User != nil {
		user = User(*r.User)
	}
	var project any
	if r.Project != nil {
		project = Project(*r.Project)
	}
	return rest.Doc{
		ID: r.ID,
		Attributes: map[string]any{
			"score":      r.Score,
			"project_id": r.ProjectID,
			"user_id":    r.UserID,
			"created_at": r.CreatedAt,
			"updated_at": r.UpdatedAt,
		},
		Relationships: map[string]any{
			"user":    rest.RelOne(r.User != nil, user),
			"project": rest.RelOne(r.Project != nil, project),
		},
		Links: self("ratings", r.ID),
	}
}

func Tag(t domain.Tag) rest.Doc {
	return rest.Doc{
		ID: t.ID,
		Attributes: map[string]any{
			"name":       t.Name,
			"created_at": t.CreatedAt,
			"updated_at": t.UpdatedAt,
		},
		Relationships: map[string]any{
			"projects": rest.RelMany(t.ProjectsLoaded, many(t.Projects, Project)),
		},
		Links: self("tags", t.ID),
	}
}

func Category(cat domain.Category) rest.Doc {
	return rest.Doc{
		ID: cat.ID,
		Attributes: map[string]any{
			"name":        cat.Name,
			"description": cat.Description,
			"created_at":  cat.CreatedAt,
			"updated_at":  cat.UpdatedAt,
		},
		Relationships: map[string]any{
			"products": rest.RelMany(cat.ProductsLoaded, many(cat.Products, Product)),
		},
		Links: self("categories", cat.ID),
	}
}

func Product(p domain.Product) rest.Doc {
	var category any
	if p.Category != nil {
		category = Category(*p.Category)
	}
	var user any
	if p.User != nil {
		user = User(*p.User)
	}
	return rest.Doc{
		ID: p.ID,
		Attributes: map[string]any{
			"name":        p.Name,
			"description": p.Description,
			"price":       p.Price,
			"category_id": p.CategoryID,
			"user_id":     p.UserID,
			"created_at":  p.CreatedAt,
			"updated_at":  p.UpdatedAt,
		},
		Relationships: map[string]any{
			"category": rest.RelOne(p.CategoryLoaded, category),
			"user":     rest.RelOne(p.User != nil, user),
		},
		Links: self("products", p.ID),
	}
}

func ProjectLike(l domain.ProjectLike) rest.Doc {
	var user any
	if l.User != nil {
		user = User(*l.User)
	}
	var project any
	if l.Project != nil {
		project = Project(*l.Project)
	}
	return rest.Doc{
		ID: l.ID,
		Attributes: map[string]any{
			"project_id": l.ProjectID,
			"user_id":    l.UserID,
			"created_at": l.CreatedAt,
		},
		Relationships: map[string]any{
			"user":    rest.RelOne(l.User != nil, user),
			"project": rest.RelOne(l.Project != nil, project),
		},
		Links: self("likes", l.ID),
	}
}
