// Package services wraps a resource's repository port in five one-method
// capabilities, so handlers depend on exactly the operation they dispatch
// and each one can be substituted in isolation.
package services

import (
	"context"

	"github.com/odiseo153/FeedBack-zone-sub001/internal/storage"
)

// Port is the full per-resource repository contract.
type Port[T any] interface {
	Create(ctx context.Context, fields map[string]any) (T, error)
	FindByID(ctx context.Context, id int64, includes ...string) (T, error)
	GetAll(ctx context.Context, q storage.Query) (storage.Page[T], error)
	Update(ctx context.Context, id int64, fields map[string]any) (T, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// The wrappers add no logic: errors propagate unchanged and no call is
// retried.

type Create[T any] struct{ port Port[T] }

func NewCreate[T any](p Port[T]) *Create[T] { return &Create[T]{port: p} }

func (s *Create[T]) Create(ctx context.Context, fields map[string]any) (T, error) {
	return s.port.Create(ctx, fields)
}

type List[T any] struct{ port Port[T] }

func NewList[T any](p Port[T]) *List[T] { return &List[T]{port: p} }

func (s *List[T]) GetAll(ctx context.Context, q storage.Query) (storage.Page[T], error) {
	return s.port.GetAll(ctx, q)
}

type Find[T any] struct{ port Port[T] }

func NewFind[T any](p Port[T]) *Find[T] { return &Find[T]{port: p} }

func (s *Find[T]) FindByID(ctx context.Context, id int64, includes ...string) (T, error) {
	return s.port.FindByID(ctx, id, includes...)
}

type Update[T any] struct{ port Port[T] }

func NewUpdate[T any](p Port[T]) *Update[T] { return &Update[T]{port: p} }

func (s *Update[T]) Update(ctx context.Context, id int64, fields map[string]any) (T, error) {
	return s.port.Update(ctx, id, fields)
}

type Delete[T any] struct{ port Port[T] }

func NewDelete[T any](p Port[T]) *Delete[T] { return &Delete[T]{port: p} }

func (s *Delete[T]) Delete(ctx context.Context, id int64) (bool, error) {
	return s.port.Delete(ctx, id)
}
