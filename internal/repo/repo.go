// Package repo is the only layer domain services use for persistence. Every
// write goes to the remote database first and is mirrored into the session
// cache only on success, so the cache never claims a record the remote does
// not hold.
package repo

import (
	"context"

	"hospital-manager/internal/cache"
	"hospital-manager/internal/model"
	"hospital-manager/internal/store"
)

// ErrNotFound is re-exported so services don't reach into the store package.
var ErrNotFound = store.ErrNotFound

type Repo[T model.Entity] struct {
	col   *store.Collection[T]
	table *cache.Table[T]
}

func New[T model.Entity](col *store.Collection[T], table *cache.Table[T]) *Repo[T] {
	return &Repo[T]{col: col, table: table}
}

// Create persists the record remotely and mirrors it into the cache under
// the returned key. On failure the cache is left untouched.
func (r *Repo[T]) Create(ctx context.Context, e T) (string, error) {
	id, err := r.col.Create(ctx, e)
	if err != nil {
		return "", err
	}
	r.table.Put(id, e)
	return id, nil
}

// Update replaces the whole record, remote first.
func (r *Repo[T]) Update(ctx context.Context, id string, e T) error {
	if err := r.col.Update(ctx, id, e); err != nil {
		return err
	}
	r.table.Put(id, e)
	return nil
}

// UpdateField patches one attribute remotely, then mirrors the already
// updated record. Callers mutate a copy and pass it here so a failed patch
// leaves the cached record as it was.
func (r *Repo[T]) UpdateField(ctx context.Context, id, field string, value any, updated T) error {
	if err := r.col.UpdateField(ctx, id, field, value); err != nil {
		return err
	}
	r.table.Put(id, updated)
	return nil
}

func (r *Repo[T]) DeleteByID(ctx context.Context, id string) error {
	if err := r.col.Delete(ctx, id); err != nil {
		return err
	}
	r.table.Remove(id)
	return nil
}

// Get serves reads from the cache; the remote is consulted only by Refresh.
func (r *Repo[T]) Get(id string) (T, bool) {
	return r.table.Get(id)
}

func (r *Repo[T]) All() []T {
	return r.table.Values()
}

// Entries returns a copy of the cached key-to-record mapping.
func (r *Repo[T]) Entries() map[string]T {
	return r.table.Entries()
}

// Refresh replaces the cached mapping with the remote contents. On fetch
// failure the kind is reset to empty rather than left stale.
func (r *Repo[T]) Refresh(ctx context.Context) error {
	all, err := r.col.GetAll(ctx)
	if err != nil {
		r.table.ReplaceAll(nil)
		return err
	}
	r.table.ReplaceAll(all)
	return nil
}

// FindByName resolves a display name against the cache; no remote call.
func FindByName[T interface {
	model.Entity
	model.Named
}](r *Repo[T], name string) (string, T, bool) {
	return cache.FindByName(r.table, name)
}

// DeleteByName resolves a display name against the cache and deletes the
// matching record. A miss reports ErrNotFound without any remote call.
func DeleteByName[T interface {
	model.Entity
	model.Named
}](ctx context.Context, r *Repo[T], name string) error {
	key, _, ok := cache.FindByName(r.table, name)
	if !ok {
		return ErrNotFound
	}
	return r.DeleteByID(ctx, key)
}

// Find scans the cached kind with an arbitrary predicate.
func (r *Repo[T]) Find(match func(T) bool) (string, T, bool) {
	return r.table.Find(match)
}
