package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"

	"hospital-manager/internal/model"
)

// ErrNotFound marks a lookup miss. The database answers "null" for absent
// records instead of a 404, so absence is detected from the body.
var ErrNotFound = errors.New("record not found")

// Collection performs typed CRUD against one top-level node of the remote
// database. Records live under /<name>/<key>.json; keys are the hyphenated
// string form of the entity id, assigned client-side before the first write.
type Collection[T model.Entity] struct {
	client *Client
	name   string
}

func NewCollection[T model.Entity](c *Client, name string) *Collection[T] {
	return &Collection[T]{client: c, name: name}
}

// Create writes the full record and returns the key used. An entity without
// an id gets one here, so the returned key and the id field always agree.
func (col *Collection[T]) Create(ctx context.Context, e T) (string, error) {
	e.EnsureID()
	id := e.EntityID().String()
	if _, err := col.client.do(ctx, http.MethodPut, col.path(id), e); err != nil {
		return "", err
	}
	return id, nil
}

// GetAll fetches the whole collection. An absent or empty node yields an
// empty map, never nil.
func (col *Collection[T]) GetAll(ctx context.Context) (map[string]T, error) {
	body, err := col.client.do(ctx, http.MethodGet, "/"+col.name+".json", nil)
	if err != nil {
		return nil, err
	}

	out := make(map[string]T)
	if isNull(body) {
		return out, nil
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", col.name, err)
	}
	return out, nil
}

func (col *Collection[T]) GetByID(ctx context.Context, id string) (T, error) {
	var zero T
	body, err := col.client.do(ctx, http.MethodGet, col.path(id), nil)
	if err != nil {
		return zero, err
	}
	if isNull(body) {
		return zero, ErrNotFound
	}

	var e T
	if err := json.Unmarshal(body, &e); err != nil {
		return zero, fmt.Errorf("decode %s/%s: %w", col.name, id, err)
	}
	return e, nil
}

// Update overwrites the whole record at the given key.
func (col *Collection[T]) Update(ctx context.Context, id string, e T) error {
	_, err := col.client.do(ctx, http.MethodPut, col.path(id), e)
	return err
}

// UpdateField writes one named attribute. The database's PATCH handler does
// not accept array bodies, so slice values are written as a full PUT of that
// field; scalars go out as a PATCH.
func (col *Collection[T]) UpdateField(ctx context.Context, id, field string, value any) error {
	path := fmt.Sprintf("/%s/%s/%s.json", col.name, id, field)

	method := http.MethodPatch
	switch reflect.ValueOf(value).Kind() {
	case reflect.Slice, reflect.Array:
		method = http.MethodPut
	}

	_, err := col.client.do(ctx, method, path, value)
	return err
}

func (col *Collection[T]) Delete(ctx context.Context, id string) error {
	_, err := col.client.do(ctx, http.MethodDelete, col.path(id), nil)
	return err
}

func (col *Collection[T]) path(id string) string {
	return fmt.Sprintf("/%s/%s.json", col.name, id)
}

func isNull(body []byte) bool {
	b := bytes.TrimSpace(body)
	return len(b) == 0 || bytes.Equal(b, []byte("null"))
}
