// Package cache holds the in-session view of every record kind, keyed by the
// remote key. It is built at login, replaced wholesale on each bulk load and
// valid only for the lifetime of one session.
package cache

import (
	"strings"

	"hospital-manager/internal/model"
)

// Table maps remote keys to records of one kind.
type Table[T any] struct {
	m map[string]T
}

func NewTable[T any]() *Table[T] {
	return &Table[T]{m: make(map[string]T)}
}

func (t *Table[T]) Put(key string, v T) {
	t.m[key] = v
}

func (t *Table[T]) Get(key string) (T, bool) {
	v, ok := t.m[key]
	return v, ok
}

// Remove is a no-op when the key is absent.
func (t *Table[T]) Remove(key string) {
	delete(t.m, key)
}

// ReplaceAll swaps the whole mapping. A nil argument resets to empty; the
// table never holds a nil map.
func (t *Table[T]) ReplaceAll(m map[string]T) {
	if m == nil {
		m = make(map[string]T)
	}
	t.m = m
}

func (t *Table[T]) Len() int { return len(t.m) }

func (t *Table[T]) Values() []T {
	out := make([]T, 0, len(t.m))
	for _, v := range t.m {
		out = append(out, v)
	}
	return out
}

// Entries returns a copy of the mapping.
func (t *Table[T]) Entries() map[string]T {
	out := make(map[string]T, len(t.m))
	for k, v := range t.m {
		out[k] = v
	}
	return out
}

// Find returns the first entry matching the predicate. Iteration order is
// unspecified, so predicates should identify a unique record.
func (t *Table[T]) Find(match func(T) bool) (string, T, bool) {
	for k, v := range t.m {
		if match(v) {
			return k, v, true
		}
	}
	var zero T
	return "", zero, false
}

// FindByName scans for a record by display name, case-insensitively. The
// first match is authoritative; duplicate names are not distinguished.
func FindByName[T model.Named](t *Table[T], name string) (string, T, bool) {
	return t.Find(func(v T) bool {
		return strings.EqualFold(v.DisplayName(), name)
	})
}

// Cache groups one table per record kind.
type Cache struct {
	Patients     *Table[*model.Patient]
	Doctors      *Table[*model.Doctor]
	Appointments *Table[*model.Appointment]
	Users        *Table[*model.User]
	EmailLogs    *Table[*model.EmailLog]
}

func New() *Cache {
	return &Cache{
		Patients:     NewTable[*model.Patient](),
		Doctors:      NewTable[*model.Doctor](),
		Appointments: NewTable[*model.Appointment](),
		Users:        NewTable[*model.User](),
		EmailLogs:    NewTable[*model.EmailLog](),
	}
}

// Clear empties every kind, used on logout.
func (c *Cache) Clear() {
	c.Patients.ReplaceAll(nil)
	c.Doctors.ReplaceAll(nil)
	c.Appointments.ReplaceAll(nil)
	c.Users.ReplaceAll(nil)
	c.EmailLogs.ReplaceAll(nil)
}
