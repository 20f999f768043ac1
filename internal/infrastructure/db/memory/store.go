// Package memory holds process-local repositories used when no MongoDB is
// configured, and by tests.
package memory

import (
	"sync"

	"github.com/google/uuid"
)

// table keeps rows by ID and remembers insertion order so List results match
// the creation order a database would return.
type table[T any] struct {
	mu    sync.RWMutex
	rows  map[string]*T
	order []string
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[string]*T)}
}

func newID() string {
	return uuid.NewString()
}

// insert must be called with mu held.
func (t *table[T]) insert(id string, row *T) {
	t.rows[id] = row
	t.order = append(t.order, id)
}

// remove must be called with mu held.
func (t *table[T]) remove(id string) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, v := range t.order {
		if v == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

// each visits rows in insertion order; must be called with mu held.
func (t *table[T]) each(fn func(*T)) {
	for _, id := range t.order {
		fn(t.rows[id])
	}
}
