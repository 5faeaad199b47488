package store

import (
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nexbytes/nexfolio/backend/go-services/internal/apperr"
)

// Memory is a simple in-memory table backing the repository test doubles.
// Listing preserves insertion order like a natural-order collection scan.
type Memory[T any] struct {
	mu       sync.RWMutex
	items    map[primitive.ObjectID]T
	order    []primitive.ObjectID
	idOf     func(*T) *primitive.ObjectID
	conflict func(a, b *T) bool
}

// NewMemory builds a table. idOf exposes the record's id field; conflict, when
// non-nil, reports whether two distinct records violate a unique key.
func NewMemory[T any](idOf func(*T) *primitive.ObjectID, conflict func(a, b *T) bool) *Memory[T] {
	return &Memory[T]{items: make(map[primitive.ObjectID]T), idOf: idOf, conflict: conflict}
}

func (m *Memory[T]) violates(id primitive.ObjectID, doc *T) bool {
	if m.conflict == nil {
		return false
	}
	for otherID, other := range m.items {
		if otherID == id {
			continue
		}
		if m.conflict(doc, &other) {
			return true
		}
	}
	return false
}

// Insert assigns an id when unset and stores a copy of doc.
func (m *Memory[T]) Insert(doc *T) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.idOf(doc)
	assigned := id.IsZero()
	if assigned {
		*id = primitive.NewObjectID()
	}
	if _, exists := m.items[*id]; exists || m.violates(*id, doc) {
		if assigned {
			*id = primitive.NilObjectID
		}
		return primitive.NilObjectID, apperr.ErrDuplicateKey
	}
	m.items[*id] = *doc
	m.order = append(m.order, *id)
	return *id, nil
}

func (m *Memory[T]) Get(id primitive.ObjectID) (*T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.items[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &d, nil
}

// First returns the earliest inserted record matching pred.
func (m *Memory[T]) First(pred func(*T) bool) (*T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range m.order {
		d := m.items[id]
		if pred(&d) {
			return &d, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (m *Memory[T]) List() []T {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]T, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.items[id])
	}
	return out
}

// Update applies fn to a copy of the record and stores it unless a unique key is violated.
func (m *Memory[T]) Update(id primitive.ObjectID, fn func(*T)) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.items[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	fn(&d)
	*m.idOf(&d) = id
	if m.violates(id, &d) {
		return nil, apperr.ErrDuplicateKey
	}
	m.items[id] = d
	return &d, nil
}

// UpdateWhere applies fn to every matching record and returns how many changed.
func (m *Memory[T]) UpdateWhere(pred func(*T) bool, fn func(*T)) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, id := range m.order {
		d := m.items[id]
		if !pred(&d) {
			continue
		}
		fn(&d)
		m.items[id] = d
		n++
	}
	return n
}

func (m *Memory[T]) Delete(id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return apperr.ErrNotFound
	}
	m.remove(id)
	return nil
}

func (m *Memory[T]) DeleteWhere(pred func(*T) bool) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	var victims []primitive.ObjectID
	for _, id := range m.order {
		d := m.items[id]
		if pred(&d) {
			victims = append(victims, id)
		}
	}
	for _, id := range victims {
		m.remove(id)
	}
	return int64(len(victims))
}

func (m *Memory[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// remove expects m.mu to be held.
func (m *Memory[T]) remove(id primitive.ObjectID) {
	delete(m.items, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}
