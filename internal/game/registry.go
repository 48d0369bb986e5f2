package game

import "github.com/tomz197/target-hunter/internal/object"

// Registry owns the set of live targets and assigns their identity.
// Iteration order is creation order. Ids keep increasing across Clear.
type Registry struct {
	byID   map[int]*object.Target
	order  []*object.Target
	nextID int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:   make(map[int]*object.Target),
		nextID: 1,
	}
}

// NextID reserves the next target id.
func (r *Registry) NextID() int {
	id := r.nextID
	r.nextID++
	return id
}

// Add registers a target.
func (r *Registry) Add(t *object.Target) {
	r.byID[t.ID] = t
	r.order = append(r.order, t)
}

// Get returns the live target with the given id, or nil.
func (r *Registry) Get(id int) *object.Target {
	return r.byID[id]
}

// Remove unregisters and returns the target with the given id, or nil if it
// is not live.
func (r *Registry) Remove(id int) *object.Target {
	t, ok := r.byID[id]
	if !ok {
		return nil
	}
	delete(r.byID, id)

	kept := r.order[:0] // reuse backing array
	for _, o := range r.order {
		if o != t {
			kept = append(kept, o)
		}
	}
	clear(r.order[len(kept):])
	r.order = kept
	return t
}

// All returns the live targets in creation order. The slice is owned by the
// registry and is only valid until the next mutation.
func (r *Registry) All() []*object.Target {
	return r.order
}

// Len returns the number of live targets.
func (r *Registry) Len() int {
	return len(r.order)
}

// Clear removes every target. Id assignment is not reset.
func (r *Registry) Clear() {
	clear(r.byID)
	clear(r.order)
	r.order = r.order[:0]
}
