package metrics

import "sync"

// A Registry holds the series of one run in creation order, so that
// reports and recorded tables come out in a stable order.
type Registry struct {
	mu sync.Mutex

	order  []*Series
	byName map[string]*Series
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*Series),
	}
}

// Series returns the series with the given name, creating it on first use.
func (r *Registry) Series(name string) *Series {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.byName[name]; ok {
		return s
	}

	s := NewSeries(name)
	r.byName[name] = s
	r.order = append(r.order, s)

	return s
}

// All returns every series in creation order.
func (r *Registry) All() []*Series {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*Series, len(r.order))
	copy(out, r.order)

	return out
}
