package showcase

import (
	"fmt"

	"github.com/milk9111/petshow/pet"
)

// Registry maps pet ids to animators in registration order.
type Registry struct {
	order []string
	pets  map[string]*pet.Animator
}

func NewRegistry() *Registry {
	return &Registry{pets: make(map[string]*pet.Animator)}
}

// Add stores a; an id can be registered once.
func (r *Registry) Add(a *pet.Animator) error {
	id := a.ID()
	if _, ok := r.pets[id]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, id)
	}
	r.pets[id] = a
	r.order = append(r.order, id)
	return nil
}

func (r *Registry) Get(id string) (*pet.Animator, bool) {
	if r == nil {
		return nil, false
	}
	a, ok := r.pets[id]
	return a, ok
}

// Remove forgets id and returns its animator without destroying it.
func (r *Registry) Remove(id string) (*pet.Animator, bool) {
	a, ok := r.pets[id]
	if !ok {
		return nil, false
	}
	delete(r.pets, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return a, true
}

func (r *Registry) IDs() []string {
	return append([]string(nil), r.order...)
}

func (r *Registry) Len() int {
	return len(r.order)
}

// Each visits animators in registration order.
func (r *Registry) Each(fn func(*pet.Animator)) {
	for _, id := range r.IDs() {
		if a, ok := r.pets[id]; ok {
			fn(a)
		}
	}
}

func (r *Registry) Clear() {
	r.order = nil
	r.pets = make(map[string]*pet.Animator)
}
