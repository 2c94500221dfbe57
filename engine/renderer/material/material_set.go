package material

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownMaterial is returned when an edit names a material that is not in the set.
var ErrUnknownMaterial = errors.New("unknown material")

// Edit is a single live change to one parameter of one named material.
type Edit struct {
	Material string
	Param    string
	Value    float64
}

// MaterialSet is an ordered collection of named materials shared by reference with the
// meshes that use them.
type MaterialSet struct {
	mu     sync.RWMutex
	order  []string
	byName map[string]Material
}

// NewMaterialSet creates a set holding the given materials in order. A later material
// with the same name replaces the earlier one in place.
//
// Parameters:
//   - materials: the materials to add
//
// Returns:
//   - *MaterialSet: the set
func NewMaterialSet(materials ...Material) *MaterialSet {
	s := &MaterialSet{byName: make(map[string]Material, len(materials))}
	for _, m := range materials {
		s.Add(m)
	}
	return s
}

// Add inserts or replaces a material by name.
//
// Parameters:
//   - m: the material
func (s *MaterialSet) Add(m Material) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byName[m.Name()]; !ok {
		s.order = append(s.order, m.Name())
	}
	s.byName[m.Name()] = m
}

// Get looks up a material by name.
//
// Parameters:
//   - name: the material name
//
// Returns:
//   - Material: the material, or nil
//   - bool: false if not present
func (s *MaterialSet) Get(name string) (Material, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.byName[name]
	return m, ok
}

// MustGet looks up a material by name and panics if it is missing. Used while composing
// scenes from fixed names.
//
// Parameters:
//   - name: the material name
//
// Returns:
//   - Material: the material
func (s *MaterialSet) MustGet(name string) Material {
	m, ok := s.Get(name)
	if !ok {
		panic(fmt.Sprintf("material %q is not in the set", name))
	}
	return m
}

// Names lists the material names in insertion order.
//
// Returns:
//   - []string: the names
func (s *MaterialSet) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of materials.
//
// Returns:
//   - int: the count
func (s *MaterialSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Apply performs a live edit on the named material.
//
// Parameters:
//   - e: the edit
//
// Returns:
//   - error: ErrUnknownMaterial or ErrUnknownParam if the edit does not resolve
func (s *MaterialSet) Apply(e Edit) error {
	m, ok := s.Get(e.Material)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMaterial, e.Material)
	}
	return m.Set(e.Param, e.Value)
}
