package scene

import (
	"sort"
	"sync"

	"github.com/Carmen-Shannon/kinetic-go/common"
)

// Marker is a named local attachment point on an entity. Keyframes that
// position one entity relative to another embed the resolved Marker; the
// reconciler applies the owning entity's accumulated rotation to
// LocalPosition and composes LocalRotation on top of it at query time.
// Markers are read-only reference data and are never mutated by the pipeline.
type Marker struct {
	// Name identifies the marker within its owning entity.
	Name string `json:"name"`

	// Parent is the stable identity of the entity the marker belongs to.
	Parent string `json:"parent"`

	// LocalPosition is the marker's offset in the parent's local space.
	LocalPosition common.Vec3 `json:"localPosition"`

	// LocalRotation is the marker's orientation in the parent's local space.
	LocalRotation common.Quaternion `json:"localRotation"`
}

// registry is the implementation of the Registry interface.
type registry struct {
	mu      *sync.RWMutex
	markers map[string]map[string]Marker
}

// Registry holds the per-entity marker tables the animation pipeline reads
// when resolving marker-relative keyframes. It is the scene-object model's
// contract with the pipeline: a stable string identity per entity and a map
// of named markers, each carrying a local position and rotation.
// Thread-safe for concurrent access.
type Registry interface {
	// AddMarker registers (or replaces) a named marker on an entity.
	//
	// Parameters:
	//   - entity: the owning entity's identity
	//   - name: the marker name, unique within the entity
	//   - localPosition: the marker's offset in the entity's local space
	//   - localRotation: the marker's orientation in the entity's local space
	//
	// Returns:
	//   - Marker: the registered marker with its Parent back-reference set
	AddMarker(entity, name string, localPosition common.Vec3, localRotation common.Quaternion) Marker

	// Marker looks up a named marker on an entity.
	//
	// Parameters:
	//   - entity: the owning entity's identity
	//   - name: the marker name
	//
	// Returns:
	//   - Marker: the marker if found
	//   - bool: true if the marker exists
	Marker(entity, name string) (Marker, bool)

	// Markers returns all markers registered on an entity, sorted by name.
	//
	// Parameters:
	//   - entity: the owning entity's identity
	//
	// Returns:
	//   - []Marker: the entity's markers, or nil if it has none
	Markers(entity string) []Marker

	// RemoveMarker deletes a named marker from an entity. No-op if the
	// entity or marker does not exist.
	//
	// Parameters:
	//   - entity: the owning entity's identity
	//   - name: the marker name
	RemoveMarker(entity, name string)

	// Entities returns the identities of all entities that currently have
	// at least one marker, sorted for deterministic iteration.
	//
	// Returns:
	//   - []string: the entity identities
	Entities() []string
}

var _ Registry = &registry{}

// NewRegistry creates an empty marker registry.
//
// Returns:
//   - Registry: the newly created registry
func NewRegistry() Registry {
	return &registry{
		mu:      &sync.RWMutex{},
		markers: make(map[string]map[string]Marker),
	}
}

func (r *registry) AddMarker(entity, name string, localPosition common.Vec3, localRotation common.Quaternion) Marker {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := Marker{
		Name:          name,
		Parent:        entity,
		LocalPosition: localPosition,
		LocalRotation: localRotation,
	}
	table, ok := r.markers[entity]
	if !ok {
		table = make(map[string]Marker)
		r.markers[entity] = table
	}
	table[name] = m
	return m
}

func (r *registry) Marker(entity, name string) (Marker, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.markers[entity][name]
	return m, ok
}

func (r *registry) Markers(entity string) []Marker {
	r.mu.RLock()
	defer r.mu.RUnlock()

	table := r.markers[entity]
	if len(table) == 0 {
		return nil
	}
	out := make([]Marker, 0, len(table))
	for _, m := range table {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *registry) RemoveMarker(entity, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if table, ok := r.markers[entity]; ok {
		delete(table, name)
		if len(table) == 0 {
			delete(r.markers, entity)
		}
	}
}

func (r *registry) Entities() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.markers))
	for entity := range r.markers {
		out = append(out, entity)
	}
	sort.Strings(out)
	return out
}
