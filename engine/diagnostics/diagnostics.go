// package diagnostics defines the structured diagnostics channel for the
// animation pipeline. Recoverable issues (per-keyframe validation failures,
// corrected time windows) are accumulated as Diagnostic values and returned
// alongside results; scene-graph inconsistencies are structured errors that
// abort the whole batch, since any partial result would be misleading.
package diagnostics

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Code classifies a non-fatal diagnostic.
type Code string

const (
	// CodeValidation marks a malformed keyframe that was dropped from the
	// batch: missing ID, negative or non-finite duration, nil or malformed
	// time spec, non-finite spec payloads.
	CodeValidation Code = "validation_error"

	// CodeTimeWindowCorrected marks a resolved window whose end preceded its
	// start and was clamped to a zero-length window.
	CodeTimeWindowCorrected Code = "time_window_corrected"

	// CodeInvalidTimeValue marks a resolved window with a non-finite bound
	// that was replaced with a safe default.
	CodeInvalidTimeValue Code = "invalid_time_value"
)

// Diagnostic is a single non-fatal pipeline event, surfaced to callers so
// scene authors can observe validation and correction behavior instead of
// losing it to a log side channel.
type Diagnostic struct {
	// Code classifies the event.
	Code Code `json:"code"`

	// KeyframeID identifies the offending keyframe, when one exists.
	KeyframeID string `json:"keyframeId,omitempty"`

	// Message is a human-readable description of the event.
	Message string `json:"message"`
}

// String renders the diagnostic for logs and test failures.
//
// Returns:
//   - string: "code keyframe=id: message"
func (d Diagnostic) String() string {
	if d.KeyframeID == "" {
		return fmt.Sprintf("%s: %s", d.Code, d.Message)
	}
	return fmt.Sprintf("%s keyframe=%s: %s", d.Code, d.KeyframeID, d.Message)
}

// Sentinel errors for the batch-fatal failure classes. Every structured error
// below unwraps to one of these so callers can branch with errors.Is.
var (
	ErrDuplicateKeyframeID        = errors.New("duplicate keyframe id")
	ErrUnresolvedTimeDependency   = errors.New("unresolved time dependency")
	ErrCircularMarkerDependency   = errors.New("circular marker dependency")
	ErrUnresolvedEntityDependency = errors.New("unresolved entity dependency")
	ErrMissingParentState         = errors.New("missing parent state")
)

// DuplicateIDError reports keyframe IDs that appear more than once in a
// batch. Time resolution requires unique identity, so this aborts the batch.
type DuplicateIDError struct {
	// IDs lists each duplicated keyframe ID once, sorted.
	IDs []string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("%v: %s", ErrDuplicateKeyframeID, strings.Join(e.IDs, ", "))
}

func (e *DuplicateIDError) Unwrap() error { return ErrDuplicateKeyframeID }

// UnresolvedTimeError reports keyframes whose time specification could not be
// resolved to an absolute window, either because a referenced parent keyframe
// does not exist or because the reference graph is cyclic.
type UnresolvedTimeError struct {
	// Unresolved maps each unresolved keyframe ID to the parent IDs it is
	// still waiting on.
	Unresolved map[string][]string
}

func (e *UnresolvedTimeError) Error() string {
	ids := make([]string, 0, len(e.Unresolved))
	for id := range e.Unresolved {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("%s (waiting on %s)", id, strings.Join(e.Unresolved[id], ", ")))
	}
	return fmt.Sprintf("%v: %s", ErrUnresolvedTimeDependency, strings.Join(parts, "; "))
}

func (e *UnresolvedTimeError) Unwrap() error { return ErrUnresolvedTimeDependency }

// CycleError reports a circular marker dependency between entities. Path is a
// closed walk through the entity graph, e.g. ["a", "b", "c", "a"].
type CycleError struct {
	// Path is the cycle witness, first entity repeated at the end.
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%v: %s", ErrCircularMarkerDependency, strings.Join(e.Path, " -> "))
}

func (e *CycleError) Unwrap() error { return ErrCircularMarkerDependency }

// UnresolvedEntityError reports entities that could not be topologically
// ordered even though no cycle was found among them.
type UnresolvedEntityError struct {
	// Remaining maps each unordered entity to the parent entities it is
	// still waiting on.
	Remaining map[string][]string
}

func (e *UnresolvedEntityError) Error() string {
	entities := make([]string, 0, len(e.Remaining))
	for entity := range e.Remaining {
		entities = append(entities, entity)
	}
	sort.Strings(entities)

	parts := make([]string, 0, len(entities))
	for _, entity := range entities {
		parts = append(parts, fmt.Sprintf("%s (waiting on %s)", entity, strings.Join(e.Remaining[entity], ", ")))
	}
	return fmt.Sprintf("%v: %s", ErrUnresolvedEntityDependency, strings.Join(parts, "; "))
}

func (e *UnresolvedEntityError) Unwrap() error { return ErrUnresolvedEntityDependency }

// MissingParentStateError reports a marker-positioned keyframe whose parent
// entity has no reconciled state at query time. This is a scene-authoring
// bug — the parent was never given a keyframe — not a recoverable condition.
type MissingParentStateError struct {
	// Entity is the marker-positioned child entity.
	Entity string

	// Parent is the referenced parent entity with no computed state.
	Parent string
}

func (e *MissingParentStateError) Error() string {
	return fmt.Sprintf("%v: entity %q references parent %q which has no reconciled state", ErrMissingParentState, e.Entity, e.Parent)
}

func (e *MissingParentStateError) Unwrap() error { return ErrMissingParentState }
