package voice

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a language or voice lookup has no match.
var ErrNotFound = errors.New("voice not found")

type key struct {
	language string
	id       string
}

// Registry is an immutable catalogue of voices. Lookups are safe for
// concurrent use; there is no mutation API after construction.
type Registry struct {
	voices []Voice
	index  map[key]int
}

// NewRegistry builds a registry from the given voices, preserving order.
// Duplicate (language, id) pairs are rejected.
func NewRegistry(voices []Voice) (*Registry, error) {
	r := &Registry{
		voices: make([]Voice, len(voices)),
		index:  make(map[key]int, len(voices)),
	}
	copy(r.voices, voices)

	for i, v := range r.voices {
		if v.ID == "" || v.Language == "" {
			return nil, fmt.Errorf("voice %d: id and language are required", i)
		}
		k := key{language: v.Language, id: v.ID}
		if _, ok := r.index[k]; ok {
			return nil, fmt.Errorf("duplicate voice %q for language %q", v.ID, v.Language)
		}
		r.index[k] = i
	}
	return r, nil
}

// List returns all voices in insertion order.
func (r *Registry) List() []Voice {
	out := make([]Voice, len(r.voices))
	copy(out, r.voices)
	return out
}

// ByLanguage returns the voices registered for a language, in insertion
// order. Returns ErrNotFound when the language has no voices.
func (r *Registry) ByLanguage(language string) ([]Voice, error) {
	var out []Voice
	for _, v := range r.voices {
		if v.Language == language {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no voices for language %q: %w", language, ErrNotFound)
	}
	return out, nil
}

// Find returns the voice registered under (language, id).
func (r *Registry) Find(language, id string) (Voice, error) {
	i, ok := r.index[key{language: language, id: id}]
	if !ok {
		return Voice{}, fmt.Errorf("voice %q for language %q: %w", id, language, ErrNotFound)
	}
	return r.voices[i], nil
}

// Has reports whether (language, id) is registered.
func (r *Registry) Has(language, id string) bool {
	_, ok := r.index[key{language: language, id: id}]
	return ok
}

// Languages returns the distinct languages in first-appearance order.
func (r *Registry) Languages() []string {
	seen := make(map[string]bool)
	var out []string
	for _, v := range r.voices {
		if !seen[v.Language] {
			seen[v.Language] = true
			out = append(out, v.Language)
		}
	}
	return out
}

// Len returns the number of registered voices.
func (r *Registry) Len() int {
	return len(r.voices)
}
