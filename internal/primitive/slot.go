// Package primitive holds mutable shapes that rebuild immutable renderer
// geometry lazily, at most once per frame.
package primitive

import "geofence/internal/scene"

// slot owns at most one renderer primitive.
type slot struct {
	handle scene.Primitive
}

// acquire releases the current handle before building its replacement, so
// two handles are never live at once.
func (s *slot) acquire(build func() scene.Primitive) {
	s.release()
	s.handle = build()
}

// release is safe on an empty slot.
func (s *slot) release() {
	if s.handle == nil {
		return
	}
	s.handle.Destroy()
	s.handle = nil
}

func (s *slot) live() bool { return s.handle != nil }

func clonePositions[T any](src []T) []T {
	if src == nil {
		return nil
	}
	return append(make([]T, 0, len(src)), src...)
}
