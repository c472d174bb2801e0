package typeid

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

const (
	PrefixCircle    = "circle"
	PrefixRectangle = "rect"
	PrefixPolygon   = "poly"
	PrefixPolyline  = "line"
)

func New(prefix string) string {
	id := typeid.MustGenerate(prefix)
	return id.String()
}

func NewCircleID() string    { return New(PrefixCircle) }
func NewRectangleID() string { return New(PrefixRectangle) }
func NewPolygonID() string   { return New(PrefixPolygon) }
func NewPolylineID() string  { return New(PrefixPolyline) }

func Validate(id, expectedPrefix string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid typeid %q: %w", id, err)
	}
	if parsed.Prefix() != expectedPrefix {
		return fmt.Errorf("expected prefix %q but got %q in id %q", expectedPrefix, parsed.Prefix(), id)
	}
	return nil
}
