package fence

import (
	"log/slog"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"

	"geofence/internal/geom"
	"geofence/internal/logger"
)

// minExtent keeps R-tree rectangles non-degenerate.
const minExtent = 1e-9

type entry struct {
	fence  Fence
	pieces []*piece
}

// piece is one indexed rectangle of an entry.
type piece struct {
	entry *entry
	rect  rtreego.Rect
}

func (p *piece) Bounds() rtreego.Rect { return p.rect }

func boundRect(b orb.Bound) rtreego.Rect {
	w := max(b.Max[0]-b.Min[0], minExtent)
	h := max(b.Max[1]-b.Min[1], minExtent)
	r, err := rtreego.NewRect(rtreego.Point{b.Min[0], b.Min[1]}, []float64{w, h})
	if err != nil {
		// unreachable with positive lengths
		panic(err)
	}
	return r
}

// wrapBound splits a bound whose longitude runs past ±180 into pieces that
// stay within [-180, 180].
func wrapBound(b orb.Bound) []orb.Bound {
	south, north := b.Min[1], b.Max[1]
	switch {
	case b.Max[0]-b.Min[0] >= 360:
		return []orb.Bound{{Min: orb.Point{-180, south}, Max: orb.Point{180, north}}}
	case b.Min[0] < -180:
		return []orb.Bound{
			{Min: orb.Point{b.Min[0] + 360, south}, Max: orb.Point{180, north}},
			{Min: orb.Point{-180, south}, Max: orb.Point{b.Max[0], north}},
		}
	case b.Max[0] > 180:
		return []orb.Bound{
			{Min: orb.Point{b.Min[0], south}, Max: orb.Point{180, north}},
			{Min: orb.Point{-180, south}, Max: orb.Point{b.Max[0] - 360, north}},
		}
	}
	return []orb.Bound{b}
}

// Store keeps fences in insertion order with a lon/lat R-tree for lookups.
// It is not safe for concurrent use.
type Store struct {
	log     *slog.Logger
	tree    *rtreego.Rtree
	entries []*entry
	byID    map[string]*entry
}

func NewStore(log *slog.Logger) *Store {
	if log == nil {
		log = logger.L()
	}
	return &Store{
		log:  log,
		tree: rtreego.NewTree(2, 4, 16),
		byID: make(map[string]*entry),
	}
}

// Add inserts f, replacing any fence with the same id.
func (s *Store) Add(f Fence) {
	if _, ok := s.byID[f.ID()]; ok {
		s.Remove(f.ID())
	}
	e := &entry{fence: f}
	for _, b := range wrapBound(f.Bound()) {
		p := &piece{entry: e, rect: boundRect(b)}
		e.pieces = append(e.pieces, p)
		s.tree.Insert(p)
	}
	s.entries = append(s.entries, e)
	s.byID[f.ID()] = e
	s.log.Debug("fence added", "id", f.ID(), "kind", f.Kind(), "name", f.Name())
}

// Remove reports whether a fence with id existed.
func (s *Store) Remove(id string) bool {
	e, ok := s.byID[id]
	if !ok {
		return false
	}
	for _, p := range e.pieces {
		s.tree.Delete(p)
	}
	delete(s.byID, id)
	for i, it := range s.entries {
		if it == e {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			break
		}
	}
	s.log.Debug("fence removed", "id", id)
	return true
}

func (s *Store) Get(id string) (Fence, bool) {
	e, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return e.fence, true
}

func (s *Store) Len() int { return len(s.entries) }

// All returns the fences in insertion order.
func (s *Store) All() []Fence {
	out := make([]Fence, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.fence
	}
	return out
}

// Check returns every fence containing p, in insertion order.
func (s *Store) Check(p geom.Position) []Fence {
	if len(s.entries) == 0 {
		return nil
	}
	c := geom.ToCartographic(p)
	q := rtreego.Point{c.Lon.Degrees(), c.Lat.Degrees()}.ToRect(minExtent)
	hits := make(map[*entry]bool)
	for _, sp := range s.tree.SearchIntersect(q) {
		e := sp.(*piece).entry
		if !hits[e] && e.fence.Contains(p) {
			hits[e] = true
		}
	}
	var out []Fence
	for _, e := range s.entries {
		if hits[e] {
			out = append(out, e.fence)
		}
	}
	return out
}
