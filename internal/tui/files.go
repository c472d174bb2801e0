package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"geofence/internal/fence"
	"geofence/internal/geom"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		if ext == ".geojson" || ext == ".json" || ext == ".csv" || ext == ".kml" || ext == ".wkt" {
			items = append(items, fileItem{title: name, desc: ext, path: filepath.Join(m.cwd, name)})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no supported files in current directory"
	}
}

// loadPath imports a file. GeoJSON and WKT polygons become geofences and
// everything else in them is drawn as backdrop; CSV and KML points are run
// through the checking point.
func (m *Model) loadPath(p string) {
	m.selPath = p
	name := filepath.Base(p)
	ext := strings.ToLower(filepath.Ext(p))
	var (
		d   geom.Data
		err error
	)
	switch ext {
	case ".geojson", ".json":
		d, err = geom.LoadGeo(p)
		if err != nil {
			m.loadFailed(p, err)
			return
		}
		// files exported by this tool carry circles and rectangles
		if fences, ferr := fence.ReadFile(p); ferr == nil {
			m.session.Import(fences)
			d.Polygons = nil
			m.applyData(name, d, 0)
			m.status = fmt.Sprintf("loaded: %s  geofences=%d pts=%d ls=%d", name, len(fences), len(d.Points), len(d.Lines))
			return
		}
	case ".wkt":
		var b []byte
		b, err = os.ReadFile(p)
		if err != nil {
			m.loadFailed(p, err)
			return
		}
		d, err = geom.ParseWKTData(string(b))
		if err != nil {
			m.status = "wkt error: " + err.Error()
			return
		}
	case ".csv":
		d, err = geom.LoadCSV(p)
	case ".kml":
		d, err = geom.LoadKML(p)
	default:
		m.status = "unsupported file: " + ext
		return
	}
	if err != nil {
		m.loadFailed(p, err)
		return
	}

	if ext == ".csv" || ext == ".kml" {
		m.checkProbes(name, d)
		return
	}
	fences := fence.FromData(d, strings.TrimSuffix(name, filepath.Ext(name)))
	m.session.Import(fences)
	d.Polygons = nil
	m.applyData(name, d, len(fences))
}

// applyData draws the non-fence part of a file and frames everything.
func (m *Model) applyData(name string, d geom.Data, nFences int) {
	if !d.Empty() {
		m.backdrop.set(d)
	}
	m.fitBBox(d.BBox)
	m.status = fmt.Sprintf("loaded: %s  geofences=%d pts=%d ls=%d", name, nFences, len(d.Points), len(d.Lines))
	m.log.Info("file imported", "path", m.selPath, "fences", nFences, "points", len(d.Points), "lines", len(d.Lines))
	m.refreshFenceTable()
}

// checkProbes runs every loaded point through the checking point.
func (m *Model) checkProbes(name string, d geom.Data) {
	pts := make([]geom.Position, len(d.Points))
	for i, p := range d.Points {
		pts[i] = geom.FromDegrees(p[0], p[1], 0)
	}
	in, out := m.session.CheckAll(pts)
	m.fitBBox(d.BBox)
	m.status = fmt.Sprintf("checked %s: %d inside, %d outside", name, in, out)
}

func (m *Model) loadFailed(p string, err error) {
	m.status = "load error: " + err.Error()
	m.log.Warn("file import failed", "path", p, "err", err)
}
