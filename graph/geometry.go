package graph

// Geometry is the minimal spatial support a SpatialExtent needs. Extents
// stay weakly semanticised, so the contract is deliberately small:
// containment, centroid, and bounds, all in lon/lat order.
type Geometry interface {
	Contains(lon, lat float64) bool
	Centroid() (lon, lat float64)
	Bounds() Rect
}

// Rect is an axis-aligned bounding box in lon/lat coordinates.
type Rect struct {
	MinLon, MinLat float64
	MaxLon, MaxLat float64
}

func (r Rect) Contains(lon, lat float64) bool {
	return lon >= r.MinLon && lon <= r.MaxLon && lat >= r.MinLat && lat <= r.MaxLat
}

func (r Rect) Centroid() (float64, float64) {
	return (r.MinLon + r.MaxLon) / 2, (r.MinLat + r.MaxLat) / 2
}

func (r Rect) Bounds() Rect { return r }

// Intersects reports whether two rectangles overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.MinLon <= other.MaxLon && other.MinLon <= r.MaxLon &&
		r.MinLat <= other.MaxLat && other.MinLat <= r.MaxLat
}

// Point is a zero-extent geometry.
type Point struct {
	Lon, Lat float64
}

func (p Point) Contains(lon, lat float64) bool {
	return lon == p.Lon && lat == p.Lat
}

func (p Point) Centroid() (float64, float64) { return p.Lon, p.Lat }

func (p Point) Bounds() Rect {
	return Rect{MinLon: p.Lon, MinLat: p.Lat, MaxLon: p.Lon, MaxLat: p.Lat}
}
