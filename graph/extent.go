package graph

// SpatialExtent is a weakly semanticised spatial support. It carries
// geometry and at most loose hints; platial meaning accrues through
// encounters rather than being declared up front.
type SpatialExtent struct {
	Meta
	Name          string
	Geometry      Geometry // nil when the extent is purely nominal
	ExtentType    string   // loose classification: "area", "path", "point"
	SemanticHints map[string]any
}

func (*SpatialExtent) Type() NodeType { return NodeTypeSpatialExtent }

// NewSpatialExtent creates an areal extent.
func NewSpatialExtent(name string, geom Geometry) *SpatialExtent {
	return &SpatialExtent{
		Meta:       NewMeta(Observed),
		Name:       name,
		Geometry:   geom,
		ExtentType: "area",
	}
}

// PointExtent creates a point extent at the given coordinates.
func PointExtent(name string, lon, lat float64) *SpatialExtent {
	return &SpatialExtent{
		Meta:       NewMeta(Observed),
		Name:       name,
		Geometry:   Point{Lon: lon, Lat: lat},
		ExtentType: "point",
	}
}

// ExtentFromBounds creates an areal extent from a bounding box.
func ExtentFromBounds(name string, minLon, minLat, maxLon, maxLat float64) *SpatialExtent {
	return &SpatialExtent{
		Meta:       NewMeta(Observed),
		Name:       name,
		Geometry:   Rect{MinLon: minLon, MinLat: minLat, MaxLon: maxLon, MaxLat: maxLat},
		ExtentType: "area",
	}
}

// HasGeometry reports whether a geometry is defined.
func (s *SpatialExtent) HasGeometry() bool { return s.Geometry != nil }

// ContainsPoint reports whether the extent's geometry contains the
// given coordinates. Nominal extents contain nothing.
func (s *SpatialExtent) ContainsPoint(lon, lat float64) bool {
	if s.Geometry == nil {
		return false
	}
	return s.Geometry.Contains(lon, lat)
}

// Intersects reports whether the bounding boxes of two extents overlap.
func (s *SpatialExtent) Intersects(other *SpatialExtent) bool {
	if s.Geometry == nil || other.Geometry == nil {
		return false
	}
	return s.Geometry.Bounds().Intersects(other.Geometry.Bounds())
}

// Hint returns a semantic hint, falling back to def when unset.
func (s *SpatialExtent) Hint(key, def string) string {
	if s.SemanticHints != nil {
		if v, ok := s.SemanticHints[key].(string); ok {
			return v
		}
	}
	return def
}

// SetHint stores a semantic hint.
func (s *SpatialExtent) SetHint(key string, value any) {
	if s.SemanticHints == nil {
		s.SemanticHints = make(map[string]any)
	}
	s.SemanticHints[key] = value
}
