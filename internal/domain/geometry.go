package domain

// BritishNationalGrid is the planar spatial reference every geometry in the
// profile is expressed in (OSGB36 / British National Grid).
const BritishNationalGrid int32 = 27700

type Coordinate struct {
	X float64
	Y float64
}

// LineString is an ordered run of 2-D planar coordinates. Any sequence of two
// or more points is a valid link geometry; no self-intersection or length
// checks are applied.
type LineString struct {
	SRSID  int32
	Points []Coordinate
}

func NewLineString(points ...Coordinate) LineString {
	return LineString{SRSID: BritishNationalGrid, Points: points}
}

func (l LineString) IsValid() bool {
	return len(l.Points) >= 2
}

// Envelope returns minX, maxX, minY, maxY of the line's vertices.
func (l LineString) Envelope() (float64, float64, float64, float64) {
	if len(l.Points) == 0 {
		return 0, 0, 0, 0
	}
	minX, maxX := l.Points[0].X, l.Points[0].X
	minY, maxY := l.Points[0].Y, l.Points[0].Y
	for _, p := range l.Points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return minX, maxX, minY, maxY
}
