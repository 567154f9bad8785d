package geom

// Mode selects how a raw Point is read.
type Mode int

const (
	// Plain reads the pair directly as a continuous coordinate.
	Plain Mode = iota
	// Centered reads the pair as a cell index and maps it to the cell center.
	Centered
)

func (m Mode) String() string {
	switch m {
	case Plain:
		return "plain"
	case Centered:
		return "centered"
	}
	return "unknown"
}

// DefaultCellSize is the edge length of one cell in raw units.
const DefaultCellSize = 1.0

// Normalizer converts raw points into engine coordinates.
type Normalizer struct {
	CellSize float64
}

func NewNormalizer(cellSize float64) Normalizer {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return Normalizer{CellSize: cellSize}
}

// Offset is the shift Centered applies to both components.
func (n Normalizer) Offset() float64 {
	c := n.CellSize
	if c <= 0 {
		c = DefaultCellSize
	}
	return c / 2
}

// ToLatLng maps p under mode. Input is assumed well formed.
func (n Normalizer) ToLatLng(p Point, mode Mode) LatLng {
	if mode == Centered {
		off := n.Offset()
		return LatLng{Lat: p[0] + off, Lng: p[1] + off}
	}
	return LatLng{Lat: p[0], Lng: p[1]}
}

// Line maps every point of a line string into a freshly allocated slice.
func (n Normalizer) Line(points []Point, mode Mode) []LatLng {
	out := make([]LatLng, 0, len(points))
	for _, p := range points {
		out = append(out, n.ToLatLng(p, mode))
	}
	return out
}

func (n Normalizer) Lines(lines [][]Point, mode Mode) [][]LatLng {
	out := make([][]LatLng, 0, len(lines))
	for _, ls := range lines {
		out = append(out, n.Line(ls, mode))
	}
	return out
}
