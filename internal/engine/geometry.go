package engine

import (
	"math"

	"github.com/piwi3910/HelixPack/internal/model"
)

// SegmentsIntersect reports whether segment A-B crosses segment C-D.
//
// Zero-length segments and segments sharing an end-point never intersect.
// Otherwise the frame is moved so that A is the origin and B lies on the
// positive x axis; C and D must fall on opposite sides of that axis and the
// crossing abscissa must lie within [0, |AB|]. A point exactly on line AB
// counts as above it, so some touching configurations report no crossing.
func SegmentsIntersect(a, b, c, d model.Point2D) bool {
	if (a.X == b.X && a.Y == b.Y) || (c.X == d.X && c.Y == d.Y) {
		return false
	}

	if (a.X == c.X && a.Y == c.Y) || (b.X == c.X && b.Y == c.Y) ||
		(a.X == d.X && a.Y == d.Y) || (b.X == d.X && b.Y == d.Y) {
		return false
	}

	bx, by := b.X-a.X, b.Y-a.Y
	cx, cy := c.X-a.X, c.Y-a.Y
	dx, dy := d.X-a.X, d.Y-a.Y

	distAB := math.Sqrt(bx*bx + by*by)

	cos := bx / distAB
	sin := by / distAB
	cx, cy = cx*cos+cy*sin, cy*cos-cx*sin
	dx, dy = dx*cos+dy*sin, dy*cos-dx*sin

	if (cy < 0 && dy < 0) || (cy >= 0 && dy >= 0) {
		return false
	}

	abPos := dx + (cx-dx)*dy/(dy-cy)
	if abPos < 0 || abPos > distAB {
		return false
	}
	return true
}

// loopSegments returns the connecting-loop segments on one face of the
// membrane: (first,first+1), (first+2,first+3), ...
func loopSegments(positions []model.Point2D, first int) [][2]model.Point2D {
	var segs [][2]model.Point2D
	for i := first; i+1 < len(positions); i += 2 {
		segs = append(segs, [2]model.Point2D{positions[i], positions[i+1]})
	}
	return segs
}

func countIntersections(segs [][2]model.Point2D) int {
	count := 0
	for i := 0; i < len(segs); i++ {
		for j := i + 1; j < len(segs); j++ {
			if SegmentsIntersect(segs[i][0], segs[i][1], segs[j][0], segs[j][1]) {
				count++
			}
		}
	}
	return count
}

// CountCrossovers counts intersecting loop segments on both faces of the
// membrane. Helices alternate sides, so even-indexed helices start the loops
// on one face and odd-indexed helices on the other.
func CountCrossovers(positions []model.Point2D) int {
	return countIntersections(loopSegments(positions, 0)) +
		countIntersections(loopSegments(positions, 1))
}

// ResiduePositions places every residue of h on a circle around center. The
// first residue sits at -90 degrees plus the rotation and each following
// residue advances by step degrees.
func ResiduePositions(dst map[int]model.Point2D, center model.Point2D, rotation int, h model.Helix, radius, step float64) {
	angle := -90.0 + float64(rotation)
	for r := h.Start; r <= h.Stop; r++ {
		rad := angle * math.Pi / 180
		dst[r] = model.Point2D{
			X: center.X + radius*math.Cos(rad),
			Y: center.Y + radius*math.Sin(rad),
		}
		angle += step
	}
}

func distance(p, q model.Point2D) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// scorer computes contact distances for one component. It owns a residue
// table that is rewritten on every call, so a scorer must not be shared
// between goroutines.
type scorer struct {
	comp     model.Component
	radius   float64
	step     float64
	residues map[int]model.Point2D
}

func newScorer(comp model.Component, settings model.Settings) *scorer {
	return &scorer{
		comp:     comp,
		radius:   settings.HelixRadius,
		step:     settings.ResidueStep,
		residues: make(map[int]model.Point2D),
	}
}

// place recomputes the residue table for the given rotations.
func (s *scorer) place(positions []model.Point2D, rotations []int) {
	for i, h := range s.comp.Helices {
		ResiduePositions(s.residues, positions[i], rotations[i], h, s.radius, s.step)
	}
}

// total returns the summed contact distance for the given rotations.
func (s *scorer) total(positions []model.Point2D, rotations []int) float64 {
	s.place(positions, rotations)
	sum := 0.0
	for _, c := range s.comp.Contacts {
		sum += distance(s.residues[c.ResidueA], s.residues[c.ResidueB])
	}
	return sum
}

// ContactDistanceScore sums the distances between the two residues of every
// contact in comp, with helices centered at positions and turned by
// rotations. Callers normalise by the contact count.
func ContactDistanceScore(comp model.Component, positions []model.Point2D, rotations []int, settings model.Settings) float64 {
	return newScorer(comp, settings).total(positions, rotations)
}

// NormalizedScore divides the contact distance by the contact count. A
// component without contacts scores zero.
func NormalizedScore(comp model.Component, positions []model.Point2D, rotations []int, settings model.Settings) float64 {
	if len(comp.Contacts) == 0 {
		return 0
	}
	return ContactDistanceScore(comp, positions, rotations, settings) / float64(len(comp.Contacts))
}
