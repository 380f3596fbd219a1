package layout

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/piwi3910/HelixPack/internal/model"
)

// spring holds the Kamada-Kawai energy terms between one pair of vertices.
type spring struct {
	k float64 // Stiffness, 1/d^2
	l float64 // Rest length, edgeLength*d
}

// springSystem is the Kamada-Kawai model: every vertex pair is joined by a
// spring whose rest length is proportional to the graph distance.
type springSystem struct {
	pos     []r2.Vec
	springs [][]spring
}

func newSpringSystem(pos []r2.Vec, dist [][]float64, edgeLength float64) *springSystem {
	n := len(pos)
	s := &springSystem{pos: pos, springs: make([][]spring, n)}
	for i := range s.springs {
		s.springs[i] = make([]spring, n)
		for j := range s.springs[i] {
			d := dist[i][j]
			if i == j || d <= 0 || math.IsInf(d, 1) {
				continue
			}
			s.springs[i][j] = spring{k: 1 / (d * d), l: edgeLength * d}
		}
	}
	return s
}

// gradient returns the partial derivatives of the energy with respect to
// the position of vertex m.
func (s *springSystem) gradient(m int) r2.Vec {
	var g r2.Vec
	for i, sp := range s.springs[m] {
		if sp.k == 0 {
			continue
		}
		d := r2.Sub(s.pos[m], s.pos[i])
		dist := r2.Norm(d)
		if dist == 0 {
			continue
		}
		g = r2.Add(g, r2.Scale(sp.k*(1-sp.l/dist), d))
	}
	return g
}

// hessian returns the second partial derivatives for vertex m as
// (xx, xy, yy).
func (s *springSystem) hessian(m int) (xx, xy, yy float64) {
	for i, sp := range s.springs[m] {
		if sp.k == 0 {
			continue
		}
		d := r2.Sub(s.pos[m], s.pos[i])
		dist := r2.Norm(d)
		if dist == 0 {
			continue
		}
		cube := dist * dist * dist
		xx += sp.k * (1 - sp.l*d.Y*d.Y/cube)
		xy += sp.k * sp.l * d.X * d.Y / cube
		yy += sp.k * (1 - sp.l*d.X*d.X/cube)
	}
	return xx, xy, yy
}

// delta is the gradient magnitude for vertex m.
func (s *springSystem) delta(m int) float64 {
	return r2.Norm(s.gradient(m))
}

// step moves vertex m by one Newton-Raphson iteration. It reports false if
// the 2x2 system could not be solved.
func (s *springSystem) step(m int) bool {
	g := s.gradient(m)
	xx, xy, yy := s.hessian(m)

	a := mat.NewDense(2, 2, []float64{xx, xy, xy, yy})
	b := mat.NewVecDense(2, []float64{-g.X, -g.Y})
	var move mat.VecDense
	if err := move.SolveVec(a, b); err != nil {
		return false
	}
	dx, dy := move.AtVec(0), move.AtVec(1)
	if math.IsNaN(dx) || math.IsNaN(dy) || math.IsInf(dx, 0) || math.IsInf(dy, 0) {
		return false
	}
	s.pos[m] = r2.Add(s.pos[m], r2.Vec{X: dx, Y: dy})
	return true
}

// maxDelta returns the vertex with the largest gradient and its magnitude.
func (s *springSystem) maxDelta() (int, float64) {
	best, bestDelta := 0, -1.0
	for m := range s.pos {
		if d := s.delta(m); d > bestDelta {
			best, bestDelta = m, d
		}
	}
	return best, bestDelta
}

// tolerance reports convergence once a gradient magnitude drops to the limit
// or changes by less than the limit relative to the previous one.
type tolerance struct {
	limit float64
	last  float64
	set   bool
}

func (t *tolerance) done(delta float64) bool {
	if !t.set {
		t.set = true
		t.last = delta
		return delta <= t.limit
	}
	diff := math.Abs(t.last - delta)
	done := delta <= t.limit || (t.last != 0 && diff/t.last < t.limit)
	t.last = delta
	return done
}

// KamadaKawai relaxes positions in place. dist holds graph distances
// between every vertex pair and edgeLength scales them into rest lengths.
// The vertex with the largest energy gradient is moved by Newton-Raphson
// steps until its gradient settles, then the next worst vertex is picked;
// the run ends when the largest gradient settles to within tol, relative,
// or after maxIters moves. It returns the number of moves made.
func KamadaKawai(positions []model.Point2D, dist [][]float64, edgeLength, tol float64, maxIters int) int {
	n := len(positions)
	if n < 2 {
		return 0
	}

	pos := make([]r2.Vec, n)
	for i, p := range positions {
		pos[i] = r2.Vec{X: p.X, Y: p.Y}
	}
	s := newSpringSystem(pos, dist, edgeLength)

	global := tolerance{limit: tol}
	moves := 0
	m, delta := s.maxDelta()
	for !global.done(delta) && moves < maxIters {
		local := tolerance{limit: tol}
		start := moves
		for moves < maxIters {
			if !s.step(m) {
				break
			}
			moves++
			if local.done(s.delta(m)) {
				break
			}
		}
		if moves == start {
			break
		}
		m, delta = s.maxDelta()
	}

	for i, p := range s.pos {
		positions[i] = model.Point2D{X: p.X, Y: p.Y}
	}
	return moves
}
