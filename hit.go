package gripedit

import "math"

// HitTest returns the index in grips of the grip nearest to p whose distance
// is within tol (world units). When several grips are equally near, the one
// earliest in grips wins, so results follow computation order. A NaN
// position never hits.
func HitTest(grips []Grip, p Vec2, tol float64) (int, bool) {
	best := -1
	bestDist := 0.0
	for i := range grips {
		d := grips[i].Position.Dist(p)
		if math.IsNaN(d) || d > tol {
			continue
		}
		if best < 0 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best, best >= 0
}
