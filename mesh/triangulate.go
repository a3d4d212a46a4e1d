package mesh

import (
	"slices"

	"github.com/katalvlaran/polytope/geometry"
)

// triangulate splits the polygon with the given cycle of points into
// triangles of local indices. planar reports whether the points span at
// most a plane within tol; faces that do not are fanned from point 0.
func triangulate(points [][]float64, tol float64) ([][3]int, bool) {
	s := geometry.SubspaceOf(points, tol)
	if s.Rank() != 2 {
		return fan(seq(len(points))), s.Rank() < 2
	}
	flat := make([][2]float64, len(points))
	for k, p := range points {
		c := s.Coordinates(p)
		flat[k] = [2]float64{c[0], c[1]}
	}

	return earClip(flat, tol), true
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}

	return out
}

func fan(idx []int) [][3]int {
	out := make([][3]int, 0, max(0, len(idx)-2))
	for k := 1; k+1 < len(idx); k++ {
		out = append(out, [3]int{idx[0], idx[k], idx[k+1]})
	}

	return out
}

// earClip cuts convex ears that contain no other polygon point until a
// triangle remains. Self-intersecting cycles (star polygons) can run out
// of ears; the rest is fanned.
func earClip(pts [][2]float64, tol float64) [][3]int {
	idx := seq(len(pts))
	if signedArea(pts) < 0 {
		slices.Reverse(idx)
	}
	var out [][3]int
	for len(idx) > 3 {
		n := len(idx)
		ear := -1
		for k := 0; k < n && ear < 0; k++ {
			a, b, c := idx[(k+n-1)%n], idx[k], idx[(k+1)%n]
			if cross(pts[a], pts[b], pts[c]) <= tol*tol {
				continue
			}
			inside := false
			for _, q := range idx {
				if q != a && q != b && q != c && inTriangle(pts[q], pts[a], pts[b], pts[c]) {
					inside = true

					break
				}
			}
			if !inside {
				ear = k
			}
		}
		if ear < 0 {
			break
		}
		out = append(out, [3]int{idx[(ear+n-1)%n], idx[ear], idx[(ear+1)%n]})
		idx = slices.Delete(idx, ear, ear+1)
	}

	return append(out, fan(idx)...)
}

// signedArea is positive for counter-clockwise cycles.
func signedArea(pts [][2]float64) float64 {
	var a float64
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		a += p[0]*q[1] - q[0]*p[1]
	}

	return a / 2
}

// cross is twice the signed area of triangle abc.
func cross(a, b, c [2]float64) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

// inTriangle reports whether p lies in the closed counter-clockwise
// triangle abc.
func inTriangle(p, a, b, c [2]float64) bool {
	return cross(a, b, p) >= 0 && cross(b, c, p) >= 0 && cross(c, a, p) >= 0
}
