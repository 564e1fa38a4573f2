// Package mesh analyzes triangle-mesh topology stored in a PLY model.
//
// The analyzer discovers boundary loops by edge parity: an edge that appears
// an odd number of times across all faces lies on a boundary. Walking the
// surviving edges yields the holes, which can then be closed with a fan of
// triangles or extruded downward into a flat-bottomed solid.
package mesh

import (
	"fmt"
	"math"

	"github.com/cartolab/plymesh/errs"
	"github.com/cartolab/plymesh/ply"
)

// maxEdgeVertex is the largest vertex index the packed edge key can carry.
// Each endpoint occupies 32 bits of the key; meshes beyond this need a
// pair-keyed map instead.
const maxEdgeVertex = math.MaxInt32

// edgeKey packs an unordered vertex pair, smaller index first.
func edgeKey(a, b int) uint64 {
	if a > b {
		a, b = b, a
	}

	return uint64(a)<<32 | uint64(b)
}

func splitEdgeKey(key uint64) (int, int) {
	return int(key >> 32), int(key & 0xFFFFFFFF)
}

// Holes returns the mesh's boundary loops, one vertex sequence per hole, in
// cyclic traversal order. A closed mesh yields an empty list.
//
// The walk assumes the boundary is a disjoint union of simple cycles; a
// vertex lying on more than two boundary edges makes Holes fail with
// ErrNonManifoldBoundary before any loop is walked.
func Holes(m *ply.Model) ([][]int, error) {
	edges, err := boundaryEdges(m)
	if err != nil {
		return nil, err
	}

	degree := make(map[int]int)
	for key := range edges {
		a, b := splitEdgeKey(key)
		degree[a]++
		degree[b]++
	}
	for v, d := range degree {
		if d > 2 {
			return nil, fmt.Errorf("%w: vertex %d lies on %d boundary edges", errs.ErrNonManifoldBoundary, v, d)
		}
	}

	var holes [][]int
	for len(edges) > 0 {
		hole, err := walkLoop(edges)
		if err != nil {
			return nil, err
		}
		holes = append(holes, hole)
	}

	return holes, nil
}

// boundaryEdges accumulates each face's edges under parity: inserting an
// absent key, removing a present one. What survives appeared an odd number
// of times.
func boundaryEdges(m *ply.Model) (map[uint64]struct{}, error) {
	edges := make(map[uint64]struct{})

	faceCount := m.FaceCount()
	for i := 0; i < faceCount; i++ {
		indices, err := m.FaceIndices(i)
		if err != nil {
			return nil, err
		}
		n := len(indices)
		for j := 0; j < n; j++ {
			a := indices[j]
			b := indices[(j+1)%n]
			if a < 0 || b < 0 || a > maxEdgeVertex || b > maxEdgeVertex {
				return nil, fmt.Errorf("%w: face %d", errs.ErrVertexIndexTooLarge, i)
			}
			key := edgeKey(a, b)
			if _, ok := edges[key]; ok {
				delete(edges, key)
			} else {
				edges[key] = struct{}{}
			}
		}
	}

	return edges, nil
}

// walkLoop removes one complete loop from the edge set and returns its
// vertices. The smallest remaining key seeds the walk so results are
// deterministic for a given mesh.
func walkLoop(edges map[uint64]struct{}) ([]int, error) {
	start, frontier := splitEdgeKey(smallestKey(edges))
	delete(edges, edgeKey(start, frontier))

	hole := []int{start, frontier}
	for frontier != start {
		next, ok := takeIncident(edges, frontier)
		if !ok {
			return nil, fmt.Errorf("%w: open walk stuck at vertex %d", errs.ErrNonManifoldBoundary, frontier)
		}
		frontier = next
		if frontier != start {
			hole = append(hole, frontier)
		}
	}

	return hole, nil
}

func smallestKey(edges map[uint64]struct{}) uint64 {
	first := true
	var best uint64
	for key := range edges {
		if first || key < best {
			best = key
			first = false
		}
	}

	return best
}

// takeIncident removes and returns the far endpoint of the smallest-keyed
// edge incident to vertex v.
func takeIncident(edges map[uint64]struct{}, v int) (int, bool) {
	found := false
	var bestKey uint64
	var bestOther int
	for key := range edges {
		a, b := splitEdgeKey(key)
		var other int
		switch v {
		case a:
			other = b
		case b:
			other = a
		default:
			continue
		}
		if !found || key < bestKey {
			bestKey = key
			bestOther = other
			found = true
		}
	}
	if !found {
		return 0, false
	}

	delete(edges, bestKey)

	return bestOther, true
}

// FillFan closes one hole with triangles radiating from a new centroid
// vertex. The centroid row is duplicated from the hole's first vertex so
// colour and normal properties carry over; only its position is overwritten.
// A hole of n vertices gains exactly n triangles.
func FillFan(m *ply.Model, hole []int) error {
	if len(hole) < 3 {
		return fmt.Errorf("hole must have at least 3 vertices, got %d", len(hole))
	}

	var cx, cy, cz float64
	for _, v := range hole {
		c, err := m.VertexCoords(v)
		if err != nil {
			return err
		}
		cx += c.X
		cy += c.Y
		cz += c.Z
	}
	n := float64(len(hole))

	centroid, err := m.DuplicateVertex(hole[0])
	if err != nil {
		return err
	}
	if err := m.SetVertexPosition(centroid, cx/n, cy/n, cz/n); err != nil {
		return err
	}

	for i := 0; i < len(hole)-1; i++ {
		if err := m.AddFace([]int{hole[i], hole[i+1], centroid}); err != nil {
			return err
		}
	}

	return m.AddFace([]int{hole[0], hole[len(hole)-1], centroid})
}

// FillBase extrudes one hole downward and caps it, producing a flat base.
// The base sits percent% of the model's height below the hole's lowest
// vertex. Each hole vertex is duplicated at the base depth, quad side walls
// join the two loops, and the base loop is fan-filled.
//
// Face orientation is not enforced; re-orient externally if a consistent
// winding is required.
func FillBase(m *ply.Model, hole []int, percent float64) error {
	if len(hole) < 3 {
		return fmt.Errorf("hole must have at least 3 vertices, got %d", len(hole))
	}

	box, err := m.BoundingBox()
	if err != nil {
		return err
	}

	zMin := math.Inf(1)
	for _, v := range hole {
		c, err := m.VertexCoords(v)
		if err != nil {
			return err
		}
		zMin = min(zMin, c.Z)
	}
	baseZ := zMin - percent/100*(box.MaxZ-box.MinZ)

	base := make([]int, len(hole))
	for i, v := range hole {
		c, err := m.VertexCoords(v)
		if err != nil {
			return err
		}
		idx, err := m.DuplicateVertex(v)
		if err != nil {
			return err
		}
		if err := m.SetVertexPosition(idx, c.X, c.Y, baseZ); err != nil {
			return err
		}
		base[i] = idx
	}

	last := len(hole) - 1
	for i := 0; i < last; i++ {
		if err := m.AddFace([]int{hole[i], hole[i+1], base[i+1], base[i]}); err != nil {
			return err
		}
	}
	if err := m.AddFace([]int{hole[last], hole[0], base[0], base[last]}); err != nil {
		return err
	}

	return FillFan(m, base)
}
