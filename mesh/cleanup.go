package mesh

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// DeleteVertices removes every vertex for which del returns true along
// with all faces that use it. It returns the number of vertices removed.
func (m *Mesh) DeleteVertices(del func(v r3.Vec) bool) int {
	gone := make([]bool, len(m.Vertices))
	n := 0
	for i, v := range m.Vertices {
		if del(v) {
			gone[i] = true
			n++
		}
	}
	if n == 0 {
		return 0
	}
	faces := m.Faces[:0]
	for _, f := range m.Faces {
		if gone[f[0]] || gone[f[1]] || gone[f[2]] {
			continue
		}
		faces = append(faces, f)
	}
	m.Faces = faces
	before := len(m.Vertices)
	m.compact()
	return before - len(m.Vertices)
}

// BoundaryLoops returns the closed chains of boundary edges, that is
// edges used by exactly one face. Each loop lists vertex indices in the
// winding direction of the faces that border it.
func (m *Mesh) BoundaryLoops() [][]int {
	count := make(map[[2]int]int)
	for _, f := range m.Faces {
		for j := range f {
			count[undirected(f[j], f[(j+1)%3])]++
		}
	}
	// Outgoing boundary edges per vertex in face order.
	next := make(map[int][]int)
	var starts []int
	for _, f := range m.Faces {
		for j := range f {
			a, b := f[j], f[(j+1)%3]
			if count[undirected(a, b)] != 1 {
				continue
			}
			if len(next[a]) == 0 {
				starts = append(starts, a)
			}
			next[a] = append(next[a], b)
		}
	}
	var loops [][]int
	for _, start := range starts {
		for len(next[start]) > 0 {
			loop := []int{start}
			v := start
			for {
				outs := next[v]
				if len(outs) == 0 {
					// Open chain, only possible on non-manifold input.
					loop = nil
					break
				}
				w := outs[len(outs)-1]
				next[v] = outs[:len(outs)-1]
				if w == start {
					break
				}
				loop = append(loop, w)
				v = w
			}
			if len(loop) >= 3 {
				loops = append(loops, loop)
			}
		}
	}
	return loops
}

// FillHoles closes every boundary loop. Triangular holes get a single
// face; larger holes are fanned from a new vertex at the loop centroid.
// It returns the number of holes filled.
func (m *Mesh) FillHoles() int {
	loops := m.BoundaryLoops()
	for _, loop := range loops {
		if len(loop) == 3 {
			m.Faces = append(m.Faces, [3]int{loop[2], loop[1], loop[0]})
			continue
		}
		var c r3.Vec
		for _, idx := range loop {
			c = r3.Add(c, m.Vertices[idx])
		}
		c = r3.Scale(1/float64(len(loop)), c)
		ic := len(m.Vertices)
		m.Vertices = append(m.Vertices, c)
		for i := range loop {
			a, b := loop[i], loop[(i+1)%len(loop)]
			m.Faces = append(m.Faces, [3]int{b, a, ic})
		}
	}
	return len(loops)
}

// MakeNormalsConsistent orients the faces of every connected component
// so neighbouring faces agree, then flips components with negative
// volume so normals point outwards. It returns the number of faces flipped.
func (m *Mesh) MakeNormalsConsistent() int {
	adj := make(map[[2]int][]int)
	for i, f := range m.Faces {
		for j := range f {
			e := undirected(f[j], f[(j+1)%3])
			adj[e] = append(adj[e], i)
		}
	}
	visited := make([]bool, len(m.Faces))
	flipped := make([]bool, len(m.Faces))
	flips := 0
	for seed := range m.Faces {
		if visited[seed] {
			continue
		}
		component := []int{seed}
		visited[seed] = true
		for q := 0; q < len(component); q++ {
			fi := component[q]
			f := m.Faces[fi]
			for j := range f {
				a, b := f[j], f[(j+1)%3]
				for _, nb := range adj[undirected(a, b)] {
					if visited[nb] {
						continue
					}
					visited[nb] = true
					if hasDirectedEdge(m.Faces[nb], a, b) {
						m.Faces[nb] = flip(m.Faces[nb])
						flipped[nb] = !flipped[nb]
					}
					component = append(component, nb)
				}
			}
		}
		faces := make([][3]int, len(component))
		for i, fi := range component {
			faces[i] = m.Faces[fi]
		}
		if facesVolume(m.Vertices, faces) < 0 {
			for _, fi := range component {
				m.Faces[fi] = flip(m.Faces[fi])
				flipped[fi] = !flipped[fi]
			}
		}
	}
	for _, f := range flipped {
		if f {
			flips++
		}
	}
	return flips
}

// FlipNormals reverses the winding of every face.
func (m *Mesh) FlipNormals() {
	for i := range m.Faces {
		m.Faces[i] = flip(m.Faces[i])
	}
}

func flip(f [3]int) [3]int { return [3]int{f[0], f[2], f[1]} }

func hasDirectedEdge(f [3]int, a, b int) bool {
	for j := range f {
		if f[j] == a && f[(j+1)%3] == b {
			return true
		}
	}
	return false
}

func undirected(a, b int) [2]int {
	if a > b {
		return [2]int{b, a}
	}
	return [2]int{a, b}
}
