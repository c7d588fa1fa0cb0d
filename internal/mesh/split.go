package mesh

// Split partitions the mesh into connected chunks, each within the given
// triangle and vertex budgets. The union of chunk triangles equals the
// input's triangles with nothing lost or duplicated; vertices on chunk
// boundaries are duplicated into each chunk, so every chunk owns its
// buffers outright and can be processed in parallel.
func Split(m *Mesh, maxTriangles, maxVertices int) []*Mesh {
	tc := m.TriangleCount()
	if tc == 0 {
		return nil
	}

	// Triangle adjacency through shared vertices.
	vertexTris := make([][]int32, len(m.Vertices))
	for t := 0; t < tc; t++ {
		for e := 0; e < 3; e++ {
			v := m.Indices[t*3+e]
			vertexTris[v] = append(vertexTris[v], int32(t))
		}
	}

	assigned := make([]bool, tc)
	inRegion := make([]bool, tc)
	var chunks []*Mesh

	for seed := 0; seed < tc; seed++ {
		if assigned[seed] {
			continue
		}

		// Grow a connected region from the seed, bounded by the budgets.
		var region []int32
		chunkVerts := make(map[uint32]struct{})
		queue := []int32{int32(seed)}
		assigned[seed] = true

		for len(queue) > 0 {
			t := queue[0]
			queue = queue[1:]

			// Admission check: would this triangle overflow the vertex
			// budget? The seed always fits (budgets are >= 3).
			added := 0
			for e := 0; e < 3; e++ {
				if _, ok := chunkVerts[m.Indices[t*3+int32(e)]]; !ok {
					added++
				}
			}
			if len(region) > 0 &&
				(len(region)+1 > maxTriangles || len(chunkVerts)+added > maxVertices) {
				assigned[t] = false
				continue
			}

			region = append(region, t)
			inRegion[t] = true
			for e := 0; e < 3; e++ {
				chunkVerts[m.Indices[t*3+int32(e)]] = struct{}{}
			}
			if len(region) >= maxTriangles {
				break
			}

			for e := 0; e < 3; e++ {
				for _, nt := range vertexTris[m.Indices[t*3+int32(e)]] {
					if !assigned[nt] {
						assigned[nt] = true
						queue = append(queue, nt)
					}
				}
			}
		}

		// Triangles reserved in the queue but never admitted go back to
		// the pool for later chunks.
		for _, t := range queue {
			if !inRegion[t] {
				assigned[t] = false
			}
		}

		chunks = append(chunks, extractRegion(m, region))
	}
	return chunks
}

// extractRegion copies the listed triangles into a standalone mesh with
// remapped, locally owned vertex buffers.
func extractRegion(m *Mesh, tris []int32) *Mesh {
	out := &Mesh{Scale: m.Scale}
	remap := make(map[uint32]uint32, len(tris)*2)
	for _, t := range tris {
		for e := 0; e < 3; e++ {
			src := m.Indices[int(t)*3+e]
			dst, ok := remap[src]
			if !ok {
				dst = uint32(len(out.Vertices))
				remap[src] = dst
				out.Vertices = append(out.Vertices, m.Vertices[src])
			}
			out.Indices = append(out.Indices, dst)
		}
	}
	return out
}
