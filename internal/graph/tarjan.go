package graph

// FindCycles reports the circular dependency groups of the graph: the
// strongly connected components with two or more members. Self-loops of size
// one are not cycles.
//
// The traversal is an explicit-stack depth-first search so pathological
// graphs cannot exhaust the call stack. Per-node discovery state lives in
// slices indexed by a dense integer id assigned on first sight; nodes and
// neighbors are visited in lexical order, so identical graphs always produce
// identical output.
func FindCycles(g DependencyGraph) [][]string {
	names, adj := indexGraph(g)
	n := len(names)

	const unvisited = -1
	indices := make([]int, n)
	lowlink := make([]int, n)
	onStack := make([]bool, n)
	for i := range indices {
		indices[i] = unvisited
	}

	index := 0
	var stack []int
	var cycles [][]string

	type frame struct {
		v  int
		ni int // next neighbor offset
	}

	for root := 0; root < n; root++ {
		if indices[root] != unvisited {
			continue
		}

		frames := []frame{{v: root}}
		for len(frames) > 0 {
			f := &frames[len(frames)-1]
			v := f.v

			if f.ni == 0 {
				indices[v] = index
				lowlink[v] = index
				index++
				stack = append(stack, v)
				onStack[v] = true
			}

			descended := false
			for f.ni < len(adj[v]) {
				w := adj[v][f.ni]
				f.ni++
				if indices[w] == unvisited {
					frames = append(frames, frame{v: w})
					descended = true
					break
				}
				if onStack[w] && indices[w] < lowlink[v] {
					lowlink[v] = indices[w]
				}
			}
			if descended {
				continue
			}

			// v's subtree is complete: close its component if v is the root.
			if lowlink[v] == indices[v] {
				var comp []string
				for {
					w := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					onStack[w] = false
					comp = append(comp, names[w])
					if w == v {
						break
					}
				}
				if len(comp) > 1 {
					cycles = append(cycles, comp)
				}
			}

			frames = frames[:len(frames)-1]
			if len(frames) > 0 {
				parent := frames[len(frames)-1].v
				if lowlink[v] < lowlink[parent] {
					lowlink[parent] = lowlink[v]
				}
			}
		}
	}

	return cycles
}

// indexGraph assigns every node a dense integer id and builds an id-based
// adjacency list. Targets that are not graph keys (package prefixes and the
// like) still become nodes, with no outgoing edges.
func indexGraph(g DependencyGraph) ([]string, [][]int) {
	ids := make(map[string]int, len(g))
	var names []string

	idOf := func(name string) int {
		if id, ok := ids[name]; ok {
			return id
		}
		id := len(names)
		ids[name] = id
		names = append(names, name)
		return id
	}

	for _, fqn := range g.SortedNodes() {
		idOf(fqn)
	}

	adj := make([][]int, 0, len(names))
	for _, fqn := range g.SortedNodes() {
		neighbors := g.SortedNeighbors(fqn)
		row := make([]int, 0, len(neighbors))
		for _, t := range neighbors {
			row = append(row, idOf(t))
		}
		adj = append(adj, row)
	}

	// Targets discovered during adjacency construction have no edges.
	for len(adj) < len(names) {
		adj = append(adj, nil)
	}

	return names, adj
}
