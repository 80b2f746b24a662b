// Package graph wires SOC's `graph` module to lvlath: it builds an
// lvlath core.Graph from a SOC Network's nodes/edges and runs
// lvlath's Dijkstra and Prim/Kruskal algorithms over it.
package graph

import (
	"github.com/katalvlaran/lvlath/core"
	"github.com/katalvlaran/lvlath/dijkstra"
	"github.com/katalvlaran/lvlath/prim_kruskal"
)

// WeightFunc extracts an edge's integer weight from its metadata
// record; callers typically read a "weight" field, defaulting to 1.
type WeightFunc func(meta map[string]float64) int64

// Edge is a minimal description of one SOC Edge value, enough to
// build an lvlath graph without this package depending on the types
// package (kept dependency-light; eval/registry translate on the
// way in and out).
type Edge struct {
	From, To string
	Directed bool
	Weight   int64
}

// Build constructs a weighted, mixed-mode lvlath graph from node IDs
// and edges.
func Build(nodeIDs []string, edges []Edge) (*core.Graph, error) {
	g := core.NewGraph(core.WithWeighted(), core.WithMixedEdges())
	for _, id := range nodeIDs {
		if err := g.AddVertex(id); err != nil {
			return nil, err
		}
	}
	for _, e := range edges {
		if _, err := g.AddEdge(e.From, e.To, e.Weight, core.WithEdgeDirected(e.Directed)); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// ShortestPaths runs Dijkstra from source, returning distances and
// predecessors for path reconstruction.
func ShortestPaths(g *core.Graph, source string) (map[string]int64, map[string]string, error) {
	return dijkstra.Dijkstra(g, dijkstra.Source(source), dijkstra.WithReturnPath())
}

// MinimumSpanningTree runs Kruskal's algorithm, returning the tree
// edges and total weight.
func MinimumSpanningTree(g *core.Graph) ([]core.Edge, int64, error) {
	return prim_kruskal.Kruskal(g)
}
