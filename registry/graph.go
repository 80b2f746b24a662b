package registry

import (
	"github.com/achronyme/soc/kernels/graph"
	"github.com/achronyme/soc/types"
	"github.com/katalvlaran/lvlath/core"
)

// registerGraphModule wires the `graph` module to kernels/graph
// (github.com/katalvlaran/lvlath), operating on SOC Network values
// produced by Record->Network promotion (spec.md §4.6).
func registerGraphModule(r *Registry) {
	r.registerModule("graph", map[string]Entry{
		"shortestPath": plain(fnShortestPath),
		"dijkstra":     plain(fnShortestPath),
		"mst":          plain(fnMST),
	})
	r.prelude["nodes"] = plain(fnNodes)
	r.prelude["edges"] = plain(fnEdges)
	r.prelude["neighbors"] = plain(fnNeighbors)
}

// networkWeight extracts an edge's integer weight from its metadata
// record's "weight" field, defaulting to 1 (kernels/graph.WeightFunc's
// intended caller-side policy).
func networkWeight(e types.Edge) int64 {
	if v, ok := e.Meta.Get("weight"); ok {
		if f, ok := asScalar(v); ok {
			return int64(f)
		}
	}
	return 1
}

// buildGraph translates a Network's edges to lvlath's wire format and
// builds the underlying weighted, mixed-mode graph.
func buildGraph(n types.Network) (*core.Graph, error) {
	edges := make([]graph.Edge, len(n.Edges))
	for i, e := range n.Edges {
		edges[i] = graph.Edge{From: e.From, To: e.To, Directed: e.Directed, Weight: networkWeight(e)}
	}
	return graph.Build(n.SortedNodeIDs(), edges)
}

func fnNodes(ctx *types.TaskContext, args []types.Value) types.Result {
	if len(args) != 1 {
		return types.Errf(types.E_ARITY, "nodes(g) expects 1 argument")
	}
	n, ok := args[0].(types.Network)
	if !ok {
		return types.Errf(types.E_TYPE, "nodes expects a network")
	}
	ids := n.SortedNodeIDs()
	out := make([]types.Value, len(ids))
	for i, id := range ids {
		out[i] = types.NewString(id)
	}
	return types.Ok(types.NewVector(out))
}

func fnEdges(ctx *types.TaskContext, args []types.Value) types.Result {
	if len(args) != 1 {
		return types.Errf(types.E_ARITY, "edges(g) expects 1 argument")
	}
	n, ok := args[0].(types.Network)
	if !ok {
		return types.Errf(types.E_TYPE, "edges expects a network")
	}
	out := make([]types.Value, len(n.Edges))
	for i, e := range n.Edges {
		out[i] = e
	}
	return types.Ok(types.NewVector(out))
}

// fnNeighbors implements neighbors(g, id): the node ids reachable by
// one edge from id, following edge direction for directed edges and
// either endpoint for undirected ones.
func fnNeighbors(ctx *types.TaskContext, args []types.Value) types.Result {
	if len(args) != 2 {
		return types.Errf(types.E_ARITY, "neighbors(g, id) expects 2 arguments")
	}
	n, ok := args[0].(types.Network)
	if !ok {
		return types.Errf(types.E_TYPE, "neighbors expects a network")
	}
	id, ok := args[1].(types.String)
	if !ok {
		return types.Errf(types.E_TYPE, "neighbors expects a string node id")
	}
	seen := map[string]bool{}
	var out []types.Value
	for _, e := range n.Edges {
		switch {
		case e.From == id.Val && !seen[e.To]:
			seen[e.To] = true
			out = append(out, types.NewString(e.To))
		case !e.Directed && e.To == id.Val && !seen[e.From]:
			seen[e.From] = true
			out = append(out, types.NewString(e.From))
		}
	}
	return types.Ok(types.NewVector(out))
}

func fnShortestPath(ctx *types.TaskContext, args []types.Value) types.Result {
	if len(args) != 2 {
		return types.Errf(types.E_ARITY, "shortestPath(g, source) expects 2 arguments")
	}
	n, ok := args[0].(types.Network)
	if !ok {
		return types.Errf(types.E_TYPE, "shortestPath expects a network")
	}
	source, ok := args[1].(types.String)
	if !ok {
		return types.Errf(types.E_TYPE, "shortestPath expects a string source node id")
	}
	g, err := buildGraph(n)
	if err != nil {
		return types.Errf(types.E_RUNTIME, err.Error())
	}
	distances, predecessors, err := graph.ShortestPaths(g, source.Val)
	if err != nil {
		return types.Errf(types.E_RUNTIME, err.Error())
	}
	order := make([]string, 0, len(distances))
	for id := range distances {
		order = append(order, id)
	}
	distFields := make(map[string]types.Value, len(distances))
	predFields := make(map[string]types.Value, len(predecessors))
	for id, d := range distances {
		distFields[id] = types.NewNumber(float64(d))
	}
	for id, p := range predecessors {
		predFields[id] = types.NewString(p)
	}
	return types.Ok(types.NewRecord([]string{"distances", "predecessors"}, map[string]types.Value{
		"distances":    types.NewRecord(order, distFields),
		"predecessors": types.NewRecord(keysOf(predFields), predFields),
	}))
}

func fnMST(ctx *types.TaskContext, args []types.Value) types.Result {
	if len(args) != 1 {
		return types.Errf(types.E_ARITY, "mst(g) expects 1 argument")
	}
	n, ok := args[0].(types.Network)
	if !ok {
		return types.Errf(types.E_TYPE, "mst expects a network")
	}
	g, err := buildGraph(n)
	if err != nil {
		return types.Errf(types.E_RUNTIME, err.Error())
	}
	treeEdges, total, err := graph.MinimumSpanningTree(g)
	if err != nil {
		return types.Errf(types.E_RUNTIME, err.Error())
	}
	out := make([]types.Value, len(treeEdges))
	for i, e := range treeEdges {
		out[i] = types.NewEdge(e.From, e.To, e.Directed, types.NewRecord(
			[]string{"weight"}, map[string]types.Value{"weight": types.NewNumber(float64(e.Weight))}))
	}
	return types.Ok(types.NewRecord([]string{"edges", "weight"}, map[string]types.Value{
		"edges":  types.NewVector(out),
		"weight": types.NewNumber(float64(total)),
	}))
}

func keysOf(m map[string]types.Value) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
