package eval

import (
	"github.com/achronyme/soc/env"
	"github.com/achronyme/soc/parser"
	"github.com/achronyme/soc/registry"
	"github.com/achronyme/soc/tensor"
	"github.com/achronyme/soc/types"
)

// applyAny calls an already-resolved callable (a *Function or a
// registry.Entry) with already-evaluated arguments, always as a
// non-tail application. Used by pipe stages and anywhere else a
// callable value is applied outside of evalCallTail's own tail-call
// detection.
func (e *Evaluator) applyAny(ctx *types.TaskContext, calleeVal interface{}, args []types.Value) types.Result {
	switch callee := calleeVal.(type) {
	case *Function:
		return e.Apply(ctx, callee, args, nil)
	case registry.Entry:
		return e.callEntry(ctx, callee, args)
	default:
		return types.Errf(types.E_TYPE, "value is not callable")
	}
}

// evalPipe implements `init |> stage1 |> stage2 ...`: each stage is
// called with the accumulated value as its sole argument, left to
// right (spec.md §4.2 pipe grammar level).
func (e *Evaluator) evalPipe(n *parser.PipeExpr, en *env.Environment, ctx *types.TaskContext) types.Result {
	acc := e.Eval(n.Init, en, ctx)
	if !acc.IsNormal() {
		return acc
	}
	val := acc.Val
	for _, stage := range n.Stages {
		calleeVal, _, err := e.resolveCallee(stage, en, ctx)
		if err != nil {
			return *err
		}
		res := e.applyAny(ctx, calleeVal, []types.Value{val})
		if !res.IsNormal() {
			return res
		}
		val = res.Val
	}
	return types.Ok(val)
}

// evalEdge implements `from -> to` / `from -- to`, optionally `: meta`
// (spec.md §4.6). from/to are the bare identifier text and are never
// evaluated as variable references; only Meta, if present, is.
func (e *Evaluator) evalEdge(n *parser.EdgeExpr, en *env.Environment, ctx *types.TaskContext) types.Result {
	meta := types.NewEmptyRecord()
	if n.Meta != nil {
		res := e.Eval(n.Meta, en, ctx)
		if !res.IsNormal() {
			return res
		}
		rec, ok := res.Val.(types.Record)
		if !ok {
			return types.Errf(types.E_TYPE, "edge metadata must be a record")
		}
		meta = rec
	}
	return types.Ok(types.NewEdge(n.From, n.To, n.Directed, meta))
}

// flattenSpread expands a spread element's value into the elements it
// contributes to an enclosing array literal (spec.md §4.2 `...expr`).
func flattenSpread(v types.Value) ([]types.Value, bool) {
	switch val := v.(type) {
	case types.Vector:
		return val.Elements, true
	case types.TensorVal:
		data := val.T.Data()
		out := make([]types.Value, len(data))
		for i, f := range data {
			out[i] = types.NewNumber(f)
		}
		return out, true
	case types.String:
		runes := []rune(val.Val)
		out := make([]types.Value, len(runes))
		for i, r := range runes {
			out[i] = types.NewString(string(r))
		}
		return out, true
	}
	return nil, false
}

// evalArray implements vector and matrix literals (spec.md §4.2
// ArrayExpr): uniformly-numeric elements promote to a real TensorVal
// (nested numeric arrays producing a higher-rank tensor, and rows of
// unequal shape raising ShapeError); anything else collects into a
// heterogeneous Vector.
func (e *Evaluator) evalArray(n *parser.ArrayExpr, en *env.Environment, ctx *types.TaskContext) types.Result {
	elems := make([]types.Value, 0, len(n.Elements))
	for _, el := range n.Elements {
		res := e.Eval(el.Value, en, ctx)
		if !res.IsNormal() {
			return res
		}
		if el.Spread {
			expanded, ok := flattenSpread(res.Val)
			if !ok {
				return types.Errf(types.E_TYPE, "cannot spread a non-collection value")
			}
			elems = append(elems, expanded...)
		} else {
			elems = append(elems, res.Val)
		}
	}
	return buildArrayValue(elems)
}

func buildArrayValue(elems []types.Value) types.Result {
	if len(elems) == 0 {
		return types.Ok(types.NewVector(elems))
	}
	allNumber := true
	for _, el := range elems {
		if _, ok := el.(types.Number); !ok {
			allNumber = false
			break
		}
	}
	if allNumber {
		data := make([]float64, len(elems))
		for i, el := range elems {
			data[i] = el.(types.Number).Val
		}
		return types.Ok(types.NewTensor(tensor.New(data, tensor.Shape{len(elems)})))
	}

	allTensor := true
	ragged := false
	var rowShape tensor.Shape
	for i, el := range elems {
		tv, ok := el.(types.TensorVal)
		if !ok {
			allTensor = false
			break
		}
		if i == 0 {
			rowShape = tv.T.Shape()
		} else if !tv.T.Shape().Equal(rowShape) {
			ragged = true
		}
	}
	if allTensor && ragged {
		return types.Errf(types.E_SHAPE, "ragged array literal: rows differ in shape")
	}
	if allTensor && rowShape != nil {
		var data []float64
		for _, el := range elems {
			data = append(data, el.(types.TensorVal).T.Data()...)
		}
		shape := append(tensor.Shape{len(elems)}, rowShape...)
		return types.Ok(types.NewTensor(tensor.New(data, shape)))
	}

	return types.Ok(types.NewVector(elems))
}

// evalRecord implements record literals, including spread (later
// fields override earlier ones at the same key, spec.md §4.2) and
// Record -> Network promotion when the result transitively contains an
// Edge (spec.md §4.6).
func (e *Evaluator) evalRecord(n *parser.RecordExpr, en *env.Environment, ctx *types.TaskContext) types.Result {
	rec := types.NewEmptyRecord()
	for _, f := range n.Fields {
		res := e.Eval(f.Value, en, ctx)
		if !res.IsNormal() {
			return res
		}
		if f.Spread {
			spreadRec, ok := res.Val.(types.Record)
			if !ok {
				return types.Errf(types.E_TYPE, "cannot spread a non-record value into a record literal")
			}
			for _, p := range spreadRec.Pairs() {
				rec = rec.Set(p.Key, p.Val)
			}
			continue
		}
		rec = rec.Set(f.Key, res.Val)
	}
	if rec.ContainsEdge() {
		return types.Ok(promoteToNetwork(rec))
	}
	return types.Ok(rec)
}

// promoteToNetwork implements spec.md §4.6's Network promotion rule:
// extract `nodes` and `edges` keys, infer any node id only seen as an
// edge endpoint, and keep the remaining fields as network metadata.
func promoteToNetwork(rec types.Record) types.Network {
	net := types.NewNetwork()
	var metaKeys []string
	metaPairs := map[string]types.Value{}
	for _, p := range rec.Pairs() {
		switch p.Key {
		case "nodes":
			addNodesFrom(&net, p.Val)
		case "edges":
			addEdgesFrom(&net, p.Val)
		default:
			metaKeys = append(metaKeys, p.Key)
			metaPairs[p.Key] = p.Val
		}
	}
	for _, edge := range net.Edges {
		net.EnsureNode(edge.From)
		net.EnsureNode(edge.To)
	}
	net.Meta = types.NewRecord(metaKeys, metaPairs)
	return net
}

func addNodesFrom(net *types.Network, v types.Value) {
	switch val := v.(type) {
	case types.Vector:
		for _, el := range val.Elements {
			if s, ok := el.(types.String); ok {
				net.AddNode(s.Val, nil)
			}
		}
	case types.Record:
		for _, p := range val.Pairs() {
			net.AddNode(p.Key, p.Val)
		}
	}
}

func addEdgesFrom(net *types.Network, v types.Value) {
	switch val := v.(type) {
	case types.Edge:
		net.Edges = append(net.Edges, val)
	case types.Vector:
		for _, el := range val.Elements {
			addEdgesFrom(net, el)
		}
	}
}

// evalField implements plain `target.field` record access, plus the
// fixed `from`/`to`/`directed`/`meta` fields an Edge exposes (spec.md
// §8 "edge identifiers are not evaluated": `e.from == "A"`, the bare
// identifier text, never a variable lookup). Method-call sugar
// (`target.method(args)`) is instead handled by resolveCallee, which
// binds self before applying the looked-up function.
func (e *Evaluator) evalField(n *parser.FieldExpr, en *env.Environment, ctx *types.TaskContext) types.Result {
	res := e.Eval(n.Target, en, ctx)
	if !res.IsNormal() {
		return res
	}
	if edge, ok := res.Val.(types.Edge); ok {
		switch n.Field {
		case "from":
			return types.Ok(types.NewString(edge.From))
		case "to":
			return types.Ok(types.NewString(edge.To))
		case "directed":
			return types.Ok(types.NewBoolean(edge.Directed))
		case "meta":
			return types.Ok(edge.Meta)
		default:
			return types.Errf(types.E_RESOLUTION, "no such field: "+n.Field)
		}
	}
	rec, ok := res.Val.(types.Record)
	if !ok {
		return types.Errf(types.E_TYPE, "field access on a non-record value")
	}
	v, ok := rec.Get(n.Field)
	if !ok {
		return types.Errf(types.E_RESOLUTION, "no such field: "+n.Field)
	}
	return types.Ok(v)
}

// evalIndex implements `target[index]`, covering plain numeric
// indices, the `^`/`$` first/last markers, and `start..end` range
// slices, across Vector, TensorVal, String, Record, and Network
// (spec.md §4.1 tensor operations: "indexed access... slice with range
// expressions"). A ComplexTensorVal target is not indexable or
// sliceable: both raise TypeError.
func (e *Evaluator) evalIndex(n *parser.IndexExpr, en *env.Environment, ctx *types.TaskContext) types.Result {
	targetRes := e.Eval(n.Target, en, ctx)
	if !targetRes.IsNormal() {
		return targetRes
	}
	target := targetRes.Val

	if rng, ok := n.Index.(*parser.RangeExpr); ok {
		return e.evalSlice(target, rng, en, ctx)
	}

	var idx int
	if marker, ok := n.Index.(*parser.IndexMarkerExpr); ok {
		length, ok := indexableLen(target)
		if !ok {
			return types.Errf(types.E_TYPE, "value is not indexable")
		}
		if length == 0 {
			return types.Errf(types.E_SHAPE, "index out of range on empty collection")
		}
		if marker.Last {
			idx = length - 1
		} else {
			idx = 0
		}
	} else {
		idxRes := e.Eval(n.Index, en, ctx)
		if !idxRes.IsNormal() {
			return idxRes
		}
		if rec, ok := target.(types.Record); ok {
			key, ok := idxRes.Val.(types.String)
			if !ok {
				return types.Errf(types.E_TYPE, "record index must be a string")
			}
			v, ok := rec.Get(key.Val)
			if !ok {
				return types.Errf(types.E_RESOLUTION, "no such field: "+key.Val)
			}
			return types.Ok(v)
		}
		if net, ok := target.(types.Network); ok {
			key, ok := idxRes.Val.(types.String)
			if !ok {
				return types.Errf(types.E_TYPE, "network index must be a node id string")
			}
			v, ok := net.Nodes[key.Val]
			if !ok {
				return types.Errf(types.E_RESOLUTION, "no such node: "+key.Val)
			}
			return types.Ok(v)
		}
		f, ok := scalarOf(idxRes.Val)
		if !ok {
			return types.Errf(types.E_TYPE, "index must be a number")
		}
		idx = int(f)
	}

	return indexElement(target, idx)
}

func indexableLen(v types.Value) (int, bool) {
	switch val := v.(type) {
	case types.Vector:
		return val.Len(), true
	case types.String:
		return len([]rune(val.Val)), true
	case types.TensorVal:
		if val.T.Rank() == 0 {
			return 0, false
		}
		return val.T.Shape()[0], true
	case types.ComplexTensorVal:
		if val.T.Rank() == 0 {
			return 0, false
		}
		return val.T.Shape()[0], true
	}
	return 0, false
}

func indexElement(target types.Value, idx int) types.Result {
	switch val := target.(type) {
	case types.Vector:
		v, ok := val.Get(idx)
		if !ok {
			return types.Errf(types.E_SHAPE, "index out of range")
		}
		return types.Ok(v)
	case types.String:
		runes := []rune(val.Val)
		if idx < 0 || idx >= len(runes) {
			return types.Errf(types.E_SHAPE, "index out of range")
		}
		return types.Ok(types.NewString(string(runes[idx])))
	case types.TensorVal:
		if val.T.Rank() == 1 {
			f, err := val.T.At([]int{idx})
			if err != nil {
				return types.Errf(types.E_SHAPE, err.Error())
			}
			return types.Ok(types.NewNumber(f))
		}
		sub, err := val.T.Slice(idx, idx+1)
		if err != nil {
			return types.Errf(types.E_SHAPE, err.Error())
		}
		reshaped, err := sub.Reshape(sub.Shape()[1:])
		if err != nil {
			return types.Errf(types.E_SHAPE, err.Error())
		}
		return types.Ok(types.NewTensor(reshaped))
	default:
		return types.Errf(types.E_TYPE, "value is not indexable")
	}
}

// evalSlice implements `target[start..end]`, end-exclusive per
// spec.md §9's adopted convention; an absent bound defaults to 0 (for
// Start) or the collection's length (for End).
func (e *Evaluator) evalSlice(target types.Value, rng *parser.RangeExpr, en *env.Environment, ctx *types.TaskContext) types.Result {
	length, ok := indexableLen(target)
	if !ok {
		return types.Errf(types.E_TYPE, "value does not support slicing")
	}
	start := 0
	if rng.Start != nil {
		res := e.Eval(rng.Start, en, ctx)
		if !res.IsNormal() {
			return res
		}
		f, ok := scalarOf(res.Val)
		if !ok {
			return types.Errf(types.E_TYPE, "range bound must be a number")
		}
		start = int(f)
	}
	end := length
	if rng.End != nil {
		res := e.Eval(rng.End, en, ctx)
		if !res.IsNormal() {
			return res
		}
		f, ok := scalarOf(res.Val)
		if !ok {
			return types.Errf(types.E_TYPE, "range bound must be a number")
		}
		end = int(f)
	}

	switch val := target.(type) {
	case types.Vector:
		if start < 0 {
			start = 0
		}
		if end > val.Len() {
			end = val.Len()
		}
		if start > end {
			start = end
		}
		out := make([]types.Value, end-start)
		copy(out, val.Elements[start:end])
		return types.Ok(types.NewVector(out))
	case types.String:
		runes := []rune(val.Val)
		if start < 0 {
			start = 0
		}
		if end > len(runes) {
			end = len(runes)
		}
		if start > end {
			start = end
		}
		return types.Ok(types.NewString(string(runes[start:end])))
	case types.TensorVal:
		sub, err := val.T.Slice(start, end)
		if err != nil {
			return types.Errf(types.E_SHAPE, err.Error())
		}
		return types.Ok(types.NewTensor(sub))
	default:
		return types.Errf(types.E_TYPE, "value does not support slicing")
	}
}
