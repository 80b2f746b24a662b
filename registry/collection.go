package registry

import (
	"github.com/achronyme/soc/tensor"
	"github.com/achronyme/soc/types"
)

// elementsOf returns a container's elements as a plain []types.Value,
// regardless of whether it is stored as a Vector or a TensorVal, plus
// a tag recording which it came from so callers can try to preserve
// the container kind on the way back out (spec.md §4.6 "map...
// preserves container kind").
func elementsOf(v types.Value) ([]types.Value, bool, bool) {
	switch val := v.(type) {
	case types.Vector:
		return val.Elements, false, true
	case types.TensorVal:
		data := val.T.Data()
		out := make([]types.Value, len(data))
		for i, x := range data {
			out[i] = types.NewNumber(x)
		}
		return out, true, true
	case types.String:
		rs := []rune(val.Val)
		out := make([]types.Value, len(rs))
		for i, r := range rs {
			out[i] = types.NewString(string(r))
		}
		return out, false, true
	default:
		return nil, false, false
	}
}

// rebuildContainer returns elems as a Tensor if wasTensor and every
// element is a Number (spec.md's "Tensor stays Tensor iff fn returns
// Number for every element; otherwise degrades to heterogeneous
// Vector").
func rebuildContainer(elems []types.Value, wasTensor bool) types.Value {
	if wasTensor {
		data := make([]float64, len(elems))
		allNum := true
		for i, e := range elems {
			n, ok := e.(types.Number)
			if !ok {
				allNum = false
				break
			}
			data[i] = n.Val
		}
		if allNum {
			return types.NewTensor(tensor.New(data, tensor.Shape{len(data)}))
		}
	}
	return types.NewVector(elems)
}
