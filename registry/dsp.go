package registry

import (
	"github.com/achronyme/soc/kernels/dsp"
	"github.com/achronyme/soc/tensor"
	"github.com/achronyme/soc/types"
)

// registerDSPModule wires the `dsp` named module to kernels/dsp
// (gonum.org/v1/gonum/dsp/fourier).
func registerDSPModule(r *Registry) {
	r.registerModule("dsp", map[string]Entry{
		"fft":       plain(fnFFT),
		"ifft":      plain(fnIFFT),
		"magnitude": plain(fnMagnitude),
	})
}

func fnFFT(ctx *types.TaskContext, args []types.Value) types.Result {
	if len(args) != 1 {
		return types.Errf(types.E_ARITY, "fft(signal) expects 1 argument")
	}
	signal, ok := floatsOf(args[0])
	if !ok {
		return types.Errf(types.E_TYPE, "fft expects a numeric array")
	}
	spectrum := dsp.FFT(signal)
	return types.Ok(types.NewComplexTensor(tensor.NewComplex(spectrum, tensor.Shape{len(spectrum)})))
}

func fnIFFT(ctx *types.TaskContext, args []types.Value) types.Result {
	if len(args) != 1 {
		return types.Errf(types.E_ARITY, "ifft(spectrum) expects 1 argument")
	}
	ct, ok := args[0].(types.ComplexTensorVal)
	if !ok {
		return types.Errf(types.E_TYPE, "ifft expects a complex tensor")
	}
	out := dsp.IFFT(ct.T.Data(), ct.T.Len())
	return types.Ok(tensorFromFloats(out))
}

func fnMagnitude(ctx *types.TaskContext, args []types.Value) types.Result {
	if len(args) != 1 {
		return types.Errf(types.E_ARITY, "magnitude(spectrum) expects 1 argument")
	}
	ct, ok := args[0].(types.ComplexTensorVal)
	if !ok {
		return types.Errf(types.E_TYPE, "magnitude expects a complex tensor")
	}
	out := dsp.Magnitude(ct.T.Data())
	return types.Ok(tensorFromFloats(out))
}
