package nodes

import (
	"math/cmplx"

	"github.com/soundgraph/agdl/internal/agdl/runtime"
)

// FrequencyAbsoluter discards the phase of a complex frequency-domain
// buffer, keeping only magnitude (emitted as a complex buffer with zero
// imaginary parts, the form IFFT reads). Grounded on
// Synthesis/frequency_absoluter.py; chained ahead of an IFFT stage it
// robotizes a phase-vocoding pipeline.
type FrequencyAbsoluter struct {
	runtime.Base
}

// NewFrequencyAbsoluter returns an absoluter; it takes no configs.
func NewFrequencyAbsoluter() *FrequencyAbsoluter {
	f := &FrequencyAbsoluter{Base: runtime.NewBase()}
	f.DeclareInput("FREQUENCIES", false)
	return f
}

func (f *FrequencyAbsoluter) Compute() error {
	freq := f.Input("FREQUENCIES").Complex
	out := make([]complex128, len(freq))
	for i, v := range freq {
		out[i] = complex(cmplx.Abs(v), 0)
	}
	f.SetOutput("ABSOLUTE_FREQUENCIES", runtime.ComplexBuf(out))
	return nil
}
