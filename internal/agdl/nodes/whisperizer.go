package nodes

import (
	"math"
	"math/cmplx"
	"math/rand"

	"github.com/soundgraph/agdl/internal/agdl/runtime"
)

// Whisperizer discards the phase of a frequency spectrum and replaces it
// with a uniformly random one, grounded on Effects/whisperizer.py. The
// example pack carries no third-party randomness library for this kind of
// one-off jitter, so the standard library's math/rand serves it directly.
type Whisperizer struct {
	runtime.Base
}

// NewWhisperizer returns a whisperizer; it takes no configs.
func NewWhisperizer() *Whisperizer {
	w := &Whisperizer{Base: runtime.NewBase()}
	w.DeclareInput("INPUT_FREQUENCIES", false)
	return w
}

func (w *Whisperizer) Compute() error {
	freq := w.Input("INPUT_FREQUENCIES").Complex
	out := make([]complex128, len(freq))
	for i, f := range freq {
		out[i] = cmplx.Rect(cmplx.Abs(f), 2*math.Pi*rand.Float64())
	}
	w.SetOutput("OUTPUT_FREQUENCIES", runtime.ComplexBuf(out))
	return nil
}
