package nodes

import (
	"math"

	"github.com/soundgraph/agdl/internal/agdl/runtime"
)

// FFTPreprocessor zero-pads a sample buffer ahead of an FFT stage. Grounded
// on Standard/fft_preprocessor.py. Per SPEC_FULL.md's correction, the pad
// actually takes effect: the original computes np.pad(...) and discards
// the return value, leaving the buffer unpadded.
type FFTPreprocessor struct {
	runtime.Base

	fftLength int
	offset    int
}

// NewFFTPreprocessor returns a preprocessor ready for Initialize.
func NewFFTPreprocessor() *FFTPreprocessor {
	p := &FFTPreprocessor{Base: runtime.NewBase()}
	p.DeclareInput("INPUT_SAMPLES", false)
	return p
}

func (p *FFTPreprocessor) Initialize(configs map[string]runtime.Payload) error {
	length, err := requireInt(p.Name(), configs, "FFT_LENGTH")
	if err != nil {
		return err
	}
	offset, err := requireInt(p.Name(), configs, "OFFSET")
	if err != nil {
		return err
	}
	p.fftLength = length
	p.offset = offset
	return nil
}

func (p *FFTPreprocessor) Compute() error {
	samples := p.Input("INPUT_SAMPLES").Floats

	leftPad := p.fftLength
	rightPad := p.fftLength - (len(samples)+leftPad)%p.offset

	out := make([]float64, leftPad+len(samples)+rightPad)
	copy(out[leftPad:], samples)

	p.SetOutput("OUTPUT_SAMPLES", runtime.Floats64(out))
	return nil
}

// FFTPostprocessor normalizes samples after an IFFT stage, dividing by the
// buffer's peak magnitude so the peak becomes 1 (an all-zero buffer stays
// all zero). Grounded on Standard/fft_postprocessor.py.
type FFTPostprocessor struct {
	runtime.Base
}

// NewFFTPostprocessor returns a postprocessor; it takes no configs.
func NewFFTPostprocessor() *FFTPostprocessor {
	p := &FFTPostprocessor{Base: runtime.NewBase()}
	p.DeclareInput("INPUT_SAMPLES", false)
	return p
}

func (p *FFTPostprocessor) Compute() error {
	samples := p.Input("INPUT_SAMPLES").Floats

	max := 0.0
	for _, v := range samples {
		if abs := math.Abs(v); abs > max {
			max = abs
		}
	}

	out := make([]float64, len(samples))
	if max != 0 {
		for i, v := range samples {
			out[i] = v / max
		}
	}

	p.SetOutput("OUTPUT_SAMPLES", runtime.Floats64(out))
	return nil
}
