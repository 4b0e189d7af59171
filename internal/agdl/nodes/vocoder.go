package nodes

import (
	"fmt"

	"github.com/soundgraph/agdl/internal/agdl/runtime"
	"github.com/soundgraph/agdl/internal/agdlerrors"
)

// VocoderAnalyzer applies the Hanning-window-then-FFT-shift preprocessing
// stage of a phase vocoder, grounded on Vocoder/vocoder_analyzer.py. Its
// output is expected to feed an FFT node.
type VocoderAnalyzer struct {
	runtime.Base

	fftLength int
}

// NewVocoderAnalyzer returns an analyzer ready for Initialize.
func NewVocoderAnalyzer() *VocoderAnalyzer {
	a := &VocoderAnalyzer{Base: runtime.NewBase()}
	a.DeclareInput("INPUT_SAMPLES", false)
	return a
}

func (a *VocoderAnalyzer) Initialize(configs map[string]runtime.Payload) error {
	length, err := requireInt(a.Name(), configs, "FFT_LENGTH")
	if err != nil {
		return err
	}
	if length%2 != 0 {
		return agdlerrors.Config(a.Name(), "FFT_LENGTH must be even, got %d", length)
	}
	a.fftLength = length
	return nil
}

func (a *VocoderAnalyzer) Compute() error {
	samples := a.Input("INPUT_SAMPLES").Floats
	if len(samples) != a.fftLength {
		return agdlerrors.RuntimeCompute(a.Name(), 0, fmt.Errorf("expected %d samples, got %d", a.fftLength, len(samples)))
	}

	windowed := make([]float64, len(samples))
	for i, v := range samples {
		windowed[i] = v * hanningWindow(i, a.fftLength)
	}

	a.SetOutput("OUTPUT_SAMPLES", runtime.Floats64(fftShift(windowed)))
	return nil
}

// VocoderResynthesizer undoes the FFT shift applied by VocoderAnalyzer and
// then multiplies by the same Hanning window again as a synthesis window
// (shift, then window), grounded on Vocoder/vocoder_resynthesizer.py.
type VocoderResynthesizer struct {
	runtime.Base

	fftLength int
}

// NewVocoderResynthesizer returns a resynthesizer ready for Initialize.
func NewVocoderResynthesizer() *VocoderResynthesizer {
	r := &VocoderResynthesizer{Base: runtime.NewBase()}
	r.DeclareInput("INPUT_SAMPLES", false)
	return r
}

func (r *VocoderResynthesizer) Initialize(configs map[string]runtime.Payload) error {
	length, err := requireInt(r.Name(), configs, "FFT_LENGTH")
	if err != nil {
		return err
	}
	if length%2 != 0 {
		return agdlerrors.Config(r.Name(), "FFT_LENGTH must be even, got %d", length)
	}
	r.fftLength = length
	return nil
}

func (r *VocoderResynthesizer) Compute() error {
	samples := r.Input("INPUT_SAMPLES").Floats
	if len(samples) != r.fftLength {
		return agdlerrors.RuntimeCompute(r.Name(), 0, fmt.Errorf("expected %d samples, got %d", r.fftLength, len(samples)))
	}

	shifted := fftShift(samples)
	out := make([]float64, len(shifted))
	for i, v := range shifted {
		out[i] = v * hanningWindow(i, r.fftLength)
	}

	r.SetOutput("OUTPUT_SAMPLES", runtime.Floats64(out))
	return nil
}

// VocoderLinearInterpolator resamples a vocoder grain from the analysis
// hop size to the synthesis hop size via linear interpolation, grounded on
// Vocoder/vocoder_linear_interpolator.py.
type VocoderLinearInterpolator struct {
	runtime.Base

	fftLength        int
	analysisHopsize  int
	synthesisHopsize int
}

// NewVocoderLinearInterpolator returns an interpolator ready for
// Initialize.
func NewVocoderLinearInterpolator() *VocoderLinearInterpolator {
	v := &VocoderLinearInterpolator{Base: runtime.NewBase()}
	v.DeclareInput("INPUT_SAMPLES", false)
	return v
}

func (v *VocoderLinearInterpolator) Initialize(configs map[string]runtime.Payload) error {
	length, err := requireInt(v.Name(), configs, "FFT_LENGTH")
	if err != nil {
		return err
	}
	analysis, err := requireInt(v.Name(), configs, "ANALYSIS_HOPSIZE")
	if err != nil {
		return err
	}
	synthesis, err := requireInt(v.Name(), configs, "SYNTHESIS_HOPSIZE")
	if err != nil {
		return err
	}
	if synthesis <= 0 {
		return agdlerrors.Config(v.Name(), "SYNTHESIS_HOPSIZE must be positive, got %d", synthesis)
	}
	v.fftLength = length
	v.analysisHopsize = analysis
	v.synthesisHopsize = synthesis
	return nil
}

func (v *VocoderLinearInterpolator) Compute() error {
	samples := v.Input("INPUT_SAMPLES").Floats
	n := len(samples)
	if n != v.fftLength {
		return agdlerrors.RuntimeCompute(v.Name(), 0, fmt.Errorf("expected %d samples, got %d", v.fftLength, n))
	}

	lx := n * v.analysisHopsize / v.synthesisHopsize

	// grain1 appends a trailing zero so the interpolator can always read
	// one sample past the last index it computes from.
	grain1 := make([]float64, n+1)
	copy(grain1, samples)

	out := make([]float64, lx)
	for i := 0; i < lx; i++ {
		x := float64(i) * float64(n) / float64(lx)
		ix := int(x)
		dx := x - float64(ix)
		out[i] = grain1[ix]*(1-dx) + grain1[ix+1]*dx
	}

	v.SetOutput("OUTPUT_SAMPLES", runtime.Floats64(out))
	return nil
}
