package nodes

import (
	"github.com/soundgraph/agdl/internal/agdl/runtime"
	"github.com/soundgraph/agdl/internal/agdlerrors"
)

// FFTNode computes the discrete Fourier transform of a real sample buffer.
// Grounded on Standard/fft.py. Per SPEC_FULL.md's correction, zero-padding
// to FFT_LENGTH actually takes effect (the original discards np.pad's
// return value, silently no-oping the pad).
type FFTNode struct {
	runtime.Base

	fftLength int
	debug     bool
}

// NewFFTNode returns an FFT node ready for Initialize.
func NewFFTNode() *FFTNode {
	n := &FFTNode{Base: runtime.NewBase()}
	n.DeclareInput("SAMPLES", false)
	return n
}

func (n *FFTNode) Initialize(configs map[string]runtime.Payload) error {
	length, err := requireInt(n.Name(), configs, "FFT_LENGTH")
	if err != nil {
		return err
	}
	n.fftLength = length
	n.debug = optionalBool(configs, "DEBUG", false)
	return nil
}

func (n *FFTNode) Compute() error {
	raw := n.Input("SAMPLES").Floats
	// Standard/fft.py asserts this unconditionally via Python's assert
	// statement; Go has no equivalent, so the check is restored as a
	// DEBUG-gated RuntimeComputeError instead of an unconditional panic.
	if n.debug && len(raw) > n.fftLength {
		return agdlerrors.RuntimeCompute(n.Name(), 0, errSampleLongerThanTransformLength(len(raw), n.fftLength))
	}

	samples := floatsToComplex(raw)
	padded := padComplex(samples, n.fftLength)
	n.SetOutput("FREQUENCIES", runtime.ComplexBuf(radix2FFT(padded, false)))
	return nil
}

// IFFTNode computes the inverse discrete Fourier transform, grounded on
// Standard/ifft.py.
type IFFTNode struct {
	runtime.Base

	ifftLength int
	debug      bool
}

// NewIFFTNode returns an IFFT node ready for Initialize.
func NewIFFTNode() *IFFTNode {
	n := &IFFTNode{Base: runtime.NewBase()}
	n.DeclareInput("FREQUENCIES", false)
	return n
}

func (n *IFFTNode) Initialize(configs map[string]runtime.Payload) error {
	length, err := requireInt(n.Name(), configs, "IFFT_LENGTH")
	if err != nil {
		return err
	}
	n.ifftLength = length
	n.debug = optionalBool(configs, "DEBUG", false)
	return nil
}

func (n *IFFTNode) Compute() error {
	frequencies := n.Input("FREQUENCIES").Complex
	if n.debug && len(frequencies) > n.ifftLength {
		return agdlerrors.RuntimeCompute(n.Name(), 0, errSampleLongerThanTransformLength(len(frequencies), n.ifftLength))
	}

	padded := padComplex(frequencies, n.ifftLength)

	result := radix2FFT(padded, true)
	samples := make([]float64, len(result))
	for i, v := range result {
		samples[i] = real(v) / float64(len(result))
	}
	n.SetOutput("SAMPLES", runtime.Floats64(samples))
	return nil
}
