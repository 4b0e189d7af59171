package nodes

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/soundgraph/agdl/internal/agdl/runtime"
	"github.com/soundgraph/agdl/internal/agdlerrors"
)

// PitchShifter performs the phase-shifting stage of a phase vocoder on an
// FFT frame, grounded on Vocoder/pitch_shifter.py. The original reads
// self.analysis_hopsize in initialize without ever assigning it anywhere
// in the class — an undefined attribute that only worked because some
// other caller happened to inject it onto the instance before first use.
// The specified contract makes ANALYSIS_HOPSIZE an explicit required
// config instead. PITCH_SHIFT_FACTOR is a real-valued multiplier in the
// original; since AGDL's NUMBER token is a decimal integer (§4.1), the
// config here is the multiplier scaled by 1000 (1500 means a 1.5x shift),
// the same unit trick Vibrato uses for its DELAY config.
type PitchShifter struct {
	runtime.Base

	fftLength        int
	pitchShiftFactor float64
	analysisHopsize  int

	omega     []float64
	prevPhase []float64
	newPhase  []float64
}

// NewPitchShifter returns a pitch shifter ready for Initialize.
func NewPitchShifter() *PitchShifter {
	p := &PitchShifter{Base: runtime.NewBase()}
	p.DeclareInput("INPUT_FREQUENCIES", false)
	return p
}

func (p *PitchShifter) Initialize(configs map[string]runtime.Payload) error {
	length, err := requireInt(p.Name(), configs, "FFT_LENGTH")
	if err != nil {
		return err
	}
	factorScaled, err := requireInt(p.Name(), configs, "PITCH_SHIFT_FACTOR")
	if err != nil {
		return err
	}
	hopsize, err := requireInt(p.Name(), configs, "ANALYSIS_HOPSIZE")
	if err != nil {
		return err
	}

	p.fftLength = length
	p.pitchShiftFactor = float64(factorScaled) / 1000.0
	p.analysisHopsize = hopsize

	p.omega = make([]float64, length)
	p.prevPhase = make([]float64, length)
	p.newPhase = make([]float64, length)
	for i := range p.omega {
		p.omega[i] = (2 * math.Pi * float64(i) * float64(p.analysisHopsize)) / float64(p.fftLength)
	}

	return nil
}

func (p *PitchShifter) Compute() error {
	freq := p.Input("INPUT_FREQUENCIES").Complex
	if len(freq) != p.fftLength {
		return agdlerrors.RuntimeCompute(p.Name(), 0, fmt.Errorf("expected %d frequency bins, got %d", p.fftLength, len(freq)))
	}

	out := make([]complex128, p.fftLength)
	for i := 0; i < p.fftLength; i++ {
		magnitude := cmplx.Abs(freq[i])
		phase := cmplx.Phase(freq[i])

		deltaPhase := p.omega[i] + phasewrap(phase-p.prevPhase[i]-p.omega[i])
		p.prevPhase[i] = phase
		p.newPhase[i] = phasewrap(p.newPhase[i] + deltaPhase*p.pitchShiftFactor)
		out[i] = cmplx.Rect(magnitude, p.newPhase[i])
	}

	p.SetOutput("OUTPUT_FREQUENCIES", runtime.ComplexBuf(out))
	return nil
}

// phasewrap wraps phase into (-pi, pi], matching the original's
// np.mod(phase + np.pi, -2.0 * np.pi) + np.pi. Go's math.Mod takes the
// sign of its dividend rather than Python's divisor-signed mod, so the
// Python semantics are reproduced explicitly via pythonMod.
func phasewrap(phase float64) float64 {
	return pythonMod(phase+math.Pi, -2.0*math.Pi) + math.Pi
}

// pythonMod reproduces Python's % operator, whose result takes the sign of
// y rather than of x.
func pythonMod(x, y float64) float64 {
	m := math.Mod(x, y)
	if m != 0 && (m < 0) != (y < 0) {
		m += y
	}
	return m
}
