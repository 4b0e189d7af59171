package nodes

import (
	"math"

	"github.com/soundgraph/agdl/internal/agdl/runtime"
	"github.com/soundgraph/agdl/internal/agdlerrors"
)

// Vibrato applies a delay-line vibrato effect using linear interpolation
// over a modulated delay. Grounded on Synthesis/vibrato.py, whose DELAY
// config was a fractional number of seconds (e.g. 0.010); since AGDL's
// NUMBER token is a decimal integer (§4.1), DELAY here is expressed in
// whole milliseconds and converted to seconds during Initialize.
type Vibrato struct {
	runtime.Base

	delay   float64
	modFreq float64
}

// NewVibrato returns a vibrato node ready for Initialize.
func NewVibrato() *Vibrato {
	v := &Vibrato{Base: runtime.NewBase()}
	v.DeclareInput("SAMPLES", false)
	v.DeclareInput("SAMPLING_RATE", false)
	return v
}

func (v *Vibrato) Initialize(configs map[string]runtime.Payload) error {
	delayMillis, err := requireInt(v.Name(), configs, "DELAY")
	if err != nil {
		return err
	}
	modFreq, err := requireInt(v.Name(), configs, "MOD_FREQ")
	if err != nil {
		return err
	}
	v.delay = float64(delayMillis) / 1000.0
	v.modFreq = float64(modFreq)
	return nil
}

func (v *Vibrato) Compute() error {
	samples := v.Input("SAMPLES").Floats
	samplingRate := float64(v.Input("SAMPLING_RATE").Int)

	delayInSamples := v.delay * samplingRate
	modFreqInSamples := v.modFreq / samplingRate

	lineLength := int(2 + delayInSamples + delayInSamples*2)
	delayLine := make([]float64, lineLength)
	out := make([]float64, len(samples))

	for n := 0; n < len(samples)-1; n++ {
		mod := math.Sin(2 * math.Pi * float64(n) * modFreqInSamples)
		alpha := 1 + delayInSamples + delayInSamples*mod
		i := int(math.Floor(alpha))
		factor := alpha - float64(i)

		next := make([]float64, lineLength)
		next[0] = samples[n]
		copy(next[1:], delayLine[:lineLength-1])
		delayLine = next

		if i+1 < lineLength {
			out[n] = delayLine[i+1]*factor + delayLine[i]*(1-factor)
		}
	}

	v.SetOutput("VIBRATO_SAMPLES", runtime.Floats64(out))
	return nil
}

// ResetReadyInputs matches the original's override: only SAMPLES resets
// each cycle.
func (v *Vibrato) ResetReadyInputs() {
	v.ResetInput("SAMPLES")
}
