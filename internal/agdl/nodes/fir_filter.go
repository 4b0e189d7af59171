package nodes

import (
	"math"

	"github.com/soundgraph/agdl/internal/agdl/runtime"
	"github.com/soundgraph/agdl/internal/agdlerrors"
)

// FIRFilter applies a windowed-sinc FIR filter (lowpass, highpass, or
// bandpass) to a sample buffer, computing its own coefficients from the
// sampling rate on first compute. Grounded on Standard/fir_filter.py.
type FIRFilter struct {
	runtime.Base

	filterType   string
	filterLength int
	lowCutoff    int
	highCutoff   int

	coefficients []float64
	history      []float64
}

// NewFIRFilter returns a filter ready for Initialize.
func NewFIRFilter() *FIRFilter {
	f := &FIRFilter{Base: runtime.NewBase()}
	f.DeclareInput("SAMPLES", false)
	f.DeclareInput("SAMPLING_RATE", false)
	return f
}

func (f *FIRFilter) Initialize(configs map[string]runtime.Payload) error {
	filterType, err := requireString(f.Name(), configs, "FILTER_TYPE")
	if err != nil {
		return err
	}
	length, err := requireInt(f.Name(), configs, "FILTER_LENGTH")
	if err != nil {
		return err
	}
	if length <= 0 {
		return agdlerrors.Config(f.Name(), "FILTER_LENGTH must be positive, got %d", length)
	}

	f.filterType = filterType
	f.filterLength = length

	switch filterType {
	case "LOWPASS":
		cutoff, err := requireInt(f.Name(), configs, "LOW_CUTOFF")
		if err != nil {
			return err
		}
		f.lowCutoff = cutoff
	case "HIGHPASS":
		cutoff, err := requireInt(f.Name(), configs, "HIGH_CUTOFF")
		if err != nil {
			return err
		}
		f.highCutoff = cutoff
	case "BANDPASS":
		low, err := requireInt(f.Name(), configs, "LOW_CUTOFF")
		if err != nil {
			return err
		}
		high, err := requireInt(f.Name(), configs, "HIGH_CUTOFF")
		if err != nil {
			return err
		}
		f.lowCutoff, f.highCutoff = low, high
	default:
		return agdlerrors.Config(f.Name(), "unrecognized FILTER_TYPE %q", filterType)
	}

	return nil
}

func (f *FIRFilter) Compute() error {
	samples := f.Input("SAMPLES").Floats
	samplingRate := f.Input("SAMPLING_RATE").Int

	if f.coefficients == nil {
		f.computeCoefficients(samplingRate)
	}

	filtered := make([]float64, len(samples))
	for i, sample := range samples {
		f.history = append([]float64{sample}, f.history...)
		if len(f.history) > f.filterLength {
			f.history = f.history[:f.filterLength]
		}

		result := 0.0
		for j, h := range f.history {
			result += h * f.coefficients[j]
		}
		filtered[i] = result
	}

	f.SetOutput("FILTERED_SAMPLES", runtime.Floats64(filtered))
	return nil
}

func (f *FIRFilter) computeCoefficients(samplingRate int) {
	f.coefficients = make([]float64, f.filterLength)

	switch f.filterType {
	case "LOWPASS":
		alpha := 2 * math.Pi * float64(f.lowCutoff) / float64(samplingRate)
		for n := 0; n < f.filterLength; n++ {
			nn := float64(n) - (float64(f.filterLength-1) / 2.0)
			if nn == 0 {
				f.coefficients[n] = alpha / math.Pi
			} else {
				f.coefficients[n] = math.Sin(nn*alpha) / (nn * math.Pi)
			}
		}
	case "HIGHPASS":
		alpha := 2 * math.Pi * float64(f.highCutoff) / float64(samplingRate)
		for n := 0; n < f.filterLength; n++ {
			nn := float64(n) - (float64(f.filterLength-1) / 2.0)
			if nn == 0 {
				f.coefficients[n] = 1.0 - alpha/math.Pi
			} else {
				f.coefficients[n] = -1 * math.Sin(nn*alpha) / (nn * math.Pi)
			}
		}
	case "BANDPASS":
		alpha := 2 * math.Pi * float64(f.lowCutoff) / float64(samplingRate)
		beta := 2 * math.Pi * float64(f.highCutoff) / float64(samplingRate)
		for n := 0; n < f.filterLength; n++ {
			nn := float64(n) - (float64(f.filterLength-1) / 2.0)
			if nn == 0 {
				f.coefficients[n] = (beta - alpha) / math.Pi
			} else {
				f.coefficients[n] = (math.Sin(nn*beta) - math.Sin(nn*alpha)) / (nn * math.Pi)
			}
		}
	}
}

// ResetReadyInputs matches Standard/fir_filter.py's override: only SAMPLES
// resets each cycle (SAMPLING_RATE is expected to be driven once and left
// set, since the filter only needs it to seed its coefficients).
func (f *FIRFilter) ResetReadyInputs() {
	f.ResetInput("SAMPLES")
}
