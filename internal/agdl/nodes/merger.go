package nodes

import "github.com/soundgraph/agdl/internal/agdl/runtime"

// AudioMerger concatenates successive input slices into a single buffer,
// emitting it only on the final input. Grounded on Standard/audio_merger.py.
// Per SPEC_FULL.md's correction, the final-input check is ordinary boolean
// truth rather than the original's identity comparison against True.
type AudioMerger struct {
	runtime.Base

	data        []float64
	initialized bool
}

// NewAudioMerger returns a merger ready for Initialize.
func NewAudioMerger() *AudioMerger {
	m := &AudioMerger{Base: runtime.NewBase()}
	m.DeclareInput("INPUT_DATA", false)
	m.DeclareInput("FINAL_INPUT", false)
	return m
}

func (m *AudioMerger) Compute() error {
	input := m.Input("INPUT_DATA").Floats
	final := m.Input("FINAL_INPUT").Bool

	if !m.initialized {
		m.data = append([]float64(nil), input...)
		m.initialized = true
	} else {
		m.data = append(m.data, input...)
	}

	m.SetOutput("INPUT_CONSUMED", runtime.BoolVal(true))
	if final {
		m.SetOutput("OUTPUT_DATA", runtime.Floats64(m.data))
		// The null sentinel, not a false boolean: this is what stops the
		// splitter's READY feedback edge from re-arming once the pipeline
		// has finished, letting the run quiesce.
		m.SetOutput("INPUT_CONSUMED", runtime.Suppressed)
	}
	return nil
}
