package nodes

import "github.com/soundgraph/agdl/internal/agdl/runtime"

// AudioOverlapMerger concatenates input slices with overlap-add,
// grounded on Standard/audio_overlap_merger.py. Per SPEC_FULL.md's
// correction, "is this the first invocation" is tracked with an explicit
// flag rather than the original's ambiguous `self.data == None` check
// against a buffer that may itself be a populated array.
type AudioOverlapMerger struct {
	runtime.Base

	offset int

	data        []float64
	pos         int
	initialized bool
}

// NewAudioOverlapMerger returns an overlap-merger ready for Initialize.
func NewAudioOverlapMerger() *AudioOverlapMerger {
	m := &AudioOverlapMerger{Base: runtime.NewBase()}
	m.DeclareInput("INPUT_DATA", false)
	m.DeclareInput("FINAL_INPUT", false)
	return m
}

func (m *AudioOverlapMerger) Initialize(configs map[string]runtime.Payload) error {
	offset, err := requireInt(m.Name(), configs, "OFFSET")
	if err != nil {
		return err
	}
	m.offset = offset
	return nil
}

func (m *AudioOverlapMerger) Compute() error {
	input := m.Input("INPUT_DATA").Floats
	final := m.Input("FINAL_INPUT").Bool

	if !m.initialized {
		m.data = append([]float64(nil), input...)
		m.initialized = true
	} else {
		overlap := len(m.data) - m.pos
		if overlap > len(input) {
			overlap = len(input)
		}
		for i := 0; i < overlap; i++ {
			m.data[m.pos+i] += input[i]
		}
		if overlap < len(input) {
			m.data = append(m.data, input[overlap:]...)
		}
	}

	m.pos += m.offset
	m.SetOutput("INPUT_CONSUMED", runtime.BoolVal(true))
	if final {
		m.SetOutput("OUTPUT_DATA", runtime.Floats64(m.data))
		m.SetOutput("INPUT_CONSUMED", runtime.Suppressed)
	}
	return nil
}
