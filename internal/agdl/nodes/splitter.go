package nodes

import (
	"github.com/soundgraph/agdl/internal/agdl/runtime"
	"github.com/soundgraph/agdl/internal/diag"
)

// AudioSplitter slices a full sample buffer into successive windows,
// gated by a READY pull signal from a downstream merger. Grounded on
// Standard/audio_splitter.py.
type AudioSplitter struct {
	runtime.Base

	splitLength int
	splitOffset int
	debug       bool

	dataPosition int
}

// NewAudioSplitter returns a splitter ready for Initialize.
func NewAudioSplitter() *AudioSplitter {
	s := &AudioSplitter{Base: runtime.NewBase()}
	s.DeclareInput("INPUT_DATA", false)
	// READY starts pre-satisfied so the splitter can fire on cycle 1
	// before any merger exists downstream to drive it.
	s.DeclareInput("READY", true)
	return s
}

func (s *AudioSplitter) Initialize(configs map[string]runtime.Payload) error {
	length, err := requireInt(s.Name(), configs, "SPLIT_LENGTH")
	if err != nil {
		return err
	}
	s.splitLength = length
	s.splitOffset = optionalInt(configs, "SPLIT_OFFSET", length)
	s.debug = optionalBool(configs, "DEBUG", false)
	return nil
}

func (s *AudioSplitter) Compute() error {
	data := s.Input("INPUT_DATA").Floats
	n := len(data)

	end := s.dataPosition + s.splitLength
	if end > n {
		end = n
	}

	out := make([]float64, end-s.dataPosition)
	copy(out, data[s.dataPosition:end])

	if s.debug {
		diag.ModuleLogger(s.Name()).Debug("splicing", "from", s.dataPosition, "to", end)
	}

	s.dataPosition += s.splitOffset

	// Matches the original exactly: FINISHED fires when the *next* slice
	// would reach or run past the end of the buffer, one cycle before the
	// current slice is actually the last.
	s.SetOutput("FINISHED", runtime.BoolVal(s.dataPosition+s.splitLength >= n))
	s.SetOutput("OUTPUT_DATA", runtime.Floats64(out))
	return nil
}

// ResetReadyInputs resets READY only, leaving INPUT_DATA at whatever it
// was last set to. Grounded on Standard/audio_splitter.py's actual
// override, which clears only the READY flag: the input buffer is handed
// to the splitter once (typically by a WavReader root) and read
// repeatedly by position, while READY must be re-armed by the merger's
// feedback edge on every cycle the splitter is to fire again. See
// DESIGN.md for why this departs from the reset target named in spec.md
// §4.8's prose: resetting INPUT_DATA instead (as that sentence literally
// reads) strands the splitter after its first slice in every
// configuration, since nothing ever resupplies INPUT_DATA once cleared.
func (s *AudioSplitter) ResetReadyInputs() {
	s.ResetInput("READY")
}
