package nodes

import (
	"os"

	"github.com/go-audio/wav"

	"github.com/soundgraph/agdl/internal/agdl/runtime"
	"github.com/soundgraph/agdl/internal/agdlerrors"
	"github.com/soundgraph/agdl/internal/diag"
)

// WavReader is the only root node most pipelines use: it loads a wav file
// and emits its sampling rate and sample buffer. Grounded on
// Standard/wavreader.py, with scipy.io.wavfile.read replaced by
// github.com/go-audio/wav.
type WavReader struct {
	runtime.Base

	filename string
	debug    bool
}

// NewWavReader returns a reader ready for Initialize.
func NewWavReader() *WavReader {
	return &WavReader{Base: runtime.NewBase()}
}

func (r *WavReader) Initialize(configs map[string]runtime.Payload) error {
	file, err := requireString(r.Name(), configs, "FILENAME")
	if err != nil {
		return err
	}
	r.filename = stripQuotes(file)
	r.debug = optionalBool(configs, "DEBUG", false)
	return nil
}

func (r *WavReader) Compute() error {
	f, err := os.Open(r.filename)
	if err != nil {
		return agdlerrors.RuntimeCompute(r.Name(), 0, err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return agdlerrors.RuntimeCompute(r.Name(), 0, err)
	}

	samples := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float64(v)
	}

	if r.debug {
		log := diag.ModuleLogger(r.Name())
		log.Debug("completed read", "file", r.filename)
		log.Debug("wav format", "sampling_rate", buf.Format.SampleRate, "samples", len(samples), "mono", buf.Format.NumChannels == 1)
	}

	r.SetOutput("SAMPLING_RATE", runtime.Int64(buf.Format.SampleRate))
	r.SetOutput("DATA", runtime.Floats64(samples))
	return nil
}
