package nodes

import (
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/soundgraph/agdl/internal/agdl/runtime"
	"github.com/soundgraph/agdl/internal/agdlerrors"
	"github.com/soundgraph/agdl/internal/diag"
)

// WavWriter writes the final merged buffer to a wav file. Grounded on
// Standard/wavwriter.py, with scipy.io.wavfile.write replaced by
// github.com/go-audio/wav.
type WavWriter struct {
	runtime.Base

	filename string
	debug    bool
}

// NewWavWriter returns a writer ready for Initialize.
func NewWavWriter() *WavWriter {
	w := &WavWriter{Base: runtime.NewBase()}
	w.DeclareInput("DATA", false)
	w.DeclareInput("SAMPLING_RATE", false)
	return w
}

func (w *WavWriter) Initialize(configs map[string]runtime.Payload) error {
	file, err := requireString(w.Name(), configs, "FILENAME")
	if err != nil {
		return err
	}
	w.filename = stripQuotes(file)
	w.debug = optionalBool(configs, "DEBUG", false)
	return nil
}

func (w *WavWriter) Compute() error {
	data := w.Input("DATA").Floats
	samplingRate := w.Input("SAMPLING_RATE").Int

	samples := make([]int, len(data))
	for i, v := range data {
		samples[i] = int(v)
	}

	f, err := os.Create(w.filename)
	if err != nil {
		return agdlerrors.RuntimeCompute(w.Name(), 0, err)
	}
	defer f.Close()

	encoder := wav.NewEncoder(f, samplingRate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format: &audio.Format{NumChannels: 1, SampleRate: samplingRate},
		Data:   samples,
	}
	if err := encoder.Write(buf); err != nil {
		return agdlerrors.RuntimeCompute(w.Name(), 0, err)
	}
	if err := encoder.Close(); err != nil {
		return agdlerrors.RuntimeCompute(w.Name(), 0, err)
	}

	if w.debug {
		log := diag.ModuleLogger(w.Name())
		log.Debug("completed write", "file", w.filename, "sampling_rate", samplingRate, "samples", len(samples))
	}

	return nil
}
