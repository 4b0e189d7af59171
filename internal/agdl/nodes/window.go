package nodes

import "math"

// hanningWindow returns the Hanning window coefficient for sample index i
// of an n-sample window, grounded on the inline computation duplicated in
// both Vocoder/vocoder_analyzer.py and Vocoder/vocoder_resynthesizer.py
// (-0.5*cos(2*pi*i/n) + 0.5). Both callers use the same formula, so it is
// pulled out once here instead of rewritten at each call site.
func hanningWindow(i, n int) float64 {
	return -0.5*math.Cos(2.0*math.Pi*float64(i)/float64(n)) + 0.5
}

// fftShift swaps the first and second halves of buf, mirroring
// np.concatenate([x[n/2:], x[0:n/2]]) in both the analyzer and the
// resynthesizer. n must be even.
func fftShift(buf []float64) []float64 {
	n := len(buf)
	out := make([]float64, n)
	half := n / 2
	copy(out[:n-half], buf[half:])
	copy(out[n-half:], buf[:half])
	return out
}
