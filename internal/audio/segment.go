package audio

import "math"

// SampleRate is the working rate of the whole audio pipeline. Every clip is
// decoded to mono 16-bit PCM at this rate before any math happens.
const SampleRate = 44100

// Segment is a mono PCM buffer. All durations are in milliseconds, mirroring
// the frame-to-time conversion used by the assembler.
type Segment struct {
	samples []int16
}

func NewSegment(samples []int16) *Segment {
	return &Segment{samples: samples}
}

// Silence returns ms milliseconds of silence.
func Silence(ms int) *Segment {
	return &Segment{samples: make([]int16, samplesFor(ms))}
}

// DurationMS reports the segment length in whole milliseconds.
func (s *Segment) DurationMS() int {
	return len(s.samples) * 1000 / SampleRate
}

// Samples exposes the raw PCM for encoding. Callers must not mutate it.
func (s *Segment) Samples() []int16 { return s.samples }

// Append concatenates o onto s in place.
func (s *Segment) Append(o *Segment) {
	s.samples = append(s.samples, o.samples...)
}

// Clone returns an independent copy.
func (s *Segment) Clone() *Segment {
	out := make([]int16, len(s.samples))
	copy(out, s.samples)
	return &Segment{samples: out}
}

// Take returns the first ms milliseconds as a copy; the whole segment if it
// is shorter. Negative durations yield an empty segment.
func (s *Segment) Take(ms int) *Segment {
	if ms <= 0 {
		return &Segment{}
	}
	n := samplesFor(ms)
	if n > len(s.samples) {
		n = len(s.samples)
	}
	out := make([]int16, n)
	copy(out, s.samples)
	return &Segment{samples: out}
}

// Gain returns a copy with the given dB change applied.
func (s *Segment) Gain(db float64) *Segment {
	factor := math.Pow(10, db/20)
	out := make([]int16, len(s.samples))
	for i, v := range s.samples {
		out[i] = clamp16(float64(v) * factor)
	}
	return &Segment{samples: out}
}

// Repeat returns the segment concatenated with itself n times total.
func (s *Segment) Repeat(n int) *Segment {
	out := make([]int16, 0, len(s.samples)*n)
	for i := 0; i < n; i++ {
		out = append(out, s.samples...)
	}
	return &Segment{samples: out}
}

// Overlay mixes o onto s starting at time zero. The result keeps s's length;
// anything of o past that is dropped.
func (s *Segment) Overlay(o *Segment) *Segment {
	out := make([]int16, len(s.samples))
	copy(out, s.samples)
	n := len(o.samples)
	if n > len(out) {
		n = len(out)
	}
	for i := 0; i < n; i++ {
		out[i] = clamp16(float64(out[i]) + float64(o.samples[i]))
	}
	return &Segment{samples: out}
}

func samplesFor(ms int) int {
	return ms * SampleRate / 1000
}

func clamp16(v float64) int16 {
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}
