package telemetry

// Counts holds population counts at the end of a tick.
type Counts struct {
	Prey          int
	Predators     int
	DeadPrey      int
	DeadPredators int
}

// Alive returns the number of living birds.
func (c Counts) Alive() int {
	return c.Prey + c.Predators
}

// Extinct reports whether either species has died out.
// A species that never had members is not counted as extinct.
func (c Counts) Extinct() bool {
	return (c.Prey == 0 && c.DeadPrey > 0) || (c.Predators == 0 && c.DeadPredators > 0)
}

// Sample is one point of the population chart.
type Sample struct {
	Tick      int32 `csv:"tick"`
	Prey      int   `csv:"prey"`
	Predators int   `csv:"predators"`
}

// History is a fixed-size ring of population samples, oldest first.
type History struct {
	buf   []Sample
	start int
	n     int
}

// NewHistory creates a history holding at most size samples.
func NewHistory(size int) *History {
	if size < 1 {
		size = 1
	}
	return &History{buf: make([]Sample, size)}
}

// Push appends a sample, evicting the oldest when full.
func (h *History) Push(s Sample) {
	if h.n < len(h.buf) {
		h.buf[(h.start+h.n)%len(h.buf)] = s
		h.n++
		return
	}
	h.buf[h.start] = s
	h.start = (h.start + 1) % len(h.buf)
}

// Len returns the number of stored samples.
func (h *History) Len() int {
	return h.n
}

// Cap returns the maximum number of samples.
func (h *History) Cap() int {
	return len(h.buf)
}

// At returns the i-th sample, oldest first.
func (h *History) At(i int) Sample {
	return h.buf[(h.start+i)%len(h.buf)]
}

// Last returns the newest sample and false if the history is empty.
func (h *History) Last() (Sample, bool) {
	if h.n == 0 {
		return Sample{}, false
	}
	return h.At(h.n - 1), true
}

// Samples appends all samples to dst, oldest first.
func (h *History) Samples(dst []Sample) []Sample {
	for i := 0; i < h.n; i++ {
		dst = append(dst, h.At(i))
	}
	return dst
}

// Max returns the largest single-species count in the history, for scaling
// charts.
func (h *History) Max() int {
	m := 0
	for i := 0; i < h.n; i++ {
		s := h.At(i)
		m = max(m, s.Prey, s.Predators)
	}
	return m
}

// Reset drops all samples.
func (h *History) Reset() {
	h.start = 0
	h.n = 0
}
