package utils

// RollingAverage is the mean of the most recent samples added to it.
type RollingAverage struct {
	data  []float64
	pos   int
	count int
}

// NewRollingAverage returns an average over at most numSamples values.
func NewRollingAverage(numSamples int) *RollingAverage {
	if numSamples < 1 {
		numSamples = 1
	}
	return &RollingAverage{data: make([]float64, numSamples), pos: 0}
}

// NumSamples returns the window size.
func (ra *RollingAverage) NumSamples() int {
	return len(ra.data)
}

// Add records x, evicting the oldest sample once the window is full.
func (ra *RollingAverage) Add(x float64) {
	ra.data[ra.pos] = x
	ra.pos++
	if ra.pos >= len(ra.data) {
		ra.pos = 0
	}
	if ra.count < len(ra.data) {
		ra.count++
	}
}

// Average returns the mean of the samples in the window, or 0 before any were added.
func (ra *RollingAverage) Average() float64 {
	if ra.count == 0 {
		return 0
	}
	sum := 0.
	for _, d := range ra.data[:ra.count] {
		sum += d
	}
	return sum / float64(ra.count)
}
