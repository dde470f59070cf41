package progress

import (
	"io"
	"math"

	"github.com/schollz/progressbar/v3"
)

// Bar renders tracker updates as a terminal progress bar.
type Bar struct {
	bar *progressbar.ProgressBar
}

// NewBar creates a 0–100 bar writing to w.
func NewBar(w io.Writer, description string) *Bar {
	return &Bar{bar: progressbar.NewOptions(maxValue,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionOnCompletion(func() { _, _ = io.WriteString(w, "\n") }),
	)}
}

// Observe is an Observer that mirrors the tracker value onto the bar.
func (b *Bar) Observe(value float64, _ bool) {
	_ = b.bar.Set(int(math.Floor(value)))
}
