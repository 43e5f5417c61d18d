package progress

import (
	"io"
	"time"

	"github.com/schollz/progressbar/v3"

	"fetchlink/internal/transfer"
)

// BarReporter draws a terminal progress bar. The bar is created on the first
// update, once the expected total is known; an unknown total renders a
// spinner with a byte counter.
type BarReporter struct {
	w           io.Writer
	description string
	bar         *progressbar.ProgressBar
}

// NewBar returns a BarReporter drawing on w.
//
// Parameters:
//   - w: Destination of the bar, normally os.Stderr
//   - description: Label printed before the bar
//
// Example:
//
//	r := progress.NewBar(os.Stderr, "downloading")
//	r.Update(transfer.Progress{Downloaded: 512, Total: 1024})
//	r.Finish(nil)
func NewBar(w io.Writer, description string) *BarReporter {
	return &BarReporter{w: w, description: description}
}

// Update moves the bar to p.Downloaded, creating it on first use.
func (r *BarReporter) Update(p transfer.Progress) {
	if r.bar == nil {
		total := int64(-1)
		if p.Known() {
			total = p.Total
		}
		r.bar = r.newBar(total)
	}
	_ = r.bar.Set64(p.Downloaded)
}

// Finish completes the bar on success. On failure the bar stays at the last
// received position.
func (r *BarReporter) Finish(err error) {
	if r.bar == nil {
		return
	}
	if err != nil {
		_ = r.bar.Exit()
		return
	}
	_ = r.bar.Finish()
}

func (r *BarReporter) newBar(total int64) *progressbar.ProgressBar {
	w := r.w
	return progressbar.NewOptions64(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(r.description),
		progressbar.OptionShowBytes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionOnCompletion(func() {
			_, _ = io.WriteString(w, "\n")
		}),
	)
}
