package progress

import (
	"fmt"
	"io"
	"time"

	"golang.org/x/time/rate"

	"fetchlink/internal/transfer"
)

// LineReporter prints one FormatLine per accepted update. Updates arriving
// faster than the interval are dropped, never waited for. Finish always
// prints the last state seen.
type LineReporter struct {
	w       io.Writer
	limiter *rate.Limiter
	last    transfer.Progress
	seen    bool
	printed bool
}

// NewLine returns a LineReporter printing at most once per interval.
// A non-positive interval prints every update.
func NewLine(w io.Writer, interval time.Duration) *LineReporter {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &LineReporter{
		w:       w,
		limiter: rate.NewLimiter(limit, 1),
	}
}

func (r *LineReporter) Update(p transfer.Progress) {
	r.last = p
	r.seen = true
	if !r.limiter.Allow() {
		r.printed = false
		return
	}
	r.print()
}

func (r *LineReporter) Finish(error) {
	if r.seen && !r.printed {
		r.print()
	}
}

func (r *LineReporter) print() {
	fmt.Fprintln(r.w, FormatLine(r.last))
	r.printed = true
}
