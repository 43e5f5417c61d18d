// Package progress renders transfer progress on the user-facing stream.
// Reporters never block the transfer: rendering is throttled and dropped
// updates are simply skipped.
package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/mattn/go-isatty"

	"fetchlink/config"
	"fetchlink/internal/transfer"
)

// Reporter receives progress updates for one transfer.
type Reporter interface {
	// Update is called after each received chunk.
	Update(p transfer.Progress)
	// Finish is called once when the transfer ends. err is nil on success;
	// otherwise the reporter must leave the last real state on screen.
	Finish(err error)
}

// Nop discards all updates.
type Nop struct{}

func (Nop) Update(transfer.Progress) {}
func (Nop) Finish(error)             {}

// New returns the Reporter for mode writing to w. In auto mode a terminal
// gets a bar and anything else gets throttled lines.
func New(mode string, w io.Writer, interval time.Duration) (Reporter, error) {
	switch mode {
	case config.ProgressNone:
		return Nop{}, nil
	case config.ProgressBar:
		return NewBar(w, "downloading"), nil
	case config.ProgressLine:
		return NewLine(w, interval), nil
	case config.ProgressAuto, "":
		if IsTerminal(w) {
			return NewBar(w, "downloading"), nil
		}
		return NewLine(w, interval), nil
	default:
		return nil, fmt.Errorf("unknown progress mode %q", mode)
	}
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// FormatLine renders p as a single human-readable line. Raw byte counts are
// used when the expected total is unknown.
func FormatLine(p transfer.Progress) string {
	var line string
	if p.Known() {
		line = fmt.Sprintf("downloaded %s / %s (%.1f%%)",
			FormatBytes(p.Downloaded), FormatBytes(p.Total), p.Percent())
	} else {
		line = fmt.Sprintf("downloaded %d bytes", p.Downloaded)
	}

	if p.UploadTotal > 0 {
		line += fmt.Sprintf(", uploaded %s / %s", FormatBytes(p.Uploaded), FormatBytes(p.UploadTotal))
	}
	return line
}

// FormatBytes renders n with binary units.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit && exp < 5; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
