// internal/stats/counter.go
//
// Jeevan – counter animation for the headline statistics.
//
// Context
//   Stat tiles such as “10,000+ Donors” count up from zero when they scroll
//   into view.  The page needs the frame sequence: the displayed text is
//   split into a numeric target (all of its digits) and a suffix (everything
//   that is neither a digit nor a comma), then the value climbs in Steps
//   equal increments, one frame every FrameInterval.  Each frame is floored,
//   grouped for the visitor's locale, and followed by the suffix.  The last
//   frame is always the exact target.
//
//------------------------------------------------------------------------------

package stats

import (
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// Steps is the number of increments from zero to the target.
	Steps = 100
	// FrameInterval is the delay between frames on the page.
	FrameInterval = 20 * time.Millisecond
	// MaxTarget is the largest integer a browser counts up to exactly.
	MaxTarget int64 = 1<<53 - 1
)

// Parse splits display text into its numeric target and suffix.  ok is
// false when the text holds no digits or the digits exceed MaxTarget.
func Parse(display string) (target int, suffix string, ok bool) {
	var digits, rest strings.Builder
	for _, r := range display {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case r == ',':
		default:
			rest.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, "", false
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil || int64(n) > MaxTarget {
		return 0, "", false
	}
	return n, rest.String(), true
}

// Frames returns the text of every animation frame for target.  p formats
// the number; a nil p uses English grouping.
func Frames(target int, suffix string, p *message.Printer) []string {
	if p == nil {
		p = message.NewPrinter(language.English)
	}
	goal := float64(target)
	inc := goal / Steps

	frames := make([]string, 0, Steps+1)
	for cur := inc; cur < goal; cur += inc {
		frames = append(frames, p.Sprintf("%d", int64(math.Floor(cur)))+suffix)
	}
	return append(frames, p.Sprintf("%d", target)+suffix)
}

// PrinterFor returns a number printer for a BCP 47 tag such as "en-IN".
// Unknown or empty tags fall back to English.
func PrinterFor(tag string) *message.Printer {
	t, err := language.Parse(tag)
	if err != nil || t == language.Und {
		t = language.English
	}
	return message.NewPrinter(t)
}
