package model

import (
	"fmt"
	"math"
	"strings"
)

// ResolvedItem is the concrete media metadata the engine resolves for one
// queue URL. All metadata fields are optional; zero values mean the engine did
// not report them and they are omitted from the label, never rendered as zero.
type ResolvedItem struct {
	SourceURL  string
	Title      string
	Artist     string
	BitDepth   int
	SampleRate float64 // in Hz, values below 1000 are taken as kHz already
}

// Label renders the queue display label for a resolved item:
// "Title – Artist (24bit - 44.1kHz)", dropping every part that is missing.
func (ri ResolvedItem) Label() string {
	var b strings.Builder

	title := ri.Title
	if title == "" {
		title = "Unknown"
	}
	b.WriteString(title)

	if ri.Artist != "" {
		b.WriteString(" – ")
		b.WriteString(ri.Artist)
	}

	var tail []string
	if ri.BitDepth > 0 {
		tail = append(tail, fmt.Sprintf("%dbit", ri.BitDepth))
	}
	if sr := formatSampleRate(ri.SampleRate); sr != "" {
		tail = append(tail, sr)
	}
	if len(tail) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(tail, " - "))
		b.WriteString(")")
	}

	return b.String()
}

// formatSampleRate normalizes a sample rate to kHz with one decimal place,
// collapsing to a whole number when the decimal is zero (48000 -> "48kHz",
// 44100 -> "44.1kHz"). Non-positive rates yield an empty string.
func formatSampleRate(sr float64) string {
	if sr <= 0 {
		return ""
	}
	khz := sr
	if sr >= 1000 {
		khz = sr / 1000.0
	}
	if math.Abs(khz-math.Round(khz)) > 1e-6 {
		return fmt.Sprintf("%.1fkHz", khz)
	}
	return fmt.Sprintf("%dkHz", int(math.Round(khz)))
}
