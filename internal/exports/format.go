// Package exports serializes timestamp lists into the download formats the
// product offers. The output is a compatibility contract: existing users feed
// these files into their own scripts, so shapes are byte-exact.
package exports

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// Render serializes timestamps in the given format. Entries are emitted in
// ascending time order regardless of input order. Unknown formats fall back
// to txt.
func Render(timestamps []Timestamp, format Format, fileName string, now time.Time) (string, error) {
	sorted := make([]Timestamp, len(timestamps))
	copy(sorted, timestamps)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time < sorted[j].Time
	})

	switch format {
	case FormatCsv:
		return renderCsv(sorted), nil
	case FormatJson:
		return renderJson(sorted, fileName, now)
	case FormatSrt:
		return renderSrt(sorted), nil
	case FormatYouTube:
		return renderYouTube(sorted), nil
	default:
		return renderTxt(sorted, fileName, now), nil
	}
}

func renderTxt(timestamps []Timestamp, fileName string, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Timestamps for: %s\n", fileName)
	fmt.Fprintf(&b, "Generated: %s\n", now.Format("2006-01-02 15:04:05"))
	b.WriteString(strings.Repeat("=", 50))
	b.WriteString("\n\n")

	for i, ts := range timestamps {
		fmt.Fprintf(&b, "%d. %s - %s\n", i+1, FormatTime(ts.Time), ts.Label)
	}

	return b.String()
}

func renderCsv(timestamps []Timestamp) string {
	var b strings.Builder
	b.WriteString("Index,Time,Time (seconds),Label\n")

	for i, ts := range timestamps {
		escapedLabel := `"` + strings.ReplaceAll(ts.Label, `"`, `""`) + `"`
		fmt.Fprintf(&b, "%d,%s,%.2f,%s\n", i+1, FormatTime(ts.Time), ts.Time, escapedLabel)
	}

	return b.String()
}

type jsonEntry struct {
	Index       int     `json:"index"`
	Time        string  `json:"time"`
	TimeSeconds float64 `json:"timeSeconds"`
	Label       string  `json:"label"`
}

type jsonDocument struct {
	FileName    string      `json:"fileName"`
	GeneratedAt string      `json:"generatedAt"`
	Timestamps  []jsonEntry `json:"timestamps"`
}

func renderJson(timestamps []Timestamp, fileName string, now time.Time) (string, error) {
	doc := jsonDocument{
		FileName:    fileName,
		GeneratedAt: now.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		Timestamps:  make([]jsonEntry, 0, len(timestamps)),
	}

	for i, ts := range timestamps {
		doc.Timestamps = append(doc.Timestamps, jsonEntry{
			Index:       i + 1,
			Time:        FormatTime(ts.Time),
			TimeSeconds: math.Round(ts.Time*100) / 100,
			Label:       ts.Label,
		})
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// srtCueSeconds is the fixed cue length. Cues are NOT clamped to the next
// timestamp, so entries closer than 3s apart produce overlapping cues; that
// matches what the product has always exported.
const srtCueSeconds = 3

func renderSrt(timestamps []Timestamp) string {
	var b strings.Builder

	for i, ts := range timestamps {
		fmt.Fprintf(&b, "%d\n", i+1)
		fmt.Fprintf(&b, "%s --> %s\n", FormatTimeWithMs(ts.Time), FormatTimeWithMs(ts.Time+srtCueSeconds))
		b.WriteString(ts.Label)
		b.WriteString("\n\n")
	}

	return b.String()
}

func renderYouTube(timestamps []Timestamp) string {
	var b strings.Builder
	b.WriteString("📌 Timestamps / Chapters:\n\n")

	for _, ts := range timestamps {
		fmt.Fprintf(&b, "%s %s\n", FormatTime(ts.Time), ts.Label)
	}

	return b.String()
}

// FormatTime renders M:SS. Minutes are unbounded and unpadded, seconds are
// zero-padded.
func FormatTime(seconds float64) string {
	total := int(math.Floor(seconds))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// FormatTimeWithMs renders HH:MM:SS,mmm for SRT cue boundaries.
func FormatTimeWithMs(seconds float64) string {
	total := int(math.Floor(seconds))
	ms := int(math.Floor((seconds - math.Floor(seconds)) * 1000))
	return fmt.Sprintf("%02d:%02d:%02d,%03d", total/3600, (total%3600)/60, total%60, ms)
}
