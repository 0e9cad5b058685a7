package exports

import "time"

// Timestamp is a labeled point in time within an audio track. It only ever
// lives in the editing session; nothing here is persisted.
type Timestamp struct {
	ID        string     `json:"id"`
	Time      float64    `json:"time"`
	Label     string     `json:"label"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

type Format string

const (
	FormatTxt     Format = "txt"
	FormatCsv     Format = "csv"
	FormatJson    Format = "json"
	FormatSrt     Format = "srt"
	FormatYouTube Format = "youtube"
)

// IsValid reports whether f is one of the supported export formats.
func (f Format) IsValid() bool {
	switch f {
	case FormatTxt, FormatCsv, FormatJson, FormatSrt, FormatYouTube:
		return true
	}
	return false
}

// Extension returns the download file extension. YouTube chapter lists are
// plain text meant for pasting into a video description.
func (f Format) Extension() string {
	switch f {
	case FormatCsv:
		return "csv"
	case FormatJson:
		return "json"
	case FormatSrt:
		return "srt"
	default:
		return "txt"
	}
}

func (f Format) MIMEType() string {
	switch f {
	case FormatJson:
		return "application/json"
	case FormatCsv:
		return "text/csv"
	default:
		return "text/plain"
	}
}
