package models

import (
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// StreamStatus is the cached answer to "is a show live on the main mountpoint".
type StreamStatus struct {
	Running       bool      `json:"running"`
	ShowName      string    `json:"show_name"`
	LastCheckedAt time.Time `json:"last_checked_at"`
}

// IcecastStatus mirrors the parts of Icecast's status-json.xsl document we read.
// Source is either a single object or an array of objects depending on how
// many mountpoints are active.
type IcecastStatus struct {
	Icestats *struct {
		Source json.RawMessage `json:"source"`
	} `json:"icestats"`
}

type IcecastSource struct {
	ListenURL   string          `json:"listenurl"`
	ServerName  *string         `json:"server_name"`
	StreamStart json.RawMessage `json:"stream_start"`
}

// Mountpoint is the final path segment of the listen URL.
func (s IcecastSource) Mountpoint() string {
	return s.ListenURL[strings.LastIndex(s.ListenURL, "/")+1:]
}

// Live reports whether the source carries a stream start marker.
func (s IcecastSource) Live() bool {
	return len(s.StreamStart) > 0 && string(s.StreamStart) != "null"
}
