// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "encoding/json"

// EpisodeRequest is the body for POST /api/episode.
type EpisodeRequest struct {
	Topic           string   `json:"topic"`
	DurationMinutes int      `json:"duration_minutes"`
	HostStyle       string   `json:"host_style"`
	TargetAudience  string   `json:"target_audience"`
	TalkingPoints   []string `json:"talking_points,omitempty"`
}

// EpisodeSegment is one section of a generated episode outline.
type EpisodeSegment struct {
	Name            string   `json:"name,omitempty"`
	DurationMinutes int      `json:"duration_minutes,omitempty"`
	TalkingPoints   []string `json:"talking_points,omitempty"`
}

// EpisodeOutline is the structured outline the backend generates for a topic.
type EpisodeOutline struct {
	Title         string           `json:"title,omitempty"`
	TotalDuration string           `json:"total_duration,omitempty"`
	Segments      []EpisodeSegment `json:"segments,omitempty"`
}

// EpisodeContent is the episode endpoint's response. The outline fields are
// typed for display; Script is kept raw because its shape varies by backend
// version and the client only writes it to disk verbatim.
type EpisodeContent struct {
	Topic         string          `json:"topic,omitempty"`
	Outline       EpisodeOutline  `json:"outline,omitempty"`
	TalkingPoints []string        `json:"talking_points,omitempty"`
	Script        json.RawMessage `json:"script,omitempty"`
	Intro         string          `json:"intro,omitempty"`
	Outro         string          `json:"outro,omitempty"`
	PDFReport     string          `json:"pdf_report,omitempty"`
}
