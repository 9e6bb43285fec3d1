// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the podcast-assistant client.
// See docs/ARCHITECTURE.md § Data Structures.
package types

import (
	"encoding/json"
	"strings"
)

// Platform identifies one of the social platforms the research backend covers.
type Platform string

const (
	PlatformTwitter Platform = "twitter"
	PlatformTikTok  Platform = "tiktok"
	PlatformThreads Platform = "threads"
	PlatformReddit  Platform = "reddit"
)

// Platforms lists every platform in display order.
var Platforms = []Platform{PlatformTwitter, PlatformTikTok, PlatformThreads, PlatformReddit}

// SourcePost is a single social-media item cited as evidence for a topic.
// The backend serializes posts either as a bare string or as an object with
// optional text, title, author, and url fields; UnmarshalJSON accepts both.
type SourcePost struct {
	Text   string `json:"text,omitempty" yaml:"text,omitempty"`
	Title  string `json:"title,omitempty" yaml:"title,omitempty"`
	Author string `json:"author,omitempty" yaml:"author,omitempty"`
	URL    string `json:"url,omitempty" yaml:"url,omitempty"`
}

// sourcePostAlias avoids recursing into UnmarshalJSON when decoding the
// object form.
type sourcePostAlias SourcePost

// UnmarshalJSON decodes a post from either a JSON string or a JSON object.
// Anything else (null, a number, an array) yields an empty post rather than
// an error; the extractor treats malformed entries as absent.
func (p *SourcePost) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = SourcePost{Text: s}
		return nil
	}
	if strings.HasPrefix(trimmed, "{") {
		var a sourcePostAlias
		if err := json.Unmarshal(data, &a); err != nil {
			return err
		}
		*p = SourcePost(a)
		return nil
	}
	*p = SourcePost{}
	return nil
}

// Display returns the text to show for the post: text if present, else title.
func (p SourcePost) Display() string {
	if p.Text != "" {
		return p.Text
	}
	return p.Title
}

// Topic is a display-ready research finding derived from the backend's AI
// suggestions plus illustrative source posts.
type Topic struct {
	// ID is the topic's position in the extraction output, 0-based. It is
	// stable only within a single extraction.
	ID int `json:"id" yaml:"id"`

	// Title is the display title. Never empty; synthesized when the backend
	// supplies none.
	Title string `json:"title" yaml:"title"`

	// Description is the supporting text. May be empty.
	Description string `json:"description" yaml:"description"`

	// RelevanceScore is normalized to [0, 1] regardless of the scale the
	// backend used.
	RelevanceScore float64 `json:"relevance_score" yaml:"relevance_score"`

	// Sources maps each platform to at most two illustrative posts.
	Sources map[Platform][]SourcePost `json:"sources" yaml:"sources"`
}
