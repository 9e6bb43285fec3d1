// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// RawResearchResult is the research endpoint's response. Every field is
// optional: the backend omits whole sections when a platform fails or is
// disabled, so decoding never rejects a structurally incomplete body.
type RawResearchResult struct {
	// RankedTopics is the cross-platform ranked topic list. Preferred over
	// AISuggestions when present.
	RankedTopics []RawTopic `json:"ranked_topics,omitempty"`

	// AISuggestions holds per-run AI topic suggestions; the fallback topic
	// source when RankedTopics is absent.
	AISuggestions *AISuggestions `json:"ai_topic_suggestions,omitempty"`

	Twitter *PlatformResult `json:"twitter_results,omitempty"`
	TikTok  *PlatformResult `json:"tiktok_results,omitempty"`
	Threads *PlatformResult `json:"threads_results,omitempty"`
	Reddit  *PlatformResult `json:"reddit_results,omitempty"`

	// PlatformsSucceeded names the platforms that returned data.
	PlatformsSucceeded []string `json:"platforms_succeeded,omitempty"`

	// PDFReport is a server-side path to the generated report, when the
	// backend produced one.
	PDFReport string `json:"pdf_report,omitempty"`

	Timestamp string `json:"timestamp,omitempty"`
}

// AISuggestions wraps the AI-generated topic list.
type AISuggestions struct {
	Topics []RawTopic `json:"topics,omitempty"`
}

// RawTopic is one AI-suggested topic as the backend emits it. Title/Topic and
// Description/Reasoning are alternate spellings across backend versions;
// RelevanceScore/Score likewise. Numeric fields are pointers so that an
// absent value is distinguishable from zero.
type RawTopic struct {
	Title          string   `json:"title,omitempty"`
	Topic          string   `json:"topic,omitempty"`
	Description    string   `json:"description,omitempty"`
	Reasoning      string   `json:"reasoning,omitempty"`
	RelevanceScore *float64 `json:"relevance_score,omitempty"`
	Score          *float64 `json:"score,omitempty"`
}

// PlatformResult holds one platform's slice of the research response. Each
// platform has a primary candidate-post field (sample_posts) and a
// platform-specific fallback populated by older backend versions.
type PlatformResult struct {
	SamplePosts    []SourcePost `json:"sample_posts,omitempty"`
	TrendingTopics []SourcePost `json:"trending_topics,omitempty"`
	SampleCaptions []SourcePost `json:"sample_captions,omitempty"`
	SampleTitles   []SourcePost `json:"sample_titles,omitempty"`
}

// ResearchRequest is the body for POST /api/research.
type ResearchRequest struct {
	Keywords    []string `json:"keywords"`
	Niche       string   `json:"niche"`
	Description string   `json:"description"`
	DaysBack    int      `json:"days_back"`
}
