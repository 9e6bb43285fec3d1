// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package topics transforms a raw research response into display-ready topic
// records. The transformation is total: any structurally incomplete input
// degrades to defaults instead of failing.
// See docs/ARCHITECTURE.md § Topic Extraction.
package topics

import (
	"fmt"

	"github.com/esosa/podcast-assistant/pkg/types"
)

const (
	// maxTopics bounds the extracted feed regardless of how many
	// suggestions the backend returns.
	maxTopics = 8

	// defaultRelevance is the raw score assumed when a topic carries none.
	// It is on the backend's usual 1-10 scale, so it normalizes to 0.8.
	defaultRelevance = 8

	// twitterPostsPerTopic is the window width for the primary platform.
	// Twitter posts are partitioned into disjoint pairs; the other
	// platforms use overlapping single-post windows.
	twitterPostsPerTopic = 2
)

// Extract converts one research response into an ordered topic feed. The
// result has at most maxTopics entries, each with a relevance score in [0, 1]
// and per-platform source posts. Extract never fails; an empty or partial
// response yields a shorter (possibly empty) feed.
func Extract(raw types.RawResearchResult) []types.Topic {
	candidates := candidateTopics(raw)
	if len(candidates) > maxTopics {
		candidates = candidates[:maxTopics]
	}

	posts := platformPosts(raw)

	out := make([]types.Topic, 0, len(candidates))
	for i, c := range candidates {
		t := types.Topic{
			ID:             i,
			Title:          resolveTitle(c, i),
			Description:    resolveDescription(c),
			RelevanceScore: NormalizeRelevance(resolveRelevance(c)),
			Sources:        make(map[types.Platform][]types.SourcePost, len(types.Platforms)),
		}
		for _, platform := range types.Platforms {
			if platform == types.PlatformTwitter {
				t.Sources[platform] = window(posts[platform], i*twitterPostsPerTopic, twitterPostsPerTopic)
			} else {
				t.Sources[platform] = window(posts[platform], i, 1)
			}
		}
		out = append(out, t)
	}
	return out
}

// candidateTopics selects the AI-topic sequence. Priority order:
// ranked_topics, then ai_topic_suggestions.topics, then empty.
func candidateTopics(raw types.RawResearchResult) []types.RawTopic {
	if len(raw.RankedTopics) > 0 {
		return raw.RankedTopics
	}
	if raw.AISuggestions != nil {
		return raw.AISuggestions.Topics
	}
	return nil
}

// platformPosts selects each platform's candidate-post sequence. Every
// platform prefers sample_posts; the fallback is platform-specific:
// trending_topics for twitter and threads, sample_captions for tiktok,
// sample_titles for reddit.
func platformPosts(raw types.RawResearchResult) map[types.Platform][]types.SourcePost {
	pick := func(r *types.PlatformResult, fallback func(*types.PlatformResult) []types.SourcePost) []types.SourcePost {
		if r == nil {
			return nil
		}
		if len(r.SamplePosts) > 0 {
			return r.SamplePosts
		}
		return fallback(r)
	}

	return map[types.Platform][]types.SourcePost{
		types.PlatformTwitter: pick(raw.Twitter, func(r *types.PlatformResult) []types.SourcePost { return r.TrendingTopics }),
		types.PlatformTikTok:  pick(raw.TikTok, func(r *types.PlatformResult) []types.SourcePost { return r.SampleCaptions }),
		types.PlatformThreads: pick(raw.Threads, func(r *types.PlatformResult) []types.SourcePost { return r.TrendingTopics }),
		types.PlatformReddit:  pick(raw.Reddit, func(r *types.PlatformResult) []types.SourcePost { return r.SampleTitles }),
	}
}

// resolveTitle returns the first of title, topic, or a synthesized
// "Topic N" label where N is the 1-based position.
func resolveTitle(t types.RawTopic, i int) string {
	if t.Title != "" {
		return t.Title
	}
	if t.Topic != "" {
		return t.Topic
	}
	return fmt.Sprintf("Topic %d", i+1)
}

// resolveDescription returns the first of description or reasoning.
func resolveDescription(t types.RawTopic) string {
	if t.Description != "" {
		return t.Description
	}
	return t.Reasoning
}

// resolveRelevance returns the first present of relevance_score or score,
// defaulting to defaultRelevance.
func resolveRelevance(t types.RawTopic) float64 {
	if t.RelevanceScore != nil {
		return *t.RelevanceScore
	}
	if t.Score != nil {
		return *t.Score
	}
	return defaultRelevance
}

// NormalizeRelevance maps a raw relevance value onto [0, 1] by scale
// inference: values above 10 are read as 0-100 percentages, values above 1
// as a 1-10 scale, and anything else as already fractional. The result is
// clamped into [0, 1].
func NormalizeRelevance(v float64) float64 {
	switch {
	case v > 10:
		v /= 100
	case v > 1:
		v /= 10
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// window returns n posts starting at offset. Out-of-range slices shrink to
// whatever remains, down to nothing.
func window(posts []types.SourcePost, offset, n int) []types.SourcePost {
	if offset >= len(posts) {
		return nil
	}
	end := offset + n
	if end > len(posts) {
		end = len(posts)
	}
	return posts[offset:end]
}
