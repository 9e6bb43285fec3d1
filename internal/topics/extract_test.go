// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package topics

import (
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"github.com/esosa/podcast-assistant/pkg/types"
)

func f(v float64) *float64 { return &v }

func rawWithTopics(n int) types.RawResearchResult {
	ts := make([]types.RawTopic, n)
	for i := range ts {
		ts[i] = types.RawTopic{Title: fmt.Sprintf("Suggestion %d", i), RelevanceScore: f(8)}
	}
	return types.RawResearchResult{RankedTopics: ts}
}

func posts(texts ...string) []types.SourcePost {
	out := make([]types.SourcePost, len(texts))
	for i, s := range texts {
		out[i] = types.SourcePost{Text: s}
	}
	return out
}

func TestExtractLength(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 0},
		{1, 1},
		{5, 5},
		{8, 8},
		{9, 8},
		{20, 8},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d topics", tt.in), func(t *testing.T) {
			got := Extract(rawWithTopics(tt.in))
			if len(got) != tt.want {
				t.Fatalf("len(Extract) = %d, want %d", len(got), tt.want)
			}
			for i, topic := range got {
				if topic.ID != i {
					t.Errorf("Topic[%d].ID = %d, want %d", i, topic.ID, i)
				}
			}
		})
	}
}

func TestExtractEmptyInput(t *testing.T) {
	got := Extract(types.RawResearchResult{})
	if len(got) != 0 {
		t.Errorf("Extract of empty result = %d topics, want 0", len(got))
	}
}

func TestExtractPrefersRankedTopics(t *testing.T) {
	raw := types.RawResearchResult{
		RankedTopics: []types.RawTopic{{Title: "Ranked"}},
		AISuggestions: &types.AISuggestions{
			Topics: []types.RawTopic{{Title: "Suggested"}},
		},
	}
	got := Extract(raw)
	if len(got) != 1 || got[0].Title != "Ranked" {
		t.Errorf("Extract should prefer ranked_topics, got %+v", got)
	}
}

func TestExtractFallsBackToSuggestions(t *testing.T) {
	raw := types.RawResearchResult{
		AISuggestions: &types.AISuggestions{
			Topics: []types.RawTopic{{Title: "Suggested"}},
		},
	}
	got := Extract(raw)
	if len(got) != 1 || got[0].Title != "Suggested" {
		t.Errorf("Extract should fall back to ai_topic_suggestions.topics, got %+v", got)
	}
}

func TestResolveTitleSynthesized(t *testing.T) {
	raw := rawWithTopics(3)
	raw.RankedTopics[2] = types.RawTopic{}
	got := Extract(raw)
	if got[2].Title != "Topic 3" {
		t.Errorf("Title = %q, want %q", got[2].Title, "Topic 3")
	}
}

func TestResolveTitlePriority(t *testing.T) {
	tests := []struct {
		name  string
		topic types.RawTopic
		want  string
	}{
		{"title wins", types.RawTopic{Title: "A", Topic: "B"}, "A"},
		{"topic fallback", types.RawTopic{Topic: "B"}, "B"},
		{"neither", types.RawTopic{}, "Topic 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveTitle(tt.topic, 0); got != tt.want {
				t.Errorf("resolveTitle = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveDescriptionPriority(t *testing.T) {
	tests := []struct {
		name  string
		topic types.RawTopic
		want  string
	}{
		{"description wins", types.RawTopic{Description: "d", Reasoning: "r"}, "d"},
		{"reasoning fallback", types.RawTopic{Reasoning: "r"}, "r"},
		{"neither is empty", types.RawTopic{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveDescription(tt.topic); got != tt.want {
				t.Errorf("resolveDescription = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveRelevancePriority(t *testing.T) {
	tests := []struct {
		name  string
		topic types.RawTopic
		want  float64
	}{
		{"relevance_score wins", types.RawTopic{RelevanceScore: f(7), Score: f(3)}, 7},
		{"score fallback", types.RawTopic{Score: f(3)}, 3},
		{"zero is a value, not absence", types.RawTopic{RelevanceScore: f(0)}, 0},
		{"default", types.RawTopic{}, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveRelevance(tt.topic); got != tt.want {
				t.Errorf("resolveRelevance = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeRelevance(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{0.6, 0.6},
		{1, 1},
		{1.0, 1.0},
		{7, 0.7},
		{8, 0.8},
		{10, 1.0},
		{10.1, 0.101},
		{55, 0.55},
		{75, 0.75},
		{100, 1.0},
		{-3, 0},
		{250, 1.0},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v", tt.in), func(t *testing.T) {
			got := NormalizeRelevance(tt.in)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("NormalizeRelevance(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtractScoreAlwaysInRange(t *testing.T) {
	raws := []float64{-100, -1, 0, 0.5, 1, 2, 9.9, 10, 10.1, 55, 100, 1000}
	ts := make([]types.RawTopic, len(raws))
	for i, v := range raws {
		ts[i] = types.RawTopic{Title: "t", RelevanceScore: f(v)}
	}
	got := Extract(types.RawResearchResult{RankedTopics: ts})
	for i, topic := range got {
		if topic.RelevanceScore < 0 || topic.RelevanceScore > 1 {
			t.Errorf("topic %d: RelevanceScore = %v, out of [0,1]", i, topic.RelevanceScore)
		}
	}
}

func TestTwitterSourcesDisjointPairs(t *testing.T) {
	raw := rawWithTopics(3)
	raw.Twitter = &types.PlatformResult{
		SamplePosts: posts("p0", "p1", "p2", "p3", "p4", "p5"),
	}
	got := Extract(raw)

	want := [][]string{{"p0", "p1"}, {"p2", "p3"}, {"p4", "p5"}}
	for i, topic := range got {
		tw := topic.Sources[types.PlatformTwitter]
		if len(tw) != len(want[i]) {
			t.Fatalf("topic %d: %d twitter posts, want %d", i, len(tw), len(want[i]))
		}
		for j, p := range tw {
			if p.Text != want[i][j] {
				t.Errorf("topic %d post %d = %q, want %q", i, j, p.Text, want[i][j])
			}
		}
	}
}

func TestNonTwitterSourcesOverlappingWindows(t *testing.T) {
	raw := rawWithTopics(3)
	raw.Reddit = &types.PlatformResult{SamplePosts: posts("q0", "q1", "q2")}
	got := Extract(raw)

	for i, topic := range got {
		rd := topic.Sources[types.PlatformReddit]
		if len(rd) != 1 {
			t.Fatalf("topic %d: %d reddit posts, want 1", i, len(rd))
		}
		want := fmt.Sprintf("q%d", i)
		if rd[0].Text != want {
			t.Errorf("topic %d reddit post = %q, want %q", i, rd[0].Text, want)
		}
	}
}

func TestSourcesOutOfRange(t *testing.T) {
	raw := rawWithTopics(4)
	raw.Twitter = &types.PlatformResult{SamplePosts: posts("p0", "p1", "p2")}
	raw.TikTok = &types.PlatformResult{SamplePosts: posts("c0")}
	got := Extract(raw)

	// Topic 1's twitter window [2:4] shrinks to one post; topics 2+ get none.
	if n := len(got[1].Sources[types.PlatformTwitter]); n != 1 {
		t.Errorf("topic 1: %d twitter posts, want 1", n)
	}
	if n := len(got[2].Sources[types.PlatformTwitter]); n != 0 {
		t.Errorf("topic 2: %d twitter posts, want 0", n)
	}
	if n := len(got[3].Sources[types.PlatformTikTok]); n != 0 {
		t.Errorf("topic 3: %d tiktok posts, want 0", n)
	}
}

func TestPlatformPostFallbacks(t *testing.T) {
	raw := rawWithTopics(1)
	raw.Twitter = &types.PlatformResult{TrendingTopics: posts("trend")}
	raw.TikTok = &types.PlatformResult{SampleCaptions: posts("caption")}
	raw.Reddit = &types.PlatformResult{SampleTitles: posts("headline")}
	got := Extract(raw)

	checks := []struct {
		platform types.Platform
		want     string
	}{
		{types.PlatformTwitter, "trend"},
		{types.PlatformTikTok, "caption"},
		{types.PlatformReddit, "headline"},
	}
	for _, c := range checks {
		ps := got[0].Sources[c.platform]
		if len(ps) != 1 || ps[0].Text != c.want {
			t.Errorf("%s fallback: got %+v, want one post %q", c.platform, ps, c.want)
		}
	}
}

func TestPrimaryFieldWinsOverFallback(t *testing.T) {
	raw := rawWithTopics(1)
	raw.TikTok = &types.PlatformResult{
		SamplePosts:    posts("primary"),
		SampleCaptions: posts("fallback"),
	}
	got := Extract(raw)
	ps := got[0].Sources[types.PlatformTikTok]
	if len(ps) != 1 || ps[0].Text != "primary" {
		t.Errorf("sample_posts should win over sample_captions, got %+v", ps)
	}
}

func TestExtractFromWireJSON(t *testing.T) {
	// A realistic backend body: mixed string and object posts, a 1-10
	// score, and a missing platform.
	body := `{
		"ai_topic_suggestions": {"topics": [
			{"title": "AI burnout", "description": "why it matters", "relevance_score": 9},
			{"topic": "Creator economy", "reasoning": "rising fast", "score": 75}
		]},
		"twitter_results": {"sample_posts": [
			{"text": "long thread on burnout", "author": "@dev", "url": "https://x.com/1"},
			"plain string post"
		]},
		"reddit_results": {"sample_titles": ["Ask HN: burnout?", "Creators unionizing"]}
	}`

	var raw types.RawResearchResult
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	got := Extract(raw)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Title != "AI burnout" || got[0].RelevanceScore != 0.9 {
		t.Errorf("topic 0 = %q score %v", got[0].Title, got[0].RelevanceScore)
	}
	if got[1].Title != "Creator economy" || got[1].Description != "rising fast" {
		t.Errorf("topic 1 = %+v", got[1])
	}
	if got[1].RelevanceScore != 0.75 {
		t.Errorf("topic 1 score = %v, want 0.75", got[1].RelevanceScore)
	}

	tw := got[0].Sources[types.PlatformTwitter]
	if len(tw) != 2 || tw[0].Author != "@dev" || tw[1].Text != "plain string post" {
		t.Errorf("twitter sources = %+v", tw)
	}
	if n := len(got[0].Sources[types.PlatformThreads]); n != 0 {
		t.Errorf("threads sources = %d, want 0", n)
	}
	if rd := got[1].Sources[types.PlatformReddit]; len(rd) != 1 || rd[0].Text != "Creators unionizing" {
		t.Errorf("reddit sources = %+v", rd)
	}
}
