// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esosa/podcast-assistant/pkg/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(types.StoreConfig{DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleFeed() []types.Topic {
	return []types.Topic{
		{
			ID:             0,
			Title:          "AI burnout",
			Description:    "why it matters",
			RelevanceScore: 0.9,
			Sources: map[types.Platform][]types.SourcePost{
				types.PlatformTwitter: {{Text: "p0", Author: "@dev"}, {Text: "p1"}},
				types.PlatformReddit:  {{Title: "Ask HN: burnout?", URL: "https://reddit.com/x"}},
			},
		},
		{ID: 1, Title: "Creator economy", RelevanceScore: 0.75,
			Sources: map[types.Platform][]types.SourcePost{}},
	}
}

func TestTopicFeedRoundTrip(t *testing.T) {
	s := openTestStore(t)

	feed := sampleFeed()
	require.NoError(t, s.SaveTopicFeed(feed))

	got, err := s.LoadTopicFeed()
	require.NoError(t, err)
	assert.Equal(t, feed, got)
}

func TestTopicFeedLastWriteWins(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.SaveTopicFeed(sampleFeed()))
	second := []types.Topic{{ID: 0, Title: "Replacement", RelevanceScore: 0.5,
		Sources: map[types.Platform][]types.SourcePost{}}}
	require.NoError(t, s.SaveTopicFeed(second))

	got, err := s.LoadTopicFeed()
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestTopicFeedMissing(t *testing.T) {
	s := openTestStore(t)
	got, err := s.LoadTopicFeed()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTopicFeedSchemaMismatchResets(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.SaveTopicFeed(sampleFeed()))

	// Simulate a feed written by a different client version.
	_, err := s.db.Exec(`UPDATE snapshots SET schema_version = 99 WHERE key = ?`, topicFeedKey)
	require.NoError(t, err)

	got, err := s.LoadTopicFeed()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTopicFeedCorruptPayloadResets(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.SaveTopicFeed(sampleFeed()))

	_, err := s.db.Exec(`UPDATE snapshots SET payload = 'not json' WHERE key = ?`, topicFeedKey)
	require.NoError(t, err)

	got, err := s.LoadTopicFeed()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAuthFlag(t *testing.T) {
	s := openTestStore(t)

	got, err := s.Authenticated()
	require.NoError(t, err)
	assert.False(t, got, "default should be false")

	require.NoError(t, s.SetAuthenticated(true))
	got, err = s.Authenticated()
	require.NoError(t, err)
	assert.True(t, got)

	require.NoError(t, s.SetAuthenticated(false))
	got, err = s.Authenticated()
	require.NoError(t, err)
	assert.False(t, got)
}

func TestSessions(t *testing.T) {
	s := openTestStore(t)

	first, err := s.RecordSession("research", "2 topics from 3 platforms", map[string]int{"topics": 2})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)

	_, err = s.RecordSession("episode", "AI burnout outline", nil)
	require.NoError(t, err)

	all, err := s.Sessions("", 10)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	research, err := s.Sessions("research", 10)
	require.NoError(t, err)
	require.Len(t, research, 1)
	assert.Equal(t, first.ID, research[0].ID)
	assert.JSONEq(t, `{"topics": 2}`, string(research[0].Payload))
}

func TestCovered(t *testing.T) {
	s := openTestStore(t)
	now := time.Now()

	require.NoError(t, s.AddTopicHistory("AI burnout in tech", now))
	require.NoError(t, s.AddTopicHistory("Gardening for beginners", now))

	matches, err := s.Covered("AI burnout in tech teams")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "AI burnout in tech", matches[0].Topic)
	assert.GreaterOrEqual(t, matches[0].Similarity, 0.7)

	none, err := s.Covered("Quantum computing")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestWordOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "ai burnout", "AI Burnout", 1.0},
		{"disjoint", "apples", "oranges", 0},
		{"empty", "", "anything", 0},
		{"partial", "a b c d", "a b c e", 0.6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, wordOverlap(tt.a, tt.b), 0.001)
		})
	}
}
