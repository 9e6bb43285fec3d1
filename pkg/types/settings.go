// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ResearchSettings mirrors the backend's research configuration section.
type ResearchSettings struct {
	Keywords           []string `json:"keywords" yaml:"keywords"`
	Niche              string   `json:"niche" yaml:"niche"`
	Description        string   `json:"description" yaml:"description"`
	DaysBack           int      `json:"days_back" yaml:"days_back"`
	UseRandomKeywords  bool     `json:"use_random_keywords" yaml:"use_random_keywords"`
	RandomKeywordCount int      `json:"random_keyword_count" yaml:"random_keyword_count"`

	TwitterEnabled   bool `json:"twitter_enabled" yaml:"twitter_enabled"`
	TwitterMaxTweets int  `json:"twitter_max_tweets" yaml:"twitter_max_tweets"`
	TikTokEnabled    bool `json:"tiktok_enabled" yaml:"tiktok_enabled"`
	TikTokMaxVideos  int  `json:"tiktok_max_videos" yaml:"tiktok_max_videos"`
	ThreadsEnabled   bool `json:"threads_enabled" yaml:"threads_enabled"`
	ThreadsMaxPosts  int  `json:"threads_max_posts" yaml:"threads_max_posts"`
	RedditEnabled    bool `json:"reddit_enabled" yaml:"reddit_enabled"`
	RedditMaxPosts   int  `json:"reddit_max_posts" yaml:"reddit_max_posts"`
}

// EpisodeSettings mirrors the backend's episode configuration section.
type EpisodeSettings struct {
	Topic           string   `json:"topic" yaml:"topic"`
	TalkingPoints   []string `json:"talking_points" yaml:"talking_points"`
	DurationMinutes int      `json:"duration_minutes" yaml:"duration_minutes"`
	HostStyle       string   `json:"host_style" yaml:"host_style"`
	TargetAudience  string   `json:"target_audience" yaml:"target_audience"`
}

// PodcastInfo identifies the show.
type PodcastInfo struct {
	Name     string `json:"name" yaml:"name"`
	HostName string `json:"host_name" yaml:"host_name"`
	Website  string `json:"website" yaml:"website"`
}

// GeneralSettings mirrors the backend's general configuration section.
type GeneralSettings struct {
	Podcast   PodcastInfo `json:"podcast" yaml:"podcast"`
	Verbosity string      `json:"verbosity" yaml:"verbosity"`
}

// Settings is the full settings object the backend round-trips over GET and
// POST /api/config. The client edits fields and sends the object back whole.
type Settings struct {
	Research ResearchSettings `json:"research" yaml:"research"`
	Episode  EpisodeSettings  `json:"episode" yaml:"episode"`
	General  GeneralSettings  `json:"general" yaml:"general"`
}
