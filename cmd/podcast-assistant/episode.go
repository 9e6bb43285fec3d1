// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/esosa/podcast-assistant/internal/feed"
	"github.com/esosa/podcast-assistant/pkg/types"
)

var episodeCmd = &cobra.Command{
	Use:   "episode [topic]",
	Short: "Draft an episode outline and script for a topic",
	Long: `Episode asks the backend to draft outline, talking points, and script
content for a topic. The topic comes from the argument, from --topic-id
(an entry in the current feed), or from the backend's stored settings, in
that order.

Drafting a topic records it in the local topic history, so later research
runs can warn when a candidate resembles something already covered.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEpisode,
}

func init() {
	episodeCmd.Flags().Int("topic-id", -1, "draft the feed topic with this ID")
	episodeCmd.Flags().Int("duration", 0, "target episode length in minutes (default: backend settings)")
	episodeCmd.Flags().String("style", "", "host style, e.g. conversational (default: backend settings)")
	episodeCmd.Flags().String("audience", "", "target audience (default: backend settings)")
	episodeCmd.Flags().Bool("json", false, "print the full episode content as JSON")
	episodeCmd.Flags().String("save", "", "write the full episode content to a JSON file")

	rootCmd.AddCommand(episodeCmd)
}

func runEpisode(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	client := newClient()

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	req, talkingPoints, err := episodeRequest(ctx, cmd, args, st)
	if err != nil {
		return reportError(err)
	}
	req.TalkingPoints = talkingPoints

	fmt.Fprintf(os.Stderr, "Drafting episode for %q...\n", req.Topic)
	content, err := client.Episode(ctx, req)
	if err != nil {
		return reportError(err)
	}

	if err := st.AddTopicHistory(req.Topic, time.Now()); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not record topic history: %v\n", err)
	}
	if _, err := st.RecordSession("episode", req.Topic, content); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not record session: %v\n", err)
	}

	if path, _ := cmd.Flags().GetString("save"); path != "" {
		if err := saveEpisode(path, content); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Episode saved to", path)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(content)
	}
	printEpisode(content)
	return nil
}

// episodeRequest resolves the topic and fills the remaining fields from the
// backend's stored settings. The settings' talking points only apply when the
// topic also came from settings; points for one topic make no sense on
// another.
func episodeRequest(ctx context.Context, cmd *cobra.Command, args []string, fs feed.Saver) (types.EpisodeRequest, []string, error) {
	duration, _ := cmd.Flags().GetInt("duration")
	style, _ := cmd.Flags().GetString("style")
	audience, _ := cmd.Flags().GetString("audience")

	req := types.EpisodeRequest{
		DurationMinutes: duration,
		HostStyle:       style,
		TargetAudience:  audience,
	}

	if len(args) == 1 {
		req.Topic = args[0]
	} else if id, _ := cmd.Flags().GetInt("topic-id"); id >= 0 {
		fd := feed.New(fs)
		if err := fd.Load(); err != nil {
			return types.EpisodeRequest{}, nil, err
		}
		t, ok := fd.Topic(id)
		if !ok {
			return types.EpisodeRequest{}, nil, fmt.Errorf("no topic with ID %d in the current feed", id)
		}
		req.Topic = t.Title
	}

	if req.Topic != "" && req.DurationMinutes > 0 && req.HostStyle != "" && req.TargetAudience != "" {
		return req, nil, nil
	}

	settings, err := newClient().Settings(ctx)
	if err != nil {
		return types.EpisodeRequest{}, nil, err
	}
	var points []string
	if req.Topic == "" {
		req.Topic = settings.Episode.Topic
		points = settings.Episode.TalkingPoints
	}
	if req.Topic == "" {
		return types.EpisodeRequest{}, nil, fmt.Errorf("no topic given and none configured; pass one or use --topic-id")
	}
	if req.DurationMinutes == 0 {
		req.DurationMinutes = settings.Episode.DurationMinutes
	}
	if req.HostStyle == "" {
		req.HostStyle = settings.Episode.HostStyle
	}
	if req.TargetAudience == "" {
		req.TargetAudience = settings.Episode.TargetAudience
	}
	return req, points, nil
}

func saveEpisode(path string, content types.EpisodeContent) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating episode directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding episode: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func printEpisode(content types.EpisodeContent) {
	title := content.Outline.Title
	if title == "" {
		title = content.Topic
	}
	fmt.Println(title)
	fmt.Println(strings.Repeat("=", len(title)))

	if content.Outline.TotalDuration != "" {
		fmt.Println("Duration:", content.Outline.TotalDuration)
	}
	for _, seg := range content.Outline.Segments {
		fmt.Println()
		if seg.DurationMinutes > 0 {
			fmt.Printf("%s (%d min)\n", seg.Name, seg.DurationMinutes)
		} else {
			fmt.Println(seg.Name)
		}
		for _, p := range seg.TalkingPoints {
			fmt.Println("  -", p)
		}
	}
	if len(content.TalkingPoints) > 0 && len(content.Outline.Segments) == 0 {
		fmt.Println()
		for _, p := range content.TalkingPoints {
			fmt.Println("  -", p)
		}
	}
	if content.Intro != "" {
		fmt.Println("\nIntro:")
		fmt.Println(content.Intro)
	}
	if content.Outro != "" {
		fmt.Println("\nOutro:")
		fmt.Println(content.Outro)
	}
	if content.PDFReport != "" {
		fmt.Println("\nServer report:", content.PDFReport)
	}
}
