// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/esosa/podcast-assistant/internal/export"
	"github.com/esosa/podcast-assistant/internal/feed"
	"github.com/esosa/podcast-assistant/internal/store"
	"github.com/esosa/podcast-assistant/pkg/types"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Show the persisted topic feed",
	Long: `Topics prints the feed produced by the last successful research run.
The feed survives restarts; an empty feed means no research has completed
yet (or the persisted feed was written by an incompatible version and was
reset).`,
	RunE: runTopics,
}

func init() {
	topicsCmd.Flags().Bool("json", false, "print the feed as JSON")
	topicsCmd.Flags().Bool("markdown", false, "print the feed as a Markdown digest")
	topicsCmd.Flags().String("export", "", "write the feed to a YAML file")

	rootCmd.AddCommand(topicsCmd)
}

func runTopics(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	fd := feed.New(st)
	if err := fd.Load(); err != nil {
		return err
	}
	current := fd.Topics()

	if path, _ := cmd.Flags().GetString("export"); path != "" {
		if err := export.SaveFeedYAML(path, current); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Feed written to", path)
		return nil
	}
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(current)
	}
	if md, _ := cmd.Flags().GetBool("markdown"); md {
		export.WriteMarkdown(current, os.Stdout)
		return nil
	}

	printTopicTable(current)
	return nil
}

// coveredChecker is the part of *store.Store the research command needs for
// history warnings.
type coveredChecker interface {
	Covered(topic string) ([]store.HistoryMatch, error)
}

// printTopicTable renders the feed as a fixed-width table.
func printTopicTable(list []types.Topic) {
	if len(list) == 0 {
		fmt.Println("No topics yet. Run 'podcast-assistant research' to build the feed.")
		return
	}

	fmt.Printf("%-3s  %-44s  %-6s  %s\n", "ID", "Title", "Score", "Sources")
	fmt.Println(strings.Repeat("-", 80))

	for _, t := range list {
		title := t.Title
		if len(title) > 44 {
			title = title[:41] + "..."
		}
		fmt.Printf("%-3d  %-44s  %-6.2f  %s\n", t.ID, title, t.RelevanceScore, sourceCounts(t))
	}
	fmt.Printf("\n%d topics\n", len(list))
}

// sourceCounts summarizes per-platform evidence, e.g. "twitter:2 reddit:1".
func sourceCounts(t types.Topic) string {
	var parts []string
	for _, platform := range types.Platforms {
		if n := len(t.Sources[platform]); n > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", platform, n))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

// reportsDir is where downloaded PDF reports land.
func reportsDir(st *store.Store) string {
	return filepath.Join(st.DataDir(), "reports")
}
