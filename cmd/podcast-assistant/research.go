// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/esosa/podcast-assistant/internal/export"
	"github.com/esosa/podcast-assistant/internal/feed"
	"github.com/esosa/podcast-assistant/internal/topics"
	"github.com/esosa/podcast-assistant/pkg/types"
)

var researchCmd = &cobra.Command{
	Use:   "research",
	Short: "Run multi-platform topic research and rebuild the topic feed",
	Long: `Research asks the backend to scan the configured social platforms for
podcast-worthy topics. The raw response is normalized into a ranked feed of
at most eight topics, each with a 0-1 relevance score and illustrative
source posts per platform. On success the new feed replaces the persisted
one; on failure the previous feed is kept.

The backend call takes one to three minutes.`,
	RunE: runResearch,
}

func init() {
	researchCmd.Flags().String("keywords", "", "search keywords (comma-separated; default: backend settings)")
	researchCmd.Flags().String("niche", "", "podcast niche (default: backend settings)")
	researchCmd.Flags().String("description", "", "podcast description (default: backend settings)")
	researchCmd.Flags().Int("days-back", 0, "how many days of posts to scan (default: backend settings)")
	researchCmd.Flags().Bool("json", false, "print the extracted feed as JSON")
	researchCmd.Flags().Bool("report", false, "download the server-generated PDF report")

	rootCmd.AddCommand(researchCmd)
}

func runResearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	client := newClient()

	req, err := researchRequest(ctx, cmd)
	if err != nil {
		return reportError(err)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	fd := feed.New(st)
	if err := fd.Load(); err != nil {
		return err
	}

	gen := fd.Begin()
	fmt.Fprintf(os.Stderr, "Researching %d keyword(s) across platforms (this can take 1-3 minutes)...\n", len(req.Keywords))

	raw, err := client.Research(ctx, req)
	if err != nil {
		// The persisted feed stays as it was; the user retries manually.
		return reportError(err)
	}

	extracted := topics.Extract(raw)

	applied, err := fd.Apply(gen, extracted)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not persist topic feed: %v\n", err)
	}
	if !applied {
		fmt.Fprintln(os.Stderr, "A newer research run finished first; this result was discarded.")
		return nil
	}

	warnCovered(st, extracted)

	summary := fmt.Sprintf("%d topics from %d platform(s)", len(extracted), len(raw.PlatformsSucceeded))
	if _, err := st.RecordSession("research", summary, raw); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not record session: %v\n", err)
	}

	if download, _ := cmd.Flags().GetBool("report"); download && raw.PDFReport != "" {
		dest, err := export.DownloadReport(ctx, client, raw.PDFReport, reportsDir(st))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: report download failed: %v\n", err)
		} else {
			fmt.Fprintln(os.Stderr, "Report saved to", dest)
		}
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(extracted)
	}
	printTopicTable(extracted)
	return nil
}

// researchRequest builds the request body, pulling any value the user did
// not supply from the backend's stored settings.
func researchRequest(ctx context.Context, cmd *cobra.Command) (types.ResearchRequest, error) {
	kwFlag, _ := cmd.Flags().GetString("keywords")
	niche, _ := cmd.Flags().GetString("niche")
	description, _ := cmd.Flags().GetString("description")
	daysBack, _ := cmd.Flags().GetInt("days-back")

	req := types.ResearchRequest{
		Keywords:    splitKeywords(kwFlag),
		Niche:       niche,
		Description: description,
		DaysBack:    daysBack,
	}

	if len(req.Keywords) > 0 && req.Niche != "" && req.Description != "" && req.DaysBack > 0 {
		return req, nil
	}

	settings, err := newClient().Settings(ctx)
	if err != nil {
		return types.ResearchRequest{}, err
	}
	if len(req.Keywords) == 0 {
		req.Keywords = settings.Research.Keywords
	}
	if req.Niche == "" {
		req.Niche = settings.Research.Niche
	}
	if req.Description == "" {
		req.Description = settings.Research.Description
	}
	if req.DaysBack == 0 {
		req.DaysBack = settings.Research.DaysBack
	}
	if req.DaysBack == 0 {
		req.DaysBack = 7
	}
	return req, nil
}

// warnCovered flags the top topic when it resembles something already covered.
func warnCovered(st coveredChecker, extracted []types.Topic) {
	if len(extracted) == 0 {
		return
	}
	matches, err := st.Covered(extracted[0].Title)
	if err != nil || len(matches) == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "warning: top topic %q resembles previously covered topics:\n", extracted[0].Title)
	for i, m := range matches {
		if i == 3 {
			break
		}
		fmt.Fprintf(os.Stderr, "  - %s (similarity %.0f%%)\n", m.Topic, m.Similarity*100)
	}
}

func splitKeywords(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}
