// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes topic feeds to disk and fetches server-generated
// reports. See docs/ARCHITECTURE.md § Exports.
package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/esosa/podcast-assistant/pkg/types"
)

// ReportFilename derives the local filename from a server-provided report
// path. The backend emits paths with either separator depending on the host
// it runs on, so both are handled.
func ReportFilename(serverPath string) string {
	s := serverPath
	if i := strings.LastIndexAny(s, `/\`); i >= 0 {
		s = s[i+1:]
	}
	return s
}

// Fetcher streams a report file by name. *api.Client satisfies it.
type Fetcher interface {
	Report(ctx context.Context, filename string) (io.ReadCloser, error)
}

// DownloadReport fetches the report named by serverPath into destDir and
// returns the local path.
func DownloadReport(ctx context.Context, f Fetcher, serverPath, destDir string) (string, error) {
	filename := ReportFilename(serverPath)
	if filename == "" {
		return "", fmt.Errorf("no filename in report path %q", serverPath)
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("creating report directory: %w", err)
	}

	body, err := f.Report(ctx, filename)
	if err != nil {
		return "", err
	}
	defer body.Close()

	dest := filepath.Join(destDir, filename)
	out, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", dest, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, body); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("writing %s: %w", dest, err)
	}
	return dest, nil
}

// FeedFile is the on-disk YAML representation of an extracted topic feed.
type FeedFile struct {
	SavedAt time.Time     `yaml:"saved_at"`
	Topics  []types.Topic `yaml:"topics"`
}

// SaveFeedYAML writes the feed to path.
func SaveFeedYAML(path string, topics []types.Topic) error {
	data, err := yaml.Marshal(FeedFile{SavedAt: time.Now().UTC(), Topics: topics})
	if err != nil {
		return fmt.Errorf("encoding feed: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing feed file: %w", err)
	}
	return nil
}

// LoadFeedYAML reads a feed previously written by SaveFeedYAML.
func LoadFeedYAML(path string) ([]types.Topic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading feed file: %w", err)
	}
	var ff FeedFile
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return nil, fmt.Errorf("parsing feed file: %w", err)
	}
	return ff.Topics, nil
}

// WriteMarkdown renders the feed as a Markdown research digest.
func WriteMarkdown(topics []types.Topic, w io.Writer) {
	fmt.Fprintln(w, "# Podcast Research Topics")
	fmt.Fprintln(w)
	if len(topics) == 0 {
		fmt.Fprintln(w, "No topics extracted yet.")
		return
	}

	for _, t := range topics {
		fmt.Fprintf(w, "## %d. %s (%.0f%%)\n\n", t.ID+1, t.Title, t.RelevanceScore*100)
		if t.Description != "" {
			fmt.Fprintf(w, "%s\n\n", t.Description)
		}
		for _, platform := range types.Platforms {
			posts := t.Sources[platform]
			if len(posts) == 0 {
				continue
			}
			fmt.Fprintf(w, "**%s**\n\n", platform)
			for _, p := range posts {
				line := p.Display()
				if p.Author != "" {
					line += " — " + p.Author
				}
				if p.URL != "" {
					line += " (" + p.URL + ")"
				}
				fmt.Fprintf(w, "- %s\n", line)
			}
			fmt.Fprintln(w)
		}
	}
}
