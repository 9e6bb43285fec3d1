// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/esosa/podcast-assistant/pkg/types"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and edit the backend's settings",
	Long: `Config round-trips the backend's settings object. "show" prints it as
YAML, "set" changes one field and sends the whole object back, and
"export"/"import" move it through a YAML file.

The backend treats every POST as a full replacement, so set and import
always fetch first and send the merged object.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:     "show",
	Aliases: []string{"get"},
	Short:   "Print the current settings as YAML",
	RunE:    runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <path> <value>",
	Short: "Set one settings field by dot path",
	Long: `Set fetches the settings, changes the field at the given dot path, and
sends the object back. Paths follow the YAML layout, e.g.

  config set research.niche "technology"
  config set research.days_back 14
  config set research.keywords "ai,startups,burnout"
  config set episode.duration_minutes 30
  config set general.podcast.name "The Deep Dive"`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write the current settings to a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigExport,
}

var configImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the settings with a YAML file's contents",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigImport,
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd, configExportCmd, configImportCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	settings, err := newClient().Settings(cmd.Context())
	if err != nil {
		return reportError(err)
	}
	return yaml.NewEncoder(os.Stdout).Encode(settings)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	client := newClient()

	settings, err := client.Settings(ctx)
	if err != nil {
		return reportError(err)
	}
	updated, err := setSettingsField(settings, args[0], args[1])
	if err != nil {
		return err
	}
	if err := client.UpdateSettings(ctx, updated); err != nil {
		return reportError(err)
	}
	fmt.Fprintf(os.Stderr, "Set %s = %s\n", args[0], args[1])
	return nil
}

func runConfigExport(cmd *cobra.Command, args []string) error {
	settings, err := newClient().Settings(cmd.Context())
	if err != nil {
		return reportError(err)
	}
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := os.WriteFile(args[0], data, 0o644); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, "Settings written to", args[0])
	return nil
}

func runConfigImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	var settings types.Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}
	if err := newClient().UpdateSettings(cmd.Context(), settings); err != nil {
		return reportError(err)
	}
	fmt.Fprintln(os.Stderr, "Settings imported from", args[0])
	return nil
}

// setSettingsField updates one field by dot path. The settings go through a
// YAML map so the path names match what show and export print.
func setSettingsField(settings types.Settings, path, value string) (types.Settings, error) {
	raw, err := yaml.Marshal(settings)
	if err != nil {
		return types.Settings{}, fmt.Errorf("encoding settings: %w", err)
	}
	var tree map[string]any
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return types.Settings{}, fmt.Errorf("decoding settings: %w", err)
	}

	keys := strings.Split(path, ".")
	node := tree
	for _, k := range keys[:len(keys)-1] {
		child, ok := node[k].(map[string]any)
		if !ok {
			return types.Settings{}, fmt.Errorf("unknown settings path %q", path)
		}
		node = child
	}
	leaf := keys[len(keys)-1]
	old, ok := node[leaf]
	if !ok {
		return types.Settings{}, fmt.Errorf("unknown settings path %q", path)
	}
	node[leaf] = coerceSettingValue(old, value)

	raw, err = yaml.Marshal(tree)
	if err != nil {
		return types.Settings{}, fmt.Errorf("encoding settings: %w", err)
	}
	var out types.Settings
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return types.Settings{}, fmt.Errorf("value %q does not fit %s: %w", value, path, err)
	}
	return out, nil
}

// coerceSettingValue parses value to match the field's current type, so
// "14" becomes an int for days_back but stays a string for niche. List
// fields take comma-separated values.
func coerceSettingValue(old any, value string) any {
	switch old.(type) {
	case bool:
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	case int:
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	case []any:
		var list []any
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				list = append(list, item)
			}
		}
		return list
	}
	return value
}
