// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List recent research and episode sessions",
	Long: `Sessions lists the locally recorded history of research runs and episode
drafts, newest first. Each successful backend call records one session.`,
	RunE: runSessions,
}

func init() {
	sessionsCmd.Flags().String("type", "", `filter by session type ("research" or "episode")`)
	sessionsCmd.Flags().Int("limit", 10, "maximum number of sessions to list")

	rootCmd.AddCommand(sessionsCmd)
}

func runSessions(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	sessionType, _ := cmd.Flags().GetString("type")
	limit, _ := cmd.Flags().GetInt("limit")

	sessions, err := st.Sessions(sessionType, limit)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions recorded.")
		return nil
	}
	for _, s := range sessions {
		fmt.Printf("%s  %-8s  %s\n", s.CreatedAt.Format("2006-01-02 15:04"), s.Type, s.Summary)
	}
	return nil
}
