// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check backend availability",
	Long: `Status probes the backend's health endpoint and reports whether the
assistant is ready to take requests. The result is also remembered locally,
so other commands can distinguish "backend never seen" from "backend down".`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	hs, err := newClient().Health(cmd.Context())
	if err != nil {
		if setErr := st.SetAuthenticated(false); setErr != nil {
			fmt.Fprintf(os.Stderr, "warning: could not update status flag: %v\n", setErr)
		}
		fmt.Println("Backend: unreachable")
		return reportError(err)
	}

	if setErr := st.SetAuthenticated(hs.AssistantReady); setErr != nil {
		fmt.Fprintf(os.Stderr, "warning: could not update status flag: %v\n", setErr)
	}

	fmt.Println("Backend:", hs.Status)
	if hs.AssistantReady {
		fmt.Println("Assistant: ready")
	} else {
		fmt.Println("Assistant: not initialized")
	}
	return nil
}
