// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Talk to the research assistant",
	Long: `Chat sends a free-form message to the research assistant. With an
argument it sends that one message and prints the reply; without, it reads
messages from stdin until EOF or "exit".

The backend keeps no conversation state between messages.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	client := newClient()

	if len(args) == 1 {
		reply, err := client.Chat(ctx, args[0])
		if err != nil {
			return reportError(err)
		}
		fmt.Println(reply.Response)
		return nil
	}

	fmt.Fprintln(os.Stderr, `Chatting with the assistant. Type "exit" to quit.`)
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(os.Stderr, "> ")
		if !scanner.Scan() {
			break
		}
		msg := strings.TrimSpace(scanner.Text())
		if msg == "" {
			continue
		}
		if msg == "exit" || msg == "quit" {
			break
		}
		reply, err := client.Chat(ctx, msg)
		if err != nil {
			reportError(err)
			continue
		}
		fmt.Println(reply.Response)
	}
	return scanner.Err()
}
