package commands

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"godchat/internal/cli/client"
	"godchat/internal/cli/ui"
	"godchat/internal/domain"
)

var sendCmd = &cobra.Command{
	Use:   "send [message]",
	Short: "send one message and print the reply",
	Example: `  # Send a message in a fresh session
  $ godctl send "hello"

  # Continue an existing conversation
  $ godctl --session my-session send "tell me more"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSend,
}

func runSend(cmd *cobra.Command, args []string) error {
	message := strings.Join(args, " ")

	sessionID := flagSession
	if sessionID == "" {
		sessionID = uuid.New().String()
		fmt.Println(ui.Styles.Dim.Render("session: " + sessionID))
	}

	api := client.New(flagServer, flagRole)
	resp, err := api.Chat(domain.ChatRequest{
		SessionID: sessionID,
		Turns: []domain.Entry{
			{Role: domain.RoleUser, Content: message},
		},
	})
	if err != nil {
		ui.PrintError("%v", err)
		return err
	}

	fmt.Println(ui.Styles.Assistant.Render("assistant:"), resp.Content)
	return nil
}
