package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"godchat/internal/cli/client"
	"godchat/internal/cli/ui"
	"godchat/internal/domain"
)

var (
	flagLimit int
	flagJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "print a session transcript, oldest-first",
	Example: `  # Show the last 20 turns of a session
  $ godctl --session my-session --role admin history --limit 20

  # Export the transcript as JSON
  $ godctl --session my-session --role admin history --json`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 0, "maximum turns to fetch (0 = all)")
	historyCmd.Flags().BoolVar(&flagJSON, "json", false, "emit raw JSON")
}

func runHistory(cmd *cobra.Command, args []string) error {
	if flagSession == "" {
		ui.PrintError("--session is required")
		return fmt.Errorf("missing session")
	}

	api := client.New(flagServer, flagRole)
	turns, err := api.History(flagSession, flagLimit)
	if err != nil {
		ui.PrintError("%v", err)
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(turns)
	}

	for _, t := range turns {
		label := ui.Styles.User
		if t.Role == domain.RoleAssistant {
			label = ui.Styles.Assistant
		}
		fmt.Printf("%s %s\n", label.Render(string(t.Role)+":"), t.Content)
		fmt.Println(ui.Styles.Dim.Render("  " + t.CreatedAt.Format("2006-01-02 15:04:05")))
	}
	return nil
}
