package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/frontdesk/internal/cli/formatter"
	"github.com/alexanderramin/frontdesk/internal/contract"
)

func newAskCmd(app *App) *cobra.Command {
	var (
		sessionID string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "ask [query...]",
		Short: "Send one query and print the reply",
		Long:  "Send one query and print the reply. With no arguments the query is read from piped stdin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			if query == "" && !app.interactive() && app.Stdin != nil {
				data, err := io.ReadAll(app.Stdin)
				if err != nil {
					return fmt.Errorf("reading stdin: %w", err)
				}
				query = strings.TrimSpace(string(data))
			}
			if sessionID == "" {
				sessionID = newSessionID()
			}

			var stop func()
			if app.interactive() && !asJSON {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Thinking...")
			}
			resp, err := app.FrontDesk.Submit(cmd.Context(), contract.QueryRequest{Query: query, SessionID: sessionID})
			if stop != nil {
				stop()
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}
			fmt.Fprintln(out, formatter.FormatReply(resp))
			fmt.Fprintln(out, formatter.Dim("session "+resp.SessionID))
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "session id to continue (default: new session)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw response object")
	return cmd
}
