package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/frontdesk/internal/cli/formatter"
	"github.com/alexanderramin/frontdesk/internal/domain"
)

func newContentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Manage the topic corpus",
	}

	cmd.AddCommand(
		newContentListCmd(app),
		newContentImportCmd(app),
		newContentAddCmd(app),
	)
	return cmd
}

func newContentListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List topics",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Content.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatContentList(entries))
			return nil
		},
	}
}

func newContentImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Replace all topics with the contents of a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			n, err := app.Content.Import(cmd.Context(), data)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d topics from %s\n", n, args[0])
			return nil
		},
	}
}

func newContentAddCmd(app *App) *cobra.Command {
	var (
		id      int
		keyword string
		content string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add or replace one topic",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("id") && app.interactive() {
				idText := ""
				if err := contentForm(&idText, &keyword, &content).Run(); err != nil {
					return err
				}
				n, err := strconv.Atoi(strings.TrimSpace(idText))
				if err != nil {
					return fmt.Errorf("invalid id %q", idText)
				}
				id = n
			}

			entry := domain.ContentEntry{ID: id, Keyword: strings.TrimSpace(keyword), Content: content}
			if err := app.Content.Add(cmd.Context(), entry); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved topic %d (%s)\n", entry.ID, entry.Keyword)
			return nil
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "topic id")
	cmd.Flags().StringVar(&keyword, "keyword", "", "topic keyword")
	cmd.Flags().StringVar(&content, "content", "", "topic body shown to the model")
	return cmd
}

func contentForm(id, keyword, content *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Topic id").
				Value(id).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Keyword").
				Placeholder("Therapies").
				Value(keyword).
				Validate(validateRequired("keyword")),
			huh.NewText().
				Title("Content").
				Value(content),
		),
	).WithTheme(frontdeskHuhTheme()).WithShowHelp(false)
}
