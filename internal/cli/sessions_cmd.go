package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alexanderramin/frontdesk/internal/cli/formatter"
	"github.com/alexanderramin/frontdesk/internal/domain"
)

func newSessionsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sessions",
		Aliases: []string{"leads"},
		Short:   "Browse stored conversations as leads",
	}

	cmd.AddCommand(
		newSessionsListCmd(app),
		newSessionsShowCmd(app),
		newSessionsExportCmd(app),
	)
	return cmd
}

func addLeadFilterFlags(fs *pflag.FlagSet, f *domain.LeadFilter) {
	fs.StringVar(&f.Name, "name", "", "filter by caller name (substring)")
	fs.StringVar(&f.Interest, "interest", "", "filter by interest (substring)")
}

func newSessionsListCmd(app *App) *cobra.Command {
	var filter domain.LeadFilter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sessions, most recently updated first",
		RunE: func(cmd *cobra.Command, args []string) error {
			leads, err := app.Leads.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatLeadList(leads))
			return nil
		},
	}

	addLeadFilterFlags(cmd.Flags(), &filter)
	return cmd
}

func newSessionsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <session-id>",
		Short: "Show one session with its conversation log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lead, err := app.Leads.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("session %s: %w", args[0], err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatLeadDetail(*lead))
			return nil
		},
	}
}

func newSessionsExportCmd(app *App) *cobra.Command {
	var (
		filter domain.LeadFilter
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export leads as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			var w io.Writer = cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("creating %s: %w", out, err)
				}
				defer f.Close()
				w = f
			}

			n, err := app.Leads.ExportCSV(cmd.Context(), w, filter)
			if err != nil {
				return err
			}
			if out != "" && out != "-" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d leads to %s\n", n, out)
			}
			return nil
		},
	}

	addLeadFilterFlags(cmd.Flags(), &filter)
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}
