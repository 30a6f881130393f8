package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/frontdesk/internal/service"
)

// App holds what the commands need. cmd/frontdesk builds it once.
type App struct {
	FrontDesk service.FrontDeskService
	Leads     service.LeadService
	Content   service.ContentService

	// Serve runs the HTTP API until ctx is cancelled.
	Serve       func(ctx context.Context, addr string) error
	DefaultAddr string

	// Preflight reports whether the completion provider looks reachable.
	Preflight func(ctx context.Context) bool

	Logger *slog.Logger

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool
	Stdin         io.Reader
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}

// NewRootCmd creates the top-level "frontdesk" command.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "frontdesk",
		Short:         "Front-desk assistant: answers callers and keeps their details",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(app),
		newAskCmd(app),
		newChatCmd(app),
		newContentCmd(app),
		newSessionsCmd(app),
	)
	return root
}
