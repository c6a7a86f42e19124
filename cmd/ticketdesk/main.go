package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ticketdesk/ticketdesk/internal/interfaces/cli/migrate"
	"github.com/ticketdesk/ticketdesk/internal/interfaces/cli/server"
	"github.com/ticketdesk/ticketdesk/internal/interfaces/cli/user"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "ticketdesk",
		Short:        "TicketDesk - realtime ticket chat and notifications",
		Long:         `TicketDesk serves ticket conversations and user notifications over websockets, with migration and user administration commands.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		user.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
