// Command trainbook is the terminal client for the train reservation
// service: log in, search schedules, compose a passenger roster, book,
// and export the ticket as a PDF.
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"

	"github.com/pari08yadav/train-ticket-booking/internal/api"
	"github.com/pari08yadav/train-ticket-booking/internal/booking"
	"github.com/pari08yadav/train-ticket-booking/internal/config"
	"github.com/pari08yadav/train-ticket-booking/internal/session"
	"github.com/pari08yadav/train-ticket-booking/internal/ticket"
	"github.com/pari08yadav/train-ticket-booking/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "trainbook:", err)
		os.Exit(1)
	}
}

func run() error {
	env := config.LoadEnv()

	apiURL := flag.String("api-url", env.APIBaseURL, "base URL of the reservation service")
	sessionFile := flag.String("session-file", env.SessionFile, "path of the session token file")
	exportDir := flag.String("export-dir", env.ExportDir, "directory ticket PDFs are written to")
	topUp := flag.Float64("top-up", 0, "add this amount to the wallet and exit")
	logout := flag.Bool("logout", false, "clear the stored session and exit")
	flag.Parse()

	path := *sessionFile
	if path == "" {
		var err error
		path, err = session.DefaultPath()
		if err != nil {
			return fmt.Errorf("resolve session file: %w", err)
		}
	}

	sess := session.NewService(session.FileStore{Path: path})
	client := api.NewClient(*apiURL, sess)

	if *logout {
		if err := sess.Clear(); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
		fmt.Println("Logged out.")
		return nil
	}
	if *topUp > 0 {
		balance, err := client.AddFunds(context.Background(), *topUp)
		if err != nil {
			return fmt.Errorf("add funds: %w", err)
		}
		fmt.Printf("Balance: Rs %.2f\n", balance)
		return nil
	}

	submitter := booking.NewSubmitter(client, sess)
	exporter := ticket.NewExporter(*exportDir)

	model := ui.NewModel(client, sess, submitter, exporter)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
