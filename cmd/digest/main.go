// Command digest drives newsletter generation from the command line:
// one-off runs, test sends, resends and the scheduled worker mode.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jimdaga/morning-press/internal/config"
	"github.com/jimdaga/morning-press/internal/database"
	"github.com/jimdaga/morning-press/internal/logging"
	"github.com/jimdaga/morning-press/internal/mailer"
	"github.com/jimdaga/morning-press/internal/newsletter"
	"github.com/jimdaga/morning-press/internal/pipeline"
	"github.com/jimdaga/morning-press/internal/subscribers"
	"github.com/jimdaga/morning-press/internal/worker"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "digest",
		Short: "Generate and deliver the AI newsletter",
	}

	root.AddCommand(newRunCmd())
	root.AddCommand(newScheduleCmd())
	root.AddCommand(newSendCmd())
	root.AddCommand(newTestCmd())

	return root
}

// newRunCmd generates and sends one edition immediately.
func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Generate and send the newsletter now",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger := logging.New(cfg.LogLevel, cfg.LogFormat)

			p := pipeline.New(cfg, openSubscribers(cfg, logger), logger)
			return p.Run(cmd.Context())
		},
	}
}

// newScheduleCmd runs the scheduler and worker until interrupted.
func newScheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Run the newsletter on its configured cadence",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger := logging.New(cfg.LogLevel, cfg.LogFormat)

			stopScheduler, err := worker.StartScheduler(cfg)
			if err != nil {
				return err
			}
			defer stopScheduler()

			p := pipeline.New(cfg, openSubscribers(cfg, logger), logger)
			return worker.Run(cfg, p)
		},
	}
}

// newSendCmd resends the most recent archived edition.
func newSendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send",
		Short: "Resend the latest archived newsletter",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger := logging.New(cfg.LogLevel, cfg.LogFormat)

			archive := newsletter.NewArchive(cfg.OutputDir)
			latest, err := archive.Latest()
			if err != nil {
				return err
			}
			html, date, err := archive.Read(latest.Filename)
			if err != nil {
				return err
			}

			subject := "AI Newsletter - " + date.Format("January 2, 2006")
			m := mailer.New(cfg, openSubscribers(cfg, logger), logger)
			report, err := m.Send(string(html), subject)
			if err != nil {
				return err
			}
			cmd.Println(report.Message)
			return nil
		},
	}
}

// newTestCmd sends the latest archived edition to one address.
func newTestCmd() *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "test",
		Short: "Send a test copy of the latest newsletter",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger := logging.New(cfg.LogLevel, cfg.LogFormat)

			archive := newsletter.NewArchive(cfg.OutputDir)
			latest, err := archive.Latest()
			if err != nil {
				return err
			}
			html, date, err := archive.Read(latest.Filename)
			if err != nil {
				return err
			}

			subject := "AI Newsletter - " + date.Format("January 2, 2006")
			m := mailer.New(cfg, nil, logger)
			report, err := m.SendTest(string(html), subject, to)
			if err != nil {
				return err
			}
			cmd.Println(report.Message)
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "recipient of the test email")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

// openSubscribers opens the subscriber store, or returns nil when the
// database is unavailable so delivery can still use RECIPIENT_EMAILS.
func openSubscribers(cfg *config.Config, logger *slog.Logger) mailer.SubscriberSource {
	db, err := database.Init(cfg.DatabasePath)
	if err != nil {
		logger.Warn("Database unavailable, falling back to configured recipients", "error", err)
		return nil
	}
	return subscribers.NewStore(db)
}
