package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"

	"weddinginvites/internal/config"
	"weddinginvites/internal/events"
	"weddinginvites/internal/invites"
	"weddinginvites/internal/mailer"
	"weddinginvites/internal/render"
	"weddinginvites/internal/tabular"
	"weddinginvites/internal/workflow"
)

func sendCommand() *cli.Command {
	return &cli.Command{
		Name:  "send",
		Usage: "Create invites for every row of a guest CSV and email them.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "csv", Required: true, Usage: "Guest list with Guests, email and optional plus one columns."},
			&cli.StringFlag{Name: "event", Value: events.CanadaInvite, Usage: "Event preset to mail."},
			&cli.StringFlag{Name: "image", Usage: "Inline image embedded in the message."},
			&cli.StringFlag{Name: "out", Usage: "Result log path (default ./out/sent_invites_<timestamp>.csv)."},
			&cli.BoolFlag{Name: "dry-run", Usage: "Log what would be sent without creating invites or emailing."},
			&cli.BoolFlag{Name: "no-create", Usage: "Skip invite creation even if the event normally creates invites."},
		},
		Action: func(c *cli.Context) error {
			logger, closeLog, err := newLogger(c)
			if err != nil {
				return err
			}
			defer closeLog()

			event, err := events.Lookup(c.String("event"))
			if err != nil {
				return err
			}
			if c.Bool("dry-run") {
				logger.Info("Performing a dry run. No invites will be created and no email sent.")
			}

			apiCfg, err := config.LoadAPI()
			if err != nil {
				return err
			}
			var sender workflow.Sender
			if !c.Bool("dry-run") {
				mailCfg, err := config.LoadMail()
				if err != nil {
					return err
				}
				m, err := mailer.New(logger, mailCfg)
				if err != nil {
					return err
				}
				sender = m
			}

			rows, err := tabular.ReadRowsFile(c.String("csv"))
			if err != nil {
				return err
			}
			logger.Info("Loaded guest rows.", "file", c.String("csv"), "rows", len(rows))

			renderer, err := render.New()
			if err != nil {
				return err
			}

			createInvites := event.CreateInvites && !c.Bool("no-create")
			var creator workflow.InviteCreator
			if createInvites {
				creator = invites.NewClient(logger, apiCfg)
			}

			w, err := workflow.New(logger, creator, sender, renderer, workflow.Options{
				Event:         event,
				CreateInvites: createInvites,
				DryRun:        c.Bool("dry-run"),
				ImagePath:     c.String("image"),
				Linker:        invites.NewLinker(apiCfg.WebsiteURL, apiCfg.BaseURL, event),
			})
			if err != nil {
				return err
			}

			results := w.Run(c.Context, rows)

			out := c.String("out")
			if out == "" {
				out = filepath.Join("out", fmt.Sprintf("sent_invites_%s.csv", time.Now().Format("20060102_150405")))
			}
			if err := tabular.WriteResultsFile(out, results); err != nil {
				return err
			}

			summary := workflow.Summarize(results)
			fmt.Printf("Total processed: %d\nSuccessful email sends: %d\nFailed email sends: %d\nResults saved to %s\n",
				summary.Total, summary.Sent, summary.Failed, out)
			return nil
		},
	}
}
