package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"

	"weddinginvites/internal/config"
	"weddinginvites/internal/dietary"
	"weddinginvites/internal/invites"
	"weddinginvites/internal/report"
)

func reportCommand() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Fetch the RSVP summary and write it as an Excel workbook.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out-dir", Value: "rsvp_report"},
		},
		Action: func(c *cli.Context) error {
			logger, closeLog, err := newLogger(c)
			if err != nil {
				return err
			}
			defer closeLog()
			logger.Info("Starting RSVP report generation")

			apiCfg, err := config.LoadAPI()
			if err != nil {
				return err
			}
			summary, err := invites.NewClient(logger, apiCfg).FetchRSVPSummary(c.Context)
			if err != nil {
				return err
			}

			path := filepath.Join(c.String("out-dir"), report.FileName(time.Now()))
			if err := report.Write(path, summary); err != nil {
				return err
			}
			logger.Info("Excel report generated", "path", path)

			report.Print(os.Stdout, report.Summarize(summary))
			fmt.Printf("Excel report saved to: %s\n", path)
			return nil
		},
	}
}

func dietaryCommand() *cli.Command {
	return &cli.Command{
		Name:  "dietary",
		Usage: "Export guests with dietary requirements from the invite database.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Value: filepath.Join("out_db_calls", "guests_with_dietary_requirements_cleaned.csv")},
		},
		Action: func(c *cli.Context) error {
			logger, closeLog, err := newLogger(c)
			if err != nil {
				return err
			}
			defer closeLog()

			mongoCfg, err := config.LoadMongo()
			if err != nil {
				return err
			}
			src, err := dietary.NewMongoSource(c.Context, logger, mongoCfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := src.Close(c.Context); err != nil {
					logger.Warn("Failed to disconnect from invite database", "error", err)
				}
			}()

			out := c.String("out")
			count, err := dietary.Export(c.Context, src, dietary.NewNormalizer(mongoCfg.Exclude), out)
			if err != nil {
				return err
			}
			fmt.Printf("Exported %d guests with meaningful dietary requirements to %s\n", count, out)
			return nil
		},
	}
}
