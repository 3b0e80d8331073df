package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"golang.org/x/oauth2"

	"weddinginvites/internal/config"
	"weddinginvites/internal/events"
	"weddinginvites/internal/google"
	"weddinginvites/internal/icloud"
	"weddinginvites/internal/ics"
	"weddinginvites/internal/publish"
)

func icsCommand() *cli.Command {
	return &cli.Command{
		Name:  "ics",
		Usage: "Write a calendar file for an event.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "event", Value: events.CanadaInvite, Usage: "Preset supplying defaults for unset fields."},
			&cli.StringFlag{Name: "title"},
			&cli.StringFlag{Name: "start", Usage: "Local start, " + ics.LocalLayout + ", in EVENT_TIMEZONE."},
			&cli.StringFlag{Name: "end", Usage: "Local end, " + ics.LocalLayout + ", in EVENT_TIMEZONE."},
			&cli.StringFlag{Name: "location"},
			&cli.StringFlag{Name: "description"},
			&cli.StringFlag{Name: "out", Value: "wedding_invite.ics"},
		},
		Action: func(c *cli.Context) error {
			logger, closeLog, err := newLogger(c)
			if err != nil {
				return err
			}
			defer closeLog()

			preset, err := events.Lookup(c.String("event"))
			if err != nil {
				return err
			}
			event, err := events.Event(preset, ics.NewUID())
			if err != nil {
				return err
			}

			if c.IsSet("start") || c.IsSet("end") {
				if !c.IsSet("start") || !c.IsSet("end") {
					return errors.New("--start and --end must be given together")
				}
				calCfg, err := config.LoadCalendar()
				if err != nil {
					return err
				}
				loc, err := calCfg.Location()
				if err != nil {
					return err
				}
				if event.StartTime, err = ics.ParseLocal(c.String("start"), loc); err != nil {
					return err
				}
				if event.EndTime, err = ics.ParseLocal(c.String("end"), loc); err != nil {
					return err
				}
			}
			if c.IsSet("title") {
				event.Title = c.String("title")
			}
			if c.IsSet("location") {
				event.Location = c.String("location")
			}
			if c.IsSet("description") {
				event.Description = c.String("description")
			}

			path, err := ics.Generator{Clock: ics.RealClock{}}.WriteFile(c.String("out"), event)
			if err != nil {
				return err
			}
			logger.Info("ICS file saved.", "path", path, "uid", event.UID)
			fmt.Printf("ICS file saved successfully at %s\n", path)
			return nil
		},
	}
}

func publishCommand() *cli.Command {
	return &cli.Command{
		Name:  "publish",
		Usage: "Publish an event preset to Google Calendar and/or a CalDAV calendar.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "event", Value: events.CanadaInvite},
			&cli.StringSliceFlag{Name: "target", Value: cli.NewStringSlice("google"), Usage: "google, caldav (repeatable)."},
			&cli.StringFlag{Name: "account", Usage: "Google token account; defaults to the only saved one."},
			&cli.StringFlag{Name: "token-dir", Value: ".", Usage: "Directory holding token-<account>.json files."},
			&cli.StringFlag{Name: "state-file", Value: publish.DefaultStateFile},
			&cli.BoolFlag{Name: "dry-run", Usage: "Log what would be published without making changes."},
		},
		Action: func(c *cli.Context) error {
			logger, closeLog, err := newLogger(c)
			if err != nil {
				return err
			}
			defer closeLog()

			preset, err := events.Lookup(c.String("event"))
			if err != nil {
				return err
			}
			calCfg, err := config.LoadCalendar()
			if err != nil {
				return err
			}
			if c.Bool("dry-run") {
				logger.Info("Performing a dry run. No changes will be made.")
			}

			var targets []publish.NamedTarget
			for _, name := range c.StringSlice("target") {
				switch name {
				case "google":
					account, err := resolveAccount(c.String("token-dir"), c.String("account"))
					if err != nil {
						return err
					}
					client, err := google.NewClient(c.Context, logger, calCfg, c.String("token-dir"), account)
					if err != nil {
						return fmt.Errorf("failed to create google client for account %s: %w", account, err)
					}
					targets = append(targets, publish.NamedTarget{Name: "google", Target: client})
				case "caldav":
					client, err := icloud.NewClient(c.Context, logger, calCfg)
					if err != nil {
						return fmt.Errorf("failed to create caldav client: %w", err)
					}
					targets = append(targets, publish.NamedTarget{Name: "caldav", Target: client})
				default:
					return fmt.Errorf("unknown target %q", name)
				}
			}

			p, err := publish.NewPublisher(logger, targets, c.String("state-file"), c.Bool("dry-run"))
			if err != nil {
				return err
			}
			return p.Publish(c.Context, preset)
		},
	}
}

func resolveAccount(dir, account string) (string, error) {
	if account != "" {
		return account, nil
	}
	accounts, err := google.GetTokenAccounts(dir)
	if err != nil {
		return "", fmt.Errorf("could not find any google accounts, did you run auth command? %w", err)
	}
	switch len(accounts) {
	case 0:
		return "", errors.New("no google accounts found. Run the 'auth' command first")
	case 1:
		return accounts[0], nil
	default:
		return "", fmt.Errorf("several google accounts found (%s), choose one with --account", strings.Join(accounts, ", "))
	}
}

func authCommand() *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Authenticate with a Google account to get an API token.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "token-dir", Value: "."},
		},
		Action: func(c *cli.Context) error {
			logger, closeLog, err := newLogger(c)
			if err != nil {
				return err
			}
			defer closeLog()
			logger.Info("Starting Google authentication flow.")

			calCfg, err := config.LoadCalendar()
			if err != nil {
				return err
			}
			oauthCfg, err := google.GetOAuthConfigForAuthFlow(calCfg.GoogleClientID, calCfg.GoogleClientSecret)
			if err != nil {
				return fmt.Errorf("failed to get google oauth config: %w", err)
			}

			authURL := oauthCfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
			fmt.Printf("Go to the following link in your browser then type the "+
				"authorization code: \n%v\n", authURL)

			fmt.Print("Enter Authorization Code: ")
			reader := bufio.NewReader(os.Stdin)
			authCode, _ := reader.ReadString('\n')
			authCode = strings.TrimSpace(authCode)

			token, err := google.TokenFromWeb(c.Context, oauthCfg, authCode)
			if err != nil {
				return fmt.Errorf("unable to retrieve token from web: %w", err)
			}

			fmt.Print("Enter a name for this account (e.g., 'nick', 'tash'): ")
			accountName, _ := reader.ReadString('\n')
			accountName = strings.TrimSpace(accountName)
			if accountName == "" {
				return errors.New("account name must not be empty")
			}
			tokenFile := google.TokenFile(c.String("token-dir"), accountName)

			if err := google.SaveToken(tokenFile, token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			logger.Info("Successfully authenticated and saved token.", "file", tokenFile)
			return nil
		},
	}
}
