// Package workflow runs the per-row invitation pipeline:
// parse guests, create the invite, build links, render and dispatch.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"weddinginvites/internal/guests"
	"weddinginvites/internal/invites"
	"weddinginvites/internal/mailer"
	"weddinginvites/internal/models"
	"weddinginvites/internal/render"
)

// ErrNoRecipients is recorded for rows without an email address.
var ErrNoRecipients = errors.New("row has no email address")

// InviteCreator persists an invite group and returns its id.
type InviteCreator interface {
	CreateInvite(ctx context.Context, group models.InviteGroup) (string, error)
}

// Sender delivers one rendered message.
type Sender interface {
	Send(ctx context.Context, msg mailer.Message) mailer.Outcome
}

// Options configures a Workflow.
type Options struct {
	Event         models.EventConfig
	CreateInvites bool
	DryRun        bool
	ImagePath     string
	Linker        invites.Linker
	Now           func() time.Time
}

// Workflow processes guest rows for a single event mailing.
type Workflow struct {
	logger   *slog.Logger
	invites  InviteCreator
	sender   Sender
	renderer *render.Renderer
	opts     Options
}

// New creates a Workflow. creator may be nil when opts.CreateInvites is false.
func New(logger *slog.Logger, creator InviteCreator, sender Sender, renderer *render.Renderer, opts Options) (*Workflow, error) {
	if opts.CreateInvites && creator == nil {
		return nil, errors.New("invite creation enabled without an invite store")
	}
	if sender == nil && !opts.DryRun {
		return nil, errors.New("no mail sender configured")
	}
	if !renderer.Has(opts.Event.Template) {
		return nil, fmt.Errorf("unknown message template %q", opts.Event.Template)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Workflow{
		logger:   logger,
		invites:  creator,
		sender:   sender,
		renderer: renderer,
		opts:     opts,
	}, nil
}

// Run processes rows in order. Every row yields exactly one result; a failing
// row never stops the rows after it.
func (w *Workflow) Run(ctx context.Context, rows []models.Row) []models.DispatchResult {
	w.logger.Info("Starting mailing.", "event", w.opts.Event.Key, "rows", len(rows), "createInvites", w.opts.CreateInvites, "dryRun", w.opts.DryRun)

	results := make([]models.DispatchResult, 0, len(rows))
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			results = append(results, w.failed(row, nil, nil, err))
			continue
		}
		results = append(results, w.processRow(ctx, row))
	}

	summary := Summarize(results)
	w.logger.Info("Mailing finished.", "total", summary.Total, "sent", summary.Sent, "failed", summary.Failed)
	return results
}

// processRow runs one row through every stage and records the outcome.
func (w *Workflow) processRow(ctx context.Context, row models.Row) models.DispatchResult {
	names := guests.SplitList(row.Guests)
	emails := guests.SplitList(row.Emails)
	w.logger.Info("Processing row", "row", row.Index, "guests", names)

	greeting, err := render.FormatGreeting(names)
	if err != nil {
		return w.failed(row, names, emails, err)
	}
	records, err := guests.Parse(names)
	if err != nil {
		return w.failed(row, names, emails, err)
	}
	if len(emails) == 0 {
		return w.failed(row, names, emails, ErrNoRecipients)
	}

	result := w.baseResult(names, emails)

	inviteID := ""
	if w.opts.CreateInvites {
		if w.opts.DryRun {
			w.logger.Info("[DRY RUN] Would create invite", "row", row.Index, "guests", names)
		} else {
			inviteID, err = w.invites.CreateInvite(ctx, models.InviteGroup{
				Guests:          records,
				GivenPlusOne:    guests.PlusOne(row.PlusOne),
				InvitedLocation: w.opts.Event.InvitedLocation,
			})
			if err != nil {
				return w.failed(row, names, emails, err)
			}
		}
	}

	links := w.opts.Linker.Build(w.opts.Event, inviteID)
	result.InviteID = inviteID
	result.InviteLink = links.Invite
	result.GoogleLink = links.Google
	result.DownloadLink = links.Download

	subs := render.Substitutions{
		Greeting:     greeting,
		Title:        w.opts.Event.Title,
		Date:         w.opts.Event.DisplayDate,
		InviteLink:   links.Invite,
		GoogleLink:   links.Google,
		DownloadLink: links.Download,
	}.WithPlusOne(guests.PlusOne(row.PlusOne))
	if w.opts.ImagePath != "" {
		subs.ImageCID = w.opts.Event.ImageContentID
	}

	body, err := w.renderer.Render(w.opts.Event.Template, subs)
	if err != nil {
		return w.withError(row, result, err)
	}

	if w.opts.DryRun {
		w.logger.Info("[DRY RUN] Would send email", "row", row.Index, "to", emails, "subject", w.opts.Event.Subject)
		return result
	}

	msg := mailer.Message{
		To:      emails,
		Subject: w.opts.Event.Subject,
		HTML:    body,
	}
	if w.opts.ImagePath != "" && w.opts.Event.ImageContentID != "" {
		msg.Image = &mailer.InlineImage{Path: w.opts.ImagePath, ContentID: w.opts.Event.ImageContentID}
	}

	outcome := w.sender.Send(ctx, msg)
	if !outcome.Sent {
		if inviteID != "" {
			w.logger.Warn("Invite created but email not sent; follow up manually", "row", row.Index, "inviteId", inviteID)
		}
		return w.withError(row, result, outcome.Err)
	}

	result.EmailSent = true
	return result
}

func (w *Workflow) baseResult(names, emails []string) models.DispatchResult {
	return models.DispatchResult{
		Guests:    strings.Join(names, ", "),
		Emails:    emails,
		Timestamp: w.opts.Now(),
	}
}

func (w *Workflow) failed(row models.Row, names, emails []string, err error) models.DispatchResult {
	result := w.baseResult(names, emails)
	if result.Guests == "" {
		result.Guests = row.Guests
	}
	return w.withError(row, result, err)
}

func (w *Workflow) withError(row models.Row, result models.DispatchResult, err error) models.DispatchResult {
	if err == nil {
		err = errors.New("unknown failure")
	}
	w.logger.Error("Error processing row", "row", row.Index, "error", err)
	result.EmailSent = false
	result.Error = err.Error()
	return result
}
