// Package publish pushes event presets to calendar targets and remembers the
// UID issued for each preset so later runs update the same entry.
package publish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"weddinginvites/internal/events"
	"weddinginvites/internal/ics"
	"weddinginvites/internal/models"
)

// DefaultStateFile is where issued UIDs are kept between runs.
const DefaultStateFile = "publish-state.json"

// Target is a calendar that accepts events.
type Target interface {
	PublishEvent(ctx context.Context, event models.Event) error
}

// NamedTarget labels a Target for logging.
type NamedTarget struct {
	Name   string
	Target Target
}

// State maps an event preset key to the UID it was published under.
type State map[string]string

// Publisher publishes presets to every configured target.
type Publisher struct {
	logger    *slog.Logger
	targets   []NamedTarget
	stateFile string
	state     State
	dryRun    bool
	newUID    func() string
}

// NewPublisher loads the state file, starting fresh when it does not exist.
func NewPublisher(logger *slog.Logger, targets []NamedTarget, stateFile string, dryRun bool) (*Publisher, error) {
	if stateFile == "" {
		stateFile = DefaultStateFile
	}
	state, err := loadState(stateFile)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load publish state: %w", err)
		}
		logger.Info("No publish state file found, starting fresh.", "file", stateFile)
		state = make(State)
	}

	return &Publisher{
		logger:    logger,
		targets:   targets,
		stateFile: stateFile,
		state:     state,
		dryRun:    dryRun,
		newUID:    ics.NewUID,
	}, nil
}

// Publish sends the preset to every target. A failing target is logged and
// the rest still run; the returned error joins all target failures.
func (p *Publisher) Publish(ctx context.Context, cfg models.EventConfig) error {
	uid, known := p.state[cfg.Key]
	if !known {
		uid = p.newUID()
		p.logger.Info("Issued new event UID.", "event", cfg.Key, "uid", uid)
	}

	event, err := events.Event(cfg, uid)
	if err != nil {
		return err
	}

	var errs []error
	published := 0
	for _, t := range p.targets {
		if p.dryRun {
			p.logger.Info("[DRY RUN] Would publish event", "target", t.Name, "title", event.Title, "startTime", event.StartTime)
			continue
		}
		if err := t.Target.PublishEvent(ctx, event); err != nil {
			p.logger.Error("Failed to publish event", "target", t.Name, "title", event.Title, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", t.Name, err))
			continue
		}
		published++
	}

	if published > 0 && !known {
		p.state[cfg.Key] = uid
		if err := p.saveState(); err != nil {
			p.logger.Error("Failed to save publish state", "error", err)
		}
	}

	p.logger.Info("Publishing finished.", "event", cfg.Key, "targets", len(p.targets), "published", published)
	return errors.Join(errs...)
}

func loadState(path string) (State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	if state == nil {
		state = make(State)
	}
	return state, nil
}

func (p *Publisher) saveState() error {
	data, err := json.MarshalIndent(p.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal publish state: %w", err)
	}
	return os.WriteFile(p.stateFile, data, 0o644)
}
