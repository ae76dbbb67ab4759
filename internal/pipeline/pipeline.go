package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/satinder147/expense-tracker/internal/config"
	"github.com/satinder147/expense-tracker/internal/domain"
	"github.com/satinder147/expense-tracker/internal/extract"
	"github.com/satinder147/expense-tracker/internal/logger"
	"github.com/satinder147/expense-tracker/internal/mailbox"
	"github.com/satinder147/expense-tracker/internal/report"
)

// Source fetches raw mail for the run into the working directory, one file
// per message. Implementations: the storage bucket and the IMAP mailbox.
type Source interface {
	Fetch(ctx context.Context, dir string, since time.Time) error
}

// Publisher replaces the period note with the rendered report.
type Publisher interface {
	ReplaceNote(ctx context.Context, title, body string) error
}

// Pipeline runs one full reporting cycle.
type Pipeline struct {
	source    Source
	publisher Publisher
	registry  *extract.Registry
	cfg       *config.Config
}

// New wires a Pipeline from its collaborators.
func New(source Source, publisher Publisher, cfg *config.Config) *Pipeline {
	return &Pipeline{
		source:    source,
		publisher: publisher,
		registry:  extract.NewRegistry(),
		cfg:       cfg,
	}
}

// Run executes fetch -> extract -> aggregate -> format -> publish. Transport
// and auth failures abort; per-message extraction mismatches are logged and
// skipped.
func (p *Pipeline) Run(ctx context.Context) error {
	runID := uuid.NewString()
	log := logger.FromContext(ctx).With().Str("run_id", runID).Logger()
	ctx = logger.WithContext(ctx, log)

	// 1. Every run starts from a clean local working set.
	if err := resetDir(p.cfg.WorkDir); err != nil {
		return err
	}

	// 2. Fetch raw mail received since the period started.
	if err := p.source.Fetch(ctx, p.cfg.WorkDir, p.cfg.PeriodStart); err != nil {
		return fmt.Errorf("fetch mail: %w", err)
	}

	// 3. Extract a transaction from every message that matches a template.
	txs, err := p.collect(ctx)
	if err != nil {
		return err
	}

	// 4. Aggregate: exclusion policy and display trimming.
	txs = report.Aggregate(txs, p.cfg.PeriodStart, p.cfg.SelfTransferID)
	if len(txs) == 0 {
		log.Info().Msg("no transactions in period, nothing to publish")
		return nil
	}

	// 5. Publish the period note.
	title := domain.PeriodName(p.cfg.PeriodStart)
	if err := p.publisher.ReplaceNote(ctx, title, report.Format(txs)); err != nil {
		return fmt.Errorf("publish report: %w", err)
	}

	log.Info().Str("note", title).Int("transactions", len(txs)).Msg("published period report")
	return nil
}

// collect decodes every fetched message and runs the template registry over
// it. Messages that cannot be decoded or match no template contribute no
// transaction; that is expected and never fails the run.
func (p *Pipeline) collect(ctx context.Context) ([]domain.Transaction, error) {
	log := logger.FromContext(ctx)

	entries, err := os.ReadDir(p.cfg.WorkDir)
	if err != nil {
		return nil, fmt.Errorf("read working directory: %w", err)
	}

	var txs []domain.Transaction
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(p.cfg.WorkDir, entry.Name()))
		if err != nil {
			log.Warn().Err(err).Str("mail", entry.Name()).Msg("unreadable mail, skipping")
			continue
		}
		body, err := mailbox.Body(raw)
		if err != nil {
			log.Debug().Err(err).Str("mail", entry.Name()).Msg("no decodable text part, skipping")
			continue
		}
		tx, ok := p.registry.Match(body)
		if !ok {
			log.Debug().Str("mail", entry.Name()).Msg("no template matched, skipping")
			continue
		}
		txs = append(txs, tx)
	}

	log.Info().Int("messages", len(entries)).Int("transactions", len(txs)).Msg("extracted transactions")
	return txs, nil
}

func resetDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("purge working directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create working directory: %w", err)
	}
	return nil
}
