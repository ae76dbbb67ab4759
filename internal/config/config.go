package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/satinder147/expense-tracker/internal/domain"
)

// Config holds everything one run of the tracker needs. The original
// deployment configures the run through lowercase environment variables
// (it started life as a Lambda with `username`/`app_password` in its
// environment); that contract is kept here.
type Config struct {
	// Bucket is the storage bucket holding raw .eml objects.
	Bucket string
	// WorkDir is the local directory mail is fetched into. It is wiped and
	// recreated at the start of every run.
	WorkDir string
	// PeriodStart is the reporting cutoff; transactions before it are
	// excluded. Defaults to midnight on the first day of the current month.
	PeriodStart time.Time
	// Username and AppPassword authenticate against the mailbox and notes
	// collaborators.
	Username    string
	AppPassword string
	// NotesDBID is the notes database the period report is published into.
	NotesDBID string
	// SelfTransferID marks transfers to an own account; vendors containing it
	// are excluded from spend.
	SelfTransferID string
	// IMAPAddr, when set, switches the mail source from the storage bucket to
	// an IMAP mailbox at this host:port. IMAPSubject narrows the search.
	IMAPAddr    string
	IMAPSubject string
}

// Load reads configuration from environment variables (with optional .env
// file) and validates all required fields. Returns an error if any required
// configuration is missing or invalid.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	var errs []error

	cfg.Bucket = getEnvOrDefault("bucket", "satinder-bank-emails")
	cfg.WorkDir = getEnvOrDefault("email_dir", filepath.Join(os.TempDir(), "emails"))
	cfg.SelfTransferID = getEnvOrDefault("self_transfer_id", "8698602278")
	cfg.IMAPAddr = os.Getenv("imap_addr")
	cfg.IMAPSubject = os.Getenv("imap_subject")

	cfg.Username = os.Getenv("username")
	if cfg.Username == "" {
		errs = append(errs, fmt.Errorf("username is required"))
	}
	cfg.AppPassword = os.Getenv("app_password")
	if cfg.AppPassword == "" {
		errs = append(errs, fmt.Errorf("app_password is required"))
	}
	cfg.NotesDBID = os.Getenv("notes_db_id")
	if cfg.NotesDBID == "" {
		errs = append(errs, fmt.Errorf("notes_db_id is required"))
	}

	cfg.PeriodStart = domain.PeriodStart(time.Now())
	if raw := os.Getenv("period_start"); raw != "" {
		start, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			errs = append(errs, fmt.Errorf("period_start: expected YYYY-MM-DD, got %q", raw))
		} else {
			cfg.PeriodStart = start
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
