package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	gcs "cloud.google.com/go/storage"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/iterator"

	"github.com/satinder147/expense-tracker/internal/logger"
)

// defaultWorkers bounds the parallel object downloads.
const defaultWorkers = 8

// istOffset converts object timestamps to IST wall-clock time. Bucket mtimes
// come back in UTC while the reporting cutoff is naive local time.
const istOffset = 5*time.Hour + 30*time.Minute

// Bucket is the mail source backed by a storage bucket of raw .eml objects.
type Bucket struct {
	Name    string
	Workers int // parallel downloads; defaults to defaultWorkers
}

// Fetch lists every object modified at or after the cutoff and downloads each
// into dir, one local file per object. Listing failures abort the run; an
// individual download failure is logged and skipped.
func (b *Bucket) Fetch(ctx context.Context, dir string, since time.Time) error {
	log := logger.FromContext(ctx)

	client, err := gcs.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("create storage client: %w", err)
	}
	defer client.Close()

	keys, err := b.list(ctx, client, since)
	if err != nil {
		return err
	}
	log.Info().Int("objects", len(keys)).Str("bucket", b.Name).Msg("listed mail objects")

	workers := b.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, key := range keys {
		g.Go(func() error {
			if err := b.download(gctx, client, key, dir); err != nil {
				log.Warn().Err(err).Str("object", key).Msg("skipping object")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	log.Info().Dur("elapsed", time.Since(start)).Int("objects", len(keys)).Msg("downloaded mail objects")
	return nil
}

// list returns the keys of all objects whose updated time, viewed as IST
// wall-clock time, is at or after the cutoff.
func (b *Bucket) list(ctx context.Context, client *gcs.Client, since time.Time) ([]string, error) {
	var keys []string
	it := client.Bucket(b.Name).Objects(ctx, nil)
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list bucket %s: %w", b.Name, err)
		}
		if modifiedIST(attrs.Updated, since.Location()).Before(since) {
			continue
		}
		keys = append(keys, attrs.Name)
	}
	return keys, nil
}

func (b *Bucket) download(ctx context.Context, client *gcs.Client, key, dir string) error {
	r, err := client.Bucket(b.Name).Object(key).NewReader(ctx)
	if err != nil {
		return fmt.Errorf("open object %s: %w", key, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read object %s: %w", key, err)
	}
	if err := os.WriteFile(filepath.Join(dir, path.Base(key)), data, 0o644); err != nil {
		return fmt.Errorf("write object %s: %w", key, err)
	}
	return nil
}

// modifiedIST shifts a UTC timestamp by the fixed IST offset and rebuilds it
// in loc, so it compares against the naive cutoff as wall-clock time.
func modifiedIST(t time.Time, loc *time.Location) time.Time {
	u := t.UTC().Add(istOffset)
	return time.Date(u.Year(), u.Month(), u.Day(), u.Hour(), u.Minute(), u.Second(), u.Nanosecond(), loc)
}
