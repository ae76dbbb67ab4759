package mailbox

import (
	"context"
	"fmt"
	"io"
	"net/textproto"
	"os"
	"path/filepath"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"

	"github.com/satinder147/expense-tracker/internal/logger"
)

// Client fetches bank-alert messages from an IMAP mailbox. It is the
// alternate mail source when the bucket archive is not in use.
type Client struct {
	Addr     string // host:port, TLS
	Username string
	Password string
	Subject  string // optional subject filter for the search
}

// Fetch searches INBOX for messages sent since the cutoff (narrowed by the
// subject filter when set) and writes each raw message into dir, one file per
// message. Login and search failures abort the run; a single message that
// cannot be read is logged and skipped.
//
// IMAP SENT-SINCE matches on the date portion only, in the server's timezone,
// so the window can drift from the storage source's modified-after filter by
// up to a day. The aggregator's own period filter on transaction time is the
// correctness backstop.
func (c *Client) Fetch(ctx context.Context, dir string, since time.Time) error {
	log := logger.FromContext(ctx)

	cl, err := client.DialTLS(c.Addr, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", c.Addr, err)
	}
	defer cl.Logout()

	if err := cl.Login(c.Username, c.Password); err != nil {
		return fmt.Errorf("mailbox login: %w", err)
	}
	if _, err := cl.Select("INBOX", true); err != nil {
		return fmt.Errorf("select INBOX: %w", err)
	}

	criteria := imap.NewSearchCriteria()
	criteria.SentSince = since
	if c.Subject != "" {
		criteria.Header = textproto.MIMEHeader{"Subject": {c.Subject}}
	}
	ids, err := cl.Search(criteria)
	if err != nil {
		return fmt.Errorf("mailbox search: %w", err)
	}
	if len(ids) == 0 {
		log.Info().Time("since", since).Msg("no matching messages in mailbox")
		return nil
	}

	seqset := new(imap.SeqSet)
	seqset.AddNum(ids...)
	section := &imap.BodySectionName{Peek: true}
	items := []imap.FetchItem{section.FetchItem()}

	messages := make(chan *imap.Message, 10)
	done := make(chan error, 1)
	go func() {
		done <- cl.Fetch(seqset, items, messages)
	}()

	fetched := 0
	for msg := range messages {
		r := msg.GetBody(section)
		if r == nil {
			log.Warn().Uint32("seq", msg.SeqNum).Msg("message has no body section, skipping")
			continue
		}
		raw, err := io.ReadAll(r)
		if err != nil {
			log.Warn().Err(err).Uint32("seq", msg.SeqNum).Msg("reading message, skipping")
			continue
		}
		name := fmt.Sprintf("%d.eml", msg.SeqNum)
		if err := os.WriteFile(filepath.Join(dir, name), raw, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		fetched++
	}
	if err := <-done; err != nil {
		return fmt.Errorf("mailbox fetch: %w", err)
	}

	log.Info().Int("messages", fetched).Time("since", since).Msg("fetched messages from mailbox")
	return nil
}
