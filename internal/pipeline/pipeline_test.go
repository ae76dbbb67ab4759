package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satinder147/expense-tracker/internal/config"
)

const hdfcCreditMail = "From: alerts@hdfcbank.net\r\n" +
	"Subject: Credit card transaction alert\r\n" +
	"Content-Type: text/plain; charset=ISO-8859-1\r\n" +
	"\r\n" +
	"Thank you for using your HDFC Bank Credit Card ending 0578 for Rs 649.00 at PAYTM MALL on 04-05-2023 20:41:07.\r\n"

const upiSelfTransferMail = "From: alerts@hdfcbank.net\r\n" +
	"Subject: UPI txn alert\r\n" +
	"Content-Type: text/plain; charset=ISO-8859-1\r\n" +
	"\r\n" +
	"Rs.5000.00 has been debited from account **1811 to VPA 8698602278@upi on 05-05-23.\r\n"

const upiMail = "From: alerts@hdfcbank.net\r\n" +
	"Subject: UPI txn alert\r\n" +
	"Content-Type: text/plain; charset=ISO-8859-1\r\n" +
	"\r\n" +
	"Rs.210.50 has been debited from account **1811 to VPA q674757157@ybl on 05-05-23.\r\n"

const otpMail = "From: alerts@hdfcbank.net\r\n" +
	"Subject: OTP\r\n" +
	"Content-Type: text/plain; charset=ISO-8859-1\r\n" +
	"\r\n" +
	"Your OTP for netbanking login is 482913.\r\n"

// fakeSource drops canned raw messages into the working directory.
type fakeSource struct {
	mails map[string]string
}

func (f *fakeSource) Fetch(_ context.Context, dir string, _ time.Time) error {
	for name, raw := range f.mails {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(raw), 0o644); err != nil {
			return err
		}
	}
	return nil
}

type fakePublisher struct {
	titles []string
	bodies []string
}

func (f *fakePublisher) ReplaceNote(_ context.Context, title, body string) error {
	f.titles = append(f.titles, title)
	f.bodies = append(f.bodies, body)
	return nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		WorkDir:        filepath.Join(t.TempDir(), "emails"),
		PeriodStart:    time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC),
		SelfTransferID: "8698602278",
	}
}

func TestRun_EndToEnd(t *testing.T) {
	cfg := testConfig(t)
	src := &fakeSource{mails: map[string]string{
		"1.eml": hdfcCreditMail,
		"2.eml": upiMail,
		"3.eml": upiSelfTransferMail, // excluded: self transfer
		"4.eml": otpMail,             // excluded: matches no template
		"5.eml": "garbage bytes",     // excluded: not a decodable message
	}}
	pub := &fakePublisher{}

	err := New(src, pub, cfg).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, pub.titles, 1)
	assert.Equal(t, "May-2023", pub.titles[0])

	body := pub.bodies[0]
	assert.Contains(t, body, "- 2023-05-04")
	assert.Contains(t, body, "paytm mall(0578)")
	assert.Contains(t, body, "- 2023-05-05")
	assert.Contains(t, body, "q674757157@ybl(1811)")
	assert.NotContains(t, body, "8698602278")
	assert.Contains(t, body, "card - 0578,  total - 649\n")
	assert.Contains(t, body, "card - 1811,  total - 210.5\n")
	assert.Contains(t, body, "total 859.5 \n")
}

func TestRun_NoTransactionsSkipsPublish(t *testing.T) {
	cfg := testConfig(t)
	src := &fakeSource{mails: map[string]string{"1.eml": otpMail}}
	pub := &fakePublisher{}

	err := New(src, pub, cfg).Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pub.titles, "an empty period must not replace the note")
}

func TestRun_PurgesStaleArtifacts(t *testing.T) {
	cfg := testConfig(t)

	// leftovers from a previous run
	require.NoError(t, os.MkdirAll(cfg.WorkDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.WorkDir, "stale.eml"), []byte(hdfcCreditMail), 0o644))

	src := &fakeSource{} // fetches nothing
	pub := &fakePublisher{}

	err := New(src, pub, cfg).Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pub.titles, "stale artifacts must not leak into a new run")
}

func TestRun_SourceFailureAborts(t *testing.T) {
	cfg := testConfig(t)
	pub := &fakePublisher{}

	err := New(failingSource{}, pub, cfg).Run(context.Background())
	require.Error(t, err)
	assert.Empty(t, pub.titles)
}

type failingSource struct{}

func (failingSource) Fetch(context.Context, string, time.Time) error {
	return os.ErrPermission
}
