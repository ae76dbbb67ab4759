package mailbox

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/emersion/go-message"
	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"
)

// ErrNoTextPart is returned when a message carries no decodable text part.
// Upstream this is treated like an extraction mismatch: the message simply
// contributes no transaction.
var ErrNoTextPart = errors.New("no decodable text part in message")

// Body parses a raw RFC 822 message and returns every text/plain and
// text/html part decoded and concatenated into one string. Bank alerts ship
// the same content in both parts; the extractors only need the markers to
// appear somewhere in the combined text. Part bodies are charset-decoded
// (the alerts arrive as ISO-8859-1).
func Body(raw []byte) (string, error) {
	mr, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil && !message.IsUnknownCharset(err) {
		return "", fmt.Errorf("parse message: %w", err)
	}
	defer mr.Close()

	var b strings.Builder
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			if message.IsUnknownCharset(err) {
				continue
			}
			return "", fmt.Errorf("read message part: %w", err)
		}

		h, ok := p.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}
		mediaType, _, err := h.ContentType()
		if err != nil {
			continue
		}
		if mediaType != "text/plain" && mediaType != "text/html" {
			continue
		}
		data, err := io.ReadAll(p.Body)
		if err != nil {
			return "", fmt.Errorf("decode %s part: %w", mediaType, err)
		}
		b.Write(data)
	}

	if b.Len() == 0 {
		return "", ErrNoTextPart
	}
	return b.String(), nil
}
