package notes

import (
	"context"
	"fmt"
	"strings"

	"github.com/jomei/notionapi"

	"github.com/satinder147/expense-tracker/internal/logger"
)

// titleProperty is the name of the title column in the notes database.
const titleProperty = "Name"

// maxBlockLen keeps paragraph blocks under the notes API's rich-text content
// limit. The report body is split on line boundaries.
const maxBlockLen = 1900

// Publisher replaces the period note in a notes database.
type Publisher struct {
	svc        Service
	databaseID string
}

// NewPublisher creates a Publisher writing into the given database.
func NewPublisher(svc Service, databaseID string) *Publisher {
	return &Publisher{svc: svc, databaseID: databaseID}
}

// ReplaceNote archives every note whose title equals title and creates a
// fresh pinned note holding body. Running it twice for the same period leaves
// exactly one note.
func (p *Publisher) ReplaceNote(ctx context.Context, title, body string) error {
	log := logger.FromContext(ctx)

	pages, err := p.findByTitle(ctx, title)
	if err != nil {
		return fmt.Errorf("find note %q: %w", title, err)
	}
	for _, page := range pages {
		if err := p.svc.ArchivePage(ctx, string(page.ID)); err != nil {
			return fmt.Errorf("delete note %q: %w", title, err)
		}
		log.Info().Str("page_id", string(page.ID)).Str("title", title).Msg("archived previous period note")
	}

	req := &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(p.databaseID),
		},
		Properties: notionapi.Properties{
			titleProperty: notionapi.TitleProperty{
				Title: []notionapi.RichText{
					{Text: &notionapi.Text{Content: title}},
				},
			},
			"Pinned": notionapi.CheckboxProperty{
				Checkbox: true,
			},
		},
		Children: bodyBlocks(body),
	}
	if _, err := p.svc.CreatePage(ctx, req); err != nil {
		return fmt.Errorf("create note %q: %w", title, err)
	}

	log.Info().Str("title", title).Msg("created period note")
	return nil
}

// findByTitle walks the whole database and returns the pages whose title
// matches exactly.
func (p *Publisher) findByTitle(ctx context.Context, title string) ([]notionapi.Page, error) {
	var matches []notionapi.Page
	req := &notionapi.DatabaseQueryRequest{PageSize: 100}
	for {
		resp, err := p.svc.QueryDatabase(ctx, p.databaseID, req)
		if err != nil {
			return nil, err
		}
		for _, page := range resp.Results {
			if pageTitle(page) == title {
				matches = append(matches, page)
			}
		}
		if !resp.HasMore {
			return matches, nil
		}
		req.StartCursor = notionapi.Cursor(resp.NextCursor)
	}
}

// pageTitle extracts the plain title of a page, or "" when it has none.
func pageTitle(page notionapi.Page) string {
	prop, ok := page.Properties[titleProperty]
	if !ok {
		return ""
	}
	tp, ok := prop.(*notionapi.TitleProperty)
	if !ok {
		return ""
	}
	var b strings.Builder
	for _, rt := range tp.Title {
		if rt.PlainText != "" {
			b.WriteString(rt.PlainText)
		} else if rt.Text != nil {
			b.WriteString(rt.Text.Content)
		}
	}
	return b.String()
}

// bodyBlocks splits the report into paragraph blocks on line boundaries so no
// block exceeds the content limit.
func bodyBlocks(body string) []notionapi.Block {
	var blocks []notionapi.Block
	for _, chunk := range splitLines(body, maxBlockLen) {
		blocks = append(blocks, &notionapi.ParagraphBlock{
			BasicBlock: notionapi.BasicBlock{
				Object: notionapi.ObjectTypeBlock,
				Type:   notionapi.BlockTypeParagraph,
			},
			Paragraph: notionapi.Paragraph{
				RichText: []notionapi.RichText{
					{Text: &notionapi.Text{Content: chunk}},
				},
			},
		})
	}
	return blocks
}

// splitLines cuts s into chunks of at most max bytes, breaking only at
// newlines (a single oversized line becomes its own chunk).
func splitLines(s string, max int) []string {
	var chunks []string
	var cur strings.Builder
	for _, line := range strings.SplitAfter(s, "\n") {
		if line == "" {
			continue
		}
		if cur.Len() > 0 && cur.Len()+len(line) > max {
			chunks = append(chunks, cur.String())
			cur.Reset()
		}
		cur.WriteString(line)
	}
	if cur.Len() > 0 {
		chunks = append(chunks, cur.String())
	}
	return chunks
}
