package notes

import (
	"context"
	"fmt"

	"github.com/jomei/notionapi"
)

// Service is the slice of the notes API the publisher needs. It exists so
// tests can run against a fake workspace.
type Service interface {
	// QueryDatabase returns one page of results from the notes database.
	QueryDatabase(ctx context.Context, databaseID string, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error)

	// CreatePage creates a new page in the notes database.
	CreatePage(ctx context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error)

	// ArchivePage archives (deletes) a page.
	ArchivePage(ctx context.Context, pageID string) error
}

// Client is the Notion-backed implementation of Service.
type Client struct {
	client *notionapi.Client
}

// NewClient creates a new Client authenticated with the provided token.
func NewClient(token string) *Client {
	return &Client{
		client: notionapi.NewClient(notionapi.Token(token)),
	}
}

func (c *Client) QueryDatabase(ctx context.Context, databaseID string, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
	resp, err := c.client.Database.Query(ctx, notionapi.DatabaseID(databaseID), req)
	if err != nil {
		return nil, fmt.Errorf("QueryDatabase: %w", err)
	}
	return resp, nil
}

func (c *Client) CreatePage(ctx context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error) {
	page, err := c.client.Page.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("CreatePage: %w", err)
	}
	return page, nil
}

func (c *Client) ArchivePage(ctx context.Context, pageID string) error {
	req := &notionapi.PageUpdateRequest{
		Archived: true,
	}
	if _, err := c.client.Page.Update(ctx, notionapi.PageID(pageID), req); err != nil {
		return fmt.Errorf("ArchivePage: %w", err)
	}
	return nil
}
