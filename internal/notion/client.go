// Package notion mirrors newly created applications into a Notion database.
package notion

import (
	"context"
	"fmt"
	"net/http"
	"time"

	gnt "github.com/dstotijn/go-notion"

	"jobtracker-backend/internal/applications"
)

// Client writes pages into one Notion database.
type Client struct {
	api        *gnt.Client
	databaseID string
}

// New builds a Client for the given integration token and database.
func New(token, databaseID string) *Client {
	return newWithHTTPClient(token, databaseID, http.DefaultClient)
}

func newWithHTTPClient(token, databaseID string, hc *http.Client) *Client {
	return &Client{
		api:        gnt.NewClient(token, gnt.WithHTTPClient(hc)),
		databaseID: databaseID,
	}
}

// Ping runs a one-row query to check the database is reachable.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.api.QueryDatabase(ctx, c.databaseID, &gnt.DatabaseQuery{
		PageSize: 1,
	})
	return err
}

// MirrorApplication creates one page for app.
func (c *Client) MirrorApplication(ctx context.Context, app applications.Application) error {
	props := pageProperties(app)
	_, err := c.api.CreatePage(ctx, gnt.CreatePageParams{
		ParentType:             gnt.ParentTypeDatabase,
		ParentID:               c.databaseID,
		DatabasePageProperties: &props,
	})
	if err != nil {
		return fmt.Errorf("notion create page for application %d: %w", app.ID, err)
	}
	return nil
}

func richText(s string) []gnt.RichText {
	if s == "" {
		return nil
	}
	return []gnt.RichText{{Text: &gnt.Text{Content: s}}}
}

func selectOption(s string) *gnt.SelectOptions {
	if s == "" {
		return nil
	}
	return &gnt.SelectOptions{Name: s}
}

// pageProperties maps an application onto the tracker database columns.
// Position is the title column; empty values are left out.
func pageProperties(app applications.Application) gnt.DatabasePageProperties {
	props := gnt.DatabasePageProperties{}

	title := app.Position
	if title == "" {
		title = app.Company
	}
	props["Position"] = gnt.DatabasePageProperty{Title: richText(title)}

	if app.Company != "" {
		props["Company"] = gnt.DatabasePageProperty{RichText: richText(app.Company)}
	}
	if app.Location != "" {
		props["Location"] = gnt.DatabasePageProperty{RichText: richText(app.Location)}
	}
	if app.Salary != "" {
		props["Salary"] = gnt.DatabasePageProperty{RichText: richText(app.Salary)}
	}
	if app.Notes != "" {
		props["Notes"] = gnt.DatabasePageProperty{RichText: richText(app.Notes)}
	}
	if app.JobPostingURL != "" {
		url := app.JobPostingURL
		props["Job Posting"] = gnt.DatabasePageProperty{URL: &url}
	}
	if opt := selectOption(string(app.Status)); opt != nil {
		props["Status"] = gnt.DatabasePageProperty{Select: opt}
	}
	if opt := selectOption(app.Seniority); opt != nil {
		props["Seniority"] = gnt.DatabasePageProperty{Select: opt}
	}
	if opt := selectOption(app.Specialization); opt != nil {
		props["Specialization"] = gnt.DatabasePageProperty{Select: opt}
	}
	if d, err := time.Parse(applications.DateLayout, app.DateApplied); err == nil {
		props["Date Applied"] = gnt.DatabasePageProperty{
			Date: &gnt.Date{Start: gnt.NewDateTime(d, false)},
		}
	}
	return props
}

var _ applications.Mirror = (*Client)(nil)
