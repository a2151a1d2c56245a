// Package sheetstore backs the lead repository and conversation log with a
// Google Sheets spreadsheet: one tab per logical table, header row first,
// linear scans for lookups.
package sheetstore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// valuesAPI is the seam between the repositories and the spreadsheet values
// endpoints, so tests can run against a fake.
type valuesAPI interface {
	Get(ctx context.Context, rangeA1 string) ([][]any, error)
	Append(ctx context.Context, rangeA1 string, values [][]any) error
	Update(ctx context.Context, rangeA1 string, values [][]any) error
}

// Client wraps the Sheets values API for one spreadsheet. Construction never
// fails: credentials are parsed and the API client built lazily on first
// call, so a misconfigured deployment surfaces errors per event rather than
// refusing to start.
type Client struct {
	spreadsheetID  string
	credentialBlob string

	mu      sync.Mutex
	svc     *sheets.Service
	initErr error
}

// New creates a client for the given spreadsheet. credentialBlob is
// service-account JSON, raw or base64-encoded.
func New(spreadsheetID, credentialBlob string) *Client {
	return &Client{spreadsheetID: spreadsheetID, credentialBlob: credentialBlob}
}

func (c *Client) service(ctx context.Context) (*sheets.Service, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.svc != nil || c.initErr != nil {
		return c.svc, c.initErr
	}
	if c.spreadsheetID == "" {
		c.initErr = errors.New("sheetstore: spreadsheet id not configured")
		return nil, c.initErr
	}
	creds, err := ParseCredentials(c.credentialBlob)
	if err != nil {
		c.initErr = err
		return nil, c.initErr
	}
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(creds),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		c.initErr = fmt.Errorf("sheetstore: build sheets service: %w", err)
		return nil, c.initErr
	}
	c.svc = svc
	return c.svc, nil
}

// Get reads all values in the given A1 range.
func (c *Client) Get(ctx context.Context, rangeA1 string) ([][]any, error) {
	svc, err := c.service(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := svc.Spreadsheets.Values.Get(c.spreadsheetID, rangeA1).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheetstore: get %s: %w", rangeA1, err)
	}
	return resp.Values, nil
}

// Append adds rows after the last populated row of the range.
func (c *Client) Append(ctx context.Context, rangeA1 string, values [][]any) error {
	svc, err := c.service(ctx)
	if err != nil {
		return err
	}
	vr := &sheets.ValueRange{Values: values}
	_, err = svc.Spreadsheets.Values.Append(c.spreadsheetID, rangeA1, vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheetstore: append %s: %w", rangeA1, err)
	}
	return nil
}

// Update overwrites cells in the given A1 range.
func (c *Client) Update(ctx context.Context, rangeA1 string, values [][]any) error {
	svc, err := c.service(ctx)
	if err != nil {
		return err
	}
	vr := &sheets.ValueRange{Values: values}
	_, err = svc.Spreadsheets.Values.Update(c.spreadsheetID, rangeA1, vr).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheetstore: update %s: %w", rangeA1, err)
	}
	return nil
}
