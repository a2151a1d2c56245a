package sheetstore

import (
	"context"
	"fmt"
	"time"

	"github.com/barkanor/leadgate/internal/leads"
)

// leadsSheet is the tab name holding lead rows:
// phone | name | status | createdAt | updatedAt | lastMessage, header in row 1.
const leadsSheet = "leads"

// LeadsRepository implements leads.Repository over a spreadsheet tab with a
// read-all linear scan. The row index it reports is the 0-based position in
// the fetched value range (header included), which maps to sheet row index+1.
type LeadsRepository struct {
	api valuesAPI
}

// NewLeadsRepository creates a spreadsheet-backed lead repository.
func NewLeadsRepository(client *Client) *LeadsRepository {
	if client == nil {
		panic("sheetstore: client required")
	}
	return &LeadsRepository{api: client}
}

func newLeadsRepositoryWithAPI(api valuesAPI) *LeadsRepository {
	return &LeadsRepository{api: api}
}

// FindByPhone scans all rows below the header and returns the first match.
func (r *LeadsRepository) FindByPhone(ctx context.Context, phone string) (*leads.Lead, int, error) {
	rows, err := r.api.Get(ctx, leadsSheet+"!A:F")
	if err != nil {
		return nil, 0, err
	}
	for i := 1; i < len(rows); i++ {
		if cell(rows[i], 0) != phone {
			continue
		}
		lead := &leads.Lead{
			Phone:       phone,
			Name:        cell(rows[i], 1),
			Status:      leads.Status(cell(rows[i], 2)),
			CreatedAt:   parseTime(cell(rows[i], 3)),
			UpdatedAt:   parseTime(cell(rows[i], 4)),
			LastMessage: cell(rows[i], 5),
		}
		return lead, i, nil
	}
	return nil, 0, leads.ErrLeadNotFound
}

// Append adds a new lead row after the existing ones.
func (r *LeadsRepository) Append(ctx context.Context, lead *leads.Lead) error {
	values := [][]any{{
		lead.Phone,
		lead.Name,
		string(lead.Status),
		formatTime(lead.CreatedAt),
		formatTime(lead.UpdatedAt),
		lead.LastMessage,
	}}
	return r.api.Append(ctx, leadsSheet+"!A:F", values)
}

// Update rewrites only the updatedAt and lastMessage cells (columns E and F)
// of the matched row, so name, status and createdAt stay untouched even if
// another writer changed them since the scan.
func (r *LeadsRepository) Update(ctx context.Context, row int, lead *leads.Lead) error {
	rangeA1 := fmt.Sprintf("%s!E%d:F%d", leadsSheet, row+1, row+1)
	values := [][]any{{
		formatTime(lead.UpdatedAt),
		lead.LastMessage,
	}}
	return r.api.Update(ctx, rangeA1, values)
}

func cell(row []any, i int) string {
	if i >= len(row) {
		return ""
	}
	if s, ok := row[i].(string); ok {
		return s
	}
	return fmt.Sprint(row[i])
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// parseTime is lenient: cells edited by hand may not be RFC 3339, and a zero
// time is better than failing the whole event.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
