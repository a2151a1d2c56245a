package sheetstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barkanor/leadgate/internal/convlog"
	"github.com/barkanor/leadgate/internal/leads"
)

type fakeValues struct {
	rows    [][]any
	getErr  error
	appends map[string][][]any
	updates map[string][][]any
}

func newFakeValues(rows [][]any) *fakeValues {
	return &fakeValues{
		rows:    rows,
		appends: make(map[string][][]any),
		updates: make(map[string][][]any),
	}
}

func (f *fakeValues) Get(ctx context.Context, rangeA1 string) ([][]any, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.rows, nil
}

func (f *fakeValues) Append(ctx context.Context, rangeA1 string, values [][]any) error {
	f.appends[rangeA1] = append(f.appends[rangeA1], values...)
	return nil
}

func (f *fakeValues) Update(ctx context.Context, rangeA1 string, values [][]any) error {
	f.updates[rangeA1] = values
	return nil
}

var leadSheetRows = [][]any{
	{"phone", "name", "status", "createdAt", "updatedAt", "lastMessage"},
	{"972501111111", "Dana", "qualified", "2024-01-02T10:00:00Z", "2024-02-01T08:30:00Z", "see you then"},
	{"972502222222", "", "new", "2024-03-05T09:00:00Z", "2024-03-05T09:00:00Z", "hi"},
}

func TestSheetFindByPhone(t *testing.T) {
	api := newFakeValues(leadSheetRows)
	repo := newLeadsRepositoryWithAPI(api)

	lead, row, err := repo.FindByPhone(context.Background(), "972502222222")
	require.NoError(t, err)
	assert.Equal(t, 2, row)
	assert.Equal(t, leads.StatusNew, lead.Status)
	assert.Equal(t, "hi", lead.LastMessage)
	assert.Equal(t, time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC), lead.CreatedAt)
}

func TestSheetFindByPhoneSkipsHeader(t *testing.T) {
	// A phone column literally named "phone" must not match the header row.
	api := newFakeValues([][]any{
		{"phone", "name", "status", "createdAt", "updatedAt", "lastMessage"},
	})
	repo := newLeadsRepositoryWithAPI(api)

	_, _, err := repo.FindByPhone(context.Background(), "phone")
	assert.ErrorIs(t, err, leads.ErrLeadNotFound)
}

func TestSheetFindByPhoneNotFound(t *testing.T) {
	repo := newLeadsRepositoryWithAPI(newFakeValues(leadSheetRows))

	_, _, err := repo.FindByPhone(context.Background(), "972509999999")
	assert.ErrorIs(t, err, leads.ErrLeadNotFound)
}

func TestSheetAppendLead(t *testing.T) {
	api := newFakeValues(leadSheetRows)
	repo := newLeadsRepositoryWithAPI(api)

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	lead := &leads.Lead{Phone: "972503333333", Status: leads.StatusNew, CreatedAt: now, UpdatedAt: now, LastMessage: "hello"}
	require.NoError(t, repo.Append(context.Background(), lead))

	appended := api.appends["leads!A:F"]
	require.Len(t, appended, 1)
	assert.Equal(t, []any{"972503333333", "", "new", "2024-05-01T12:00:00Z", "2024-05-01T12:00:00Z", "hello"}, appended[0])
}

func TestSheetUpdateWritesOnlyMutableCells(t *testing.T) {
	api := newFakeValues(leadSheetRows)
	repo := newLeadsRepositoryWithAPI(api)

	lead, row, err := repo.FindByPhone(context.Background(), "972501111111")
	require.NoError(t, err)

	lead.UpdatedAt = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	lead.LastMessage = "newest"
	require.NoError(t, repo.Update(context.Background(), row, lead))

	// Row index 1 in the fetched range is sheet row 2; only E:F change.
	values, ok := api.updates["leads!E2:F2"]
	require.True(t, ok, "update range must target only columns E:F of the matched row, got %v", api.updates)
	require.Len(t, values, 1)
	assert.Equal(t, []any{"2024-06-01T10:00:00Z", "newest"}, values[0])
}

func TestSheetConversationLogAppend(t *testing.T) {
	api := newFakeValues(nil)
	logSink := newConversationLogWithAPI(api)

	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	row := convlog.NewRow(ts, "972501234567", "972501234567@c.us", convlog.DirectionIncoming, "textMessage", "hello")
	require.NoError(t, logSink.Append(context.Background(), row))

	appended := api.appends["conversation_logs!A:J"]
	require.Len(t, appended, 1)
	require.Len(t, appended[0], 10)
	assert.Equal(t, "incoming", appended[0][3])
}

func TestClientLazyInitSurfacesConfigErrors(t *testing.T) {
	// Construction never fails; the missing credentials surface on use.
	client := New("", "")
	repo := NewLeadsRepository(client)

	_, _, err := repo.FindByPhone(context.Background(), "972501234567")
	assert.Error(t, err)
}
