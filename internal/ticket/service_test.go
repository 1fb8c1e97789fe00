package ticket

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/roylobo/genai-portal/internal/models"
)

type stubOracle struct {
	response string
	err      error
	prompts  []string
}

func (s *stubOracle) Complete(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

type stubSuggester struct {
	suggestion string
	err        error
	category   string
}

func (s *stubSuggester) Suggest(_ context.Context, category, _ string) (string, error) {
	s.category = category
	if s.err != nil {
		return "", s.err
	}
	return s.suggestion, nil
}

type mockTicketStore struct {
	created     []*models.Ticket
	tickets     map[int64]*models.Ticket
	listResult  []*models.Ticket
	summaries   []string
	lastStatus  string
	lastReason  string
	updateCalls int
}

func (m *mockTicketStore) Create(ticket *models.Ticket) error {
	ticket.ID = int64(len(m.created) + 1)
	m.created = append(m.created, ticket)
	return nil
}

func (m *mockTicketStore) ListByUser(int64) ([]*models.Ticket, error) {
	return m.listResult, nil
}

func (m *mockTicketStore) GetByIDForUser(id, userID int64) (*models.Ticket, error) {
	t, ok := m.tickets[id]
	if !ok || t.UserID != userID {
		return nil, nil
	}
	return t, nil
}

func (m *mockTicketStore) UpdateStatus(_ int64, status, reason string) error {
	m.updateCalls++
	m.lastStatus = status
	m.lastReason = reason
	return nil
}

func (m *mockTicketStore) SummariesByUser(int64) ([]string, error) {
	return m.summaries, nil
}

type mockUserStore struct {
	users map[int64]*models.User
}

func (m *mockUserStore) GetByID(id int64) (*models.User, error) {
	return m.users[id], nil
}

func singleUser(id int64, username string) *mockUserStore {
	return &mockUserStore{users: map[int64]*models.User{
		id: {ID: id, Username: username},
	}}
}

func TestService_Create_SelfReported(t *testing.T) {
	oracle := &stubOracle{response: "VPN drops every few minutes."}
	suggester := &stubSuggester{suggestion: "1. Restart the VPN client."}
	store := &mockTicketStore{}
	svc := NewService(oracle, suggester, store, singleUser(1, "alice"), zap.NewNop())

	ticket, err := svc.Create(context.Background(), 1, "vpn keeps disconnecting", "", models.TicketTypeSelf)
	require.NoError(t, err)

	assert.Equal(t, "Network & Connectivity", ticket.Category)
	assert.Equal(t, "Network & Connectivity", suggester.category)
	assert.Equal(t, "VPN drops every few minutes.", ticket.AISummary)
	assert.Equal(t, "1. Restart the VPN client.", ticket.AISuggestion)
	assert.Equal(t, models.TicketStatusOpen, ticket.Status)

	// Context line is prepended; classification ran on the bare description.
	assert.True(t, strings.HasPrefix(ticket.Description, "Self-reported by alice\n\nIssue: "))
	require.Len(t, oracle.prompts, 1)
	assert.Contains(t, oracle.prompts[0], "Summarize this IT ticket: Self-reported by alice")
}

func TestService_Create_ContextLines(t *testing.T) {
	tests := []struct {
		name         string
		ticketType   string
		affectedUser string
		wantPrefix   string
	}{
		{"for another user", models.TicketTypeOther, "bob", "Reported by alice for bob"},
		{"system generated", models.TicketTypeSystem, "carol", "System-generated ticket for carol"},
		{"system without affected user", models.TicketTypeSystem, "", "System-generated ticket for unknown user"},
		{"other without affected user", models.TicketTypeOther, "", "Reported by alice"},
		{"empty type defaults to self", "", "", "Self-reported by alice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockTicketStore{}
			svc := NewService(&stubOracle{}, &stubSuggester{}, store, singleUser(1, "alice"), zap.NewNop())

			ticket, err := svc.Create(context.Background(), 1, "printer jam", tt.affectedUser, tt.ticketType)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(ticket.Description, tt.wantPrefix),
				"description %q should start with %q", ticket.Description, tt.wantPrefix)
		})
	}
}

func TestService_Create_OracleFailureDegrades(t *testing.T) {
	oracle := &stubOracle{err: errors.New("model offline")}
	suggester := &stubSuggester{err: errors.New("model offline")}
	store := &mockTicketStore{}
	svc := NewService(oracle, suggester, store, singleUser(1, "alice"), zap.NewNop())

	ticket, err := svc.Create(context.Background(), 1, "cannot install the license update", "", models.TicketTypeSelf)
	require.NoError(t, err)

	assert.Empty(t, ticket.AISummary)
	assert.Empty(t, ticket.AISuggestion)
	assert.Equal(t, "Software & Applications", ticket.Category)
	require.Len(t, store.created, 1)
}

func TestService_Create_UnknownUser(t *testing.T) {
	svc := NewService(&stubOracle{}, &stubSuggester{}, &mockTicketStore{}, &mockUserStore{users: map[int64]*models.User{}}, zap.NewNop())

	_, err := svc.Create(context.Background(), 42, "anything", "", models.TicketTypeSelf)
	assert.Error(t, err)
}

func TestService_Resolve_Authorization(t *testing.T) {
	tests := []struct {
		name         string
		ticketType   string
		affectedUser string
		wantErr      error
	}{
		{"self ticket", models.TicketTypeSelf, "", nil},
		{"no affected user", models.TicketTypeOther, "", nil},
		{"reporter is affected user", models.TicketTypeOther, "alice", nil},
		{"someone else affected", models.TicketTypeOther, "bob", ErrNotAffectedUser},
		{"system ticket for someone else", models.TicketTypeSystem, "bob", ErrNotAffectedUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockTicketStore{tickets: map[int64]*models.Ticket{
				5: {ID: 5, UserID: 1, TicketType: tt.ticketType, AffectedUser: tt.affectedUser, Status: models.TicketStatusOpen},
			}}
			svc := NewService(&stubOracle{}, &stubSuggester{}, store, singleUser(1, "alice"), zap.NewNop())

			err := svc.Resolve(5, 1)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, store.updateCalls)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, models.TicketStatusResolved, store.lastStatus)
		})
	}
}

func TestService_Resolve_NotFound(t *testing.T) {
	store := &mockTicketStore{tickets: map[int64]*models.Ticket{}}
	svc := NewService(&stubOracle{}, &stubSuggester{}, store, singleUser(1, "alice"), zap.NewNop())

	assert.ErrorIs(t, svc.Resolve(99, 1), ErrTicketNotFound)
}

func TestService_ReopenAndEscalate(t *testing.T) {
	store := &mockTicketStore{tickets: map[int64]*models.Ticket{
		7: {ID: 7, UserID: 1, Status: models.TicketStatusResolved},
	}}
	svc := NewService(&stubOracle{}, &stubSuggester{}, store, singleUser(1, "alice"), zap.NewNop())

	require.NoError(t, svc.Reopen(7, 1, "issue came back"))
	assert.Equal(t, models.TicketStatusReopened, store.lastStatus)
	assert.Equal(t, "issue came back", store.lastReason)

	require.NoError(t, svc.Escalate(7, 1, "blocking the whole team"))
	assert.Equal(t, models.TicketStatusEscalated, store.lastStatus)
	assert.Equal(t, "blocking the whole team", store.lastReason)

	assert.ErrorIs(t, svc.Reopen(8, 1, "nope"), ErrTicketNotFound)
	assert.ErrorIs(t, svc.Escalate(7, 2, "wrong user"), ErrTicketNotFound)
}

func TestService_Query(t *testing.T) {
	oracle := &stubOracle{response: "Two tickets mention the VPN."}
	store := &mockTicketStore{summaries: []string{"VPN drops.", "Printer jam."}}
	svc := NewService(oracle, &stubSuggester{}, store, singleUser(1, "alice"), zap.NewNop())

	answer, err := svc.Query(context.Background(), 1, "What keeps failing?")
	require.NoError(t, err)
	assert.Equal(t, "Two tickets mention the VPN.", answer)

	require.Len(t, oracle.prompts, 1)
	assert.Contains(t, oracle.prompts[0], "VPN drops. Printer jam.")
	assert.Contains(t, oracle.prompts[0], "Question: What keeps failing?")
}

func exportFixture() []*models.Ticket {
	return []*models.Ticket{{
		ID:           1,
		UserID:       1,
		Category:     "Hardware Issues",
		Description:  "Self-reported by alice\n\nIssue: monitor flickers",
		AISummary:    "Monitor flicker.",
		AISuggestion: "Check the cable.",
		Status:       models.TicketStatusOpen,
		TicketType:   models.TicketTypeSelf,
		CreatedAt:    time.Date(2025, 4, 2, 9, 30, 0, 0, time.UTC),
	}}
}

func TestService_ExportCSV(t *testing.T) {
	store := &mockTicketStore{listResult: exportFixture()}
	svc := NewService(&stubOracle{}, &stubSuggester{}, store, singleUser(1, "alice"), zap.NewNop())

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(1, &buf))

	out := buf.String()
	assert.Contains(t, out, "id,category,description")
	assert.Contains(t, out, "Hardware Issues")
	assert.Contains(t, out, "Check the cable.")
}

func TestService_ExportCSV_Empty(t *testing.T) {
	svc := NewService(&stubOracle{}, &stubSuggester{}, &mockTicketStore{}, singleUser(1, "alice"), zap.NewNop())

	var buf bytes.Buffer
	assert.ErrorIs(t, svc.ExportCSV(1, &buf), ErrNoTickets)
}

func TestService_ExportXLSX(t *testing.T) {
	store := &mockTicketStore{listResult: exportFixture()}
	svc := NewService(&stubOracle{}, &stubSuggester{}, store, singleUser(1, "alice"), zap.NewNop())

	var buf bytes.Buffer
	require.NoError(t, svc.ExportXLSX(1, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	category, err := f.GetCellValue("Tickets", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Hardware Issues", category)
}

func TestService_ExportXLSX_Empty(t *testing.T) {
	svc := NewService(&stubOracle{}, &stubSuggester{}, &mockTicketStore{}, singleUser(1, "alice"), zap.NewNop())

	var buf bytes.Buffer
	assert.ErrorIs(t, svc.ExportXLSX(1, &buf), ErrNoTickets)
}
