package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prepvio_backend/internal/models"
	"prepvio_backend/internal/repositories"
	"prepvio_backend/internal/services/dto"
	"prepvio_backend/pkg/apperrors"
)

// fakeTicketRepo is an in-memory TicketRepository.
type fakeTicketRepo struct {
	tickets map[string]*models.Ticket
	nextID  int
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: map[string]*models.Ticket{}}
}

func (f *fakeTicketRepo) id() string {
	f.nextID++
	return fmt.Sprintf("id-%d", f.nextID)
}

func (f *fakeTicketRepo) Create(ticket *models.Ticket) error {
	ticket.ID = f.id()
	ticket.Conversation = &models.Conversation{TicketID: ticket.ID}
	ticket.Conversation.ID = f.id()
	f.tickets[ticket.ID] = ticket
	return nil
}

func (f *fakeTicketRepo) FindByID(id string) (*models.Ticket, error) {
	t, ok := f.tickets[id]
	if !ok {
		return nil, repositories.ErrTicketNotFound
	}
	return t, nil
}

func (f *fakeTicketRepo) FindByNumber(number string) (*models.Ticket, error) {
	for _, t := range f.tickets {
		if t.Number == number {
			return t, nil
		}
	}
	return nil, repositories.ErrTicketNotFound
}

func (f *fakeTicketRepo) FindWithFilter(criteria repositories.TicketFilter) ([]models.Ticket, int64, error) {
	var out []models.Ticket
	for _, t := range f.tickets {
		if criteria.UserID != "" && t.UserID != criteria.UserID {
			continue
		}
		if criteria.Status != "" && t.Status != criteria.Status {
			continue
		}
		out = append(out, *t)
	}
	return out, int64(len(out)), nil
}

func (f *fakeTicketRepo) UpdateStatus(ticketID string, status models.TicketStatus) error {
	t, ok := f.tickets[ticketID]
	if !ok {
		return repositories.ErrTicketNotFound
	}
	t.Status = status
	return nil
}

func (f *fakeTicketRepo) AddMessage(message *models.Message) error {
	message.ID = f.id()
	for _, t := range f.tickets {
		if t.Conversation != nil && t.Conversation.ID == message.ConversationID {
			t.Conversation.Messages = append(t.Conversation.Messages, *message)
			return nil
		}
	}
	return repositories.ErrTicketNotFound
}

func (f *fakeTicketRepo) Delete(id string) error {
	if _, ok := f.tickets[id]; !ok {
		return repositories.ErrTicketNotFound
	}
	delete(f.tickets, id)
	return nil
}

func (f *fakeTicketRepo) CountByStatus(status models.TicketStatus) (int64, error) {
	var n int64
	for _, t := range f.tickets {
		if t.Status == status {
			n++
		}
	}
	return n, nil
}

func newTicketFixture(t *testing.T) (TicketService, *fakeTicketRepo, string) {
	t.Helper()
	repo := newFakeTicketRepo()
	svc := NewTicketService(repo, nil, nil, nil)

	resp, err := svc.Create("owner-1", &dto.CreateTicketRequest{
		Subject: "Cannot download my report",
		Body:    "The report link returns 404.",
	})
	require.NoError(t, err)
	return svc, repo, resp.ID
}

func TestTicketCreate_StartsOpenWithFirstMessage(t *testing.T) {
	svc, _, ticketID := newTicketFixture(t)

	resp, err := svc.GetByID("owner-1", false, ticketID)
	require.NoError(t, err)

	assert.Equal(t, string(models.TicketStatusOpen), resp.Status)
	assert.Contains(t, resp.Number, "TKT-")
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, "user", resp.Messages[0].Sender)
}

func TestTicketReply_AdminMarksReplied(t *testing.T) {
	svc, _, ticketID := newTicketFixture(t)

	resp, err := svc.Reply("admin-1", true, ticketID, &dto.ReplyTicketRequest{Body: "Looking into it."})
	require.NoError(t, err)

	assert.Equal(t, string(models.TicketStatusReplied), resp.Status)
	require.Len(t, resp.Messages, 2)
	assert.Equal(t, "admin", resp.Messages[1].Sender)
}

func TestTicketReply_OwnerReopensClosed(t *testing.T) {
	svc, repo, ticketID := newTicketFixture(t)
	require.NoError(t, repo.UpdateStatus(ticketID, models.TicketStatusClosed))

	resp, err := svc.Reply("owner-1", false, ticketID, &dto.ReplyTicketRequest{Body: "Still broken."})
	require.NoError(t, err)

	assert.Equal(t, string(models.TicketStatusOpen), resp.Status)
}

func TestTicketReply_OwnerKeepsStatusWhenNotClosed(t *testing.T) {
	svc, repo, ticketID := newTicketFixture(t)
	require.NoError(t, repo.UpdateStatus(ticketID, models.TicketStatusInProgress))

	resp, err := svc.Reply("owner-1", false, ticketID, &dto.ReplyTicketRequest{Body: "Any update?"})
	require.NoError(t, err)

	assert.Equal(t, string(models.TicketStatusInProgress), resp.Status)
}

func TestTicketReply_StrangerRejected(t *testing.T) {
	svc, repo, ticketID := newTicketFixture(t)
	before := len(repo.tickets[ticketID].Conversation.Messages)

	_, err := svc.Reply("intruder", false, ticketID, &dto.ReplyTicketRequest{Body: "hi"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrTicketAccessDenied)

	// Status and conversation untouched.
	assert.Equal(t, models.TicketStatusOpen, repo.tickets[ticketID].Status)
	assert.Len(t, repo.tickets[ticketID].Conversation.Messages, before)
}

func TestTicketUpdateStatus_FreeTransitions(t *testing.T) {
	svc, repo, ticketID := newTicketFixture(t)
	require.NoError(t, repo.UpdateStatus(ticketID, models.TicketStatusClosed))

	// Closed straight back to In Progress is allowed.
	resp, err := svc.UpdateStatus(ticketID, &dto.UpdateTicketStatusRequest{Status: "In Progress"})
	require.NoError(t, err)
	assert.Equal(t, "In Progress", resp.Status)
}

func TestTicketGetByID_StrangerRejected(t *testing.T) {
	svc, _, ticketID := newTicketFixture(t)

	_, err := svc.GetByID("intruder", false, ticketID)
	assert.ErrorIs(t, err, apperrors.ErrTicketAccessDenied)

	// Admin sees everything.
	_, err = svc.GetByID("someone-else", true, ticketID)
	assert.NoError(t, err)
}

func TestTicketStats(t *testing.T) {
	svc, repo, ticketID := newTicketFixture(t)
	require.NoError(t, repo.UpdateStatus(ticketID, models.TicketStatusClosed))
	_, err := svc.Create("owner-2", &dto.CreateTicketRequest{Subject: "Billing question", Body: "Was I charged twice?"})
	require.NoError(t, err)

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Open)
	assert.Equal(t, int64(1), stats.Closed)
	assert.Equal(t, int64(2), stats.Total)
}
