package leads

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Service implements the find-or-create/update semantics on top of any
// Repository.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a lead service backed by repo.
func NewService(repo Repository) *Service {
	if repo == nil {
		panic("leads: repository required")
	}
	return &Service{repo: repo, now: time.Now}
}

// Upsert records the latest message from phone. A phone never seen before
// gets a fresh row with status "new" and created-at == updated-at; a known
// phone has only its updated-at and last-message rewritten, so status and
// created-at survive every subsequent message.
func (s *Service) Upsert(ctx context.Context, phone, lastMessage string) (Action, error) {
	lastMessage = truncate(lastMessage, maxLastMessageLen)

	existing, row, err := s.repo.FindByPhone(ctx, phone)
	switch {
	case errors.Is(err, ErrLeadNotFound):
		now := s.now().UTC()
		lead := &Lead{
			Phone:       phone,
			Name:        "",
			Status:      StatusNew,
			CreatedAt:   now,
			UpdatedAt:   now,
			LastMessage: lastMessage,
		}
		if err := s.repo.Append(ctx, lead); err != nil {
			return "", fmt.Errorf("leads: append: %w", err)
		}
		return ActionInserted, nil
	case err != nil:
		return "", fmt.Errorf("leads: find by phone: %w", err)
	}

	existing.UpdatedAt = s.now().UTC()
	existing.LastMessage = lastMessage
	if err := s.repo.Update(ctx, row, existing); err != nil {
		return "", fmt.Errorf("leads: update: %w", err)
	}
	return ActionUpdated, nil
}
