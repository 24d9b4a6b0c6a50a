// Package directory exposes the read-only user listing consumed by
// the outbound notification job.
package directory

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/internal/domain/user"
)

// Service lists notifiable users with the same degrade-to-empty policy
// as the watchlist store.
type Service struct {
	users user.Directory
}

// NewService creates a Service.
func NewService(users user.Directory) *Service {
	return &Service{users: users}
}

// ListNotifiableUsers returns users with both email and name present;
// empty slice on fault.
func (s *Service) ListNotifiableUsers(ctx context.Context) []user.NotifiableUser {
	users, err := s.users.ListNotifiable(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list notifiable users")
		return []user.NotifiableUser{}
	}
	return users
}
