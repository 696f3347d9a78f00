package service

import (
	"context"

	id "smp/pkg/domain"
)

// Authenticate checks HTTP credentials against the user manager. Unknown
// users and wrong passwords fail alike with CodeUnauthorized.
func (s *Service) Authenticate(ctx context.Context, name, password string) (id.UserID, error) {
	users, err := s.managers.UserManager()
	if err != nil {
		return id.UserID{}, err
	}
	user, err := users.Authenticate(ctx, name, password)
	if err != nil {
		return id.UserID{}, err
	}
	return user.ID, nil
}
