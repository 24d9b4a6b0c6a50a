package user

import "context"

// Directory defines read-only access to the external user table.
type Directory interface {
	// ListNotifiable returns users with both email and name present
	ListNotifiable(ctx context.Context) ([]NotifiableUser, error)
}
