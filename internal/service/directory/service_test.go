package directory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/internal/domain/user"
	"github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/internal/service/directory"
)

type fakeDirectory struct {
	users []user.NotifiableUser
	err   error
}

func (f *fakeDirectory) ListNotifiable(context.Context) ([]user.NotifiableUser, error) {
	return f.users, f.err
}

func TestService_ListNotifiableUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("returns users", func(t *testing.T) {
		svc := directory.NewService(&fakeDirectory{users: []user.NotifiableUser{
			{ID: "u1", Email: "a@example.com", Name: "A"},
			{ID: "u2", Email: "b@example.com", Name: "B"},
		}})

		users := svc.ListNotifiableUsers(ctx)
		assert.Len(t, users, 2)
	})

	t.Run("degrades to empty on fault", func(t *testing.T) {
		svc := directory.NewService(&fakeDirectory{err: errors.New("connection refused")})

		users := svc.ListNotifiableUsers(ctx)
		assert.NotNil(t, users)
		assert.Empty(t, users)
	})
}
