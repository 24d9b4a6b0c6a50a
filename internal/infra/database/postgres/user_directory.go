package postgres

import (
	"context"
	"fmt"

	"github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/internal/domain/user"
)

// UserDirectory implements user.Directory over the auth-owned "user"
// table.
type UserDirectory struct {
	conn *Connector
}

// NewUserDirectory creates a new UserDirectory
func NewUserDirectory(conn *Connector) *UserDirectory {
	return &UserDirectory{conn: conn}
}

// ListNotifiable returns users with both email and name present
func (d *UserDirectory) ListNotifiable(ctx context.Context) ([]user.NotifiableUser, error) {
	pool, err := d.conn.Connect(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, email, name
		FROM "user"
		WHERE email IS NOT NULL AND name IS NOT NULL
	`

	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []user.NotifiableUser{}
	for rows.Next() {
		var u user.NotifiableUser
		if err := rows.Scan(&u.ID, &u.Email, &u.Name); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}
