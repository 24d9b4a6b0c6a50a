package user

// NotifiableUser is a user eligible for outbound notification email.
// Rows come from the auth-owned "user" table; only users with both an
// email and a name qualify.
type NotifiableUser struct {
	ID    string `json:"id" db:"id"`
	Email string `json:"email" db:"email"`
	Name  string `json:"name" db:"name"`
}
