package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/campushub/portal/internal/app/models"
)

// pgAuth verifies platform credentials against the users table.
type pgAuth struct {
	db DB
}

func (a *pgAuth) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	var user models.User
	var hash string

	query := `SELECT id, name, email, role, password_hash FROM users WHERE email = $1 AND is_active = TRUE`
	err := a.db.QueryRow(ctx, query, email).Scan(&user.ID, &user.Name, &user.Email, &user.Role, &hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, fmt.Errorf("user with email %s not found: %w", email, models.ErrUnauthenticated)
		}
		return models.User{}, errors.Wrap(err, "fetch user by email")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return models.User{}, fmt.Errorf("password mismatch for %s: %w", email, models.ErrUnauthenticated)
	}

	if !user.Role.Valid() {
		return models.User{}, fmt.Errorf("account %s has no portal role: %w", email, models.ErrUnauthenticated)
	}
	return user, nil
}

// HashPassword hashes a password using bcrypt for account provisioning.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}
