package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/antonym0505/intermodal/internal/db"
	"github.com/antonym0505/intermodal/internal/ledger"
	"github.com/antonym0505/intermodal/internal/repository"
)

// UserRepo backs HTTP basic auth. Each user carries the on-ledger
// identity their requests act as.
type UserRepo struct {
	db db.DB
}

func NewUserRepo(database db.DB) *UserRepo {
	return &UserRepo{db: database}
}

func (r *UserRepo) CreateUser(ctx context.Context, username, password string, identity ledger.Identity) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		"INSERT INTO users (username, password, identity) VALUES ($1, $2, $3)",
		username, string(hashedPassword), string(identity))
	return err
}

// Authenticate verifies the password and returns the user's ledger
// identity.
func (r *UserRepo) Authenticate(ctx context.Context, username, password string) (ledger.Identity, error) {
	var hashedPassword, identity string
	err := r.db.ExecQueryRow(ctx,
		"SELECT password, identity FROM users WHERE username = $1", username).
		Scan(&hashedPassword, &identity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ledger.NoIdentity, repository.ErrObjectNotFound
		}
		return ledger.NoIdentity, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)); err != nil {
		return ledger.NoIdentity, fmt.Errorf("password mismatch for %s: %w", username, err)
	}
	return ledger.Identity(identity), nil
}

// EnsureAdmin creates the operator user when missing, so a fresh
// database is usable immediately.
func (r *UserRepo) EnsureAdmin(ctx context.Context, username, password string, identity ledger.Identity) error {
	if username == "" || password == "" {
		return nil
	}

	var count int
	err := r.db.ExecQueryRow(ctx,
		"SELECT COUNT(*) FROM users WHERE username = $1", username).Scan(&count)
	if err != nil {
		return fmt.Errorf("check admin user: %w", err)
	}
	if count > 0 {
		return nil
	}
	return r.CreateUser(ctx, username, password, identity)
}
