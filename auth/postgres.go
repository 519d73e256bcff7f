package auth

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

const uniqueViolation = "23505"

type PostgresProfileRepository struct {
	DB *sql.DB
}

func NewPostgresProfileRepository(db *sql.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{DB: db}
}

func (r *PostgresProfileRepository) FindByUserID(ctx context.Context, userID string) (*Profile, error) {
	var p Profile
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, user_id, COALESCE(first_name, ''), COALESCE(last_name, ''),
		       COALESCE(avatar_url, ''), COALESCE(phone, ''), created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`, userID).Scan(&p.ID, &p.UserID, &p.FirstName, &p.LastName, &p.AvatarURL, &p.Phone, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find profile")
	}
	return &p, nil
}

// Create inserts the profile; the user_id unique constraint decides races.
func (r *PostgresProfileRepository) Create(ctx context.Context, p *Profile) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO profiles (id, user_id, first_name, last_name, avatar_url, phone)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO NOTHING
		RETURNING created_at, updated_at
	`, p.ID, p.UserID, p.FirstName, p.LastName, p.AvatarURL, p.Phone).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return ErrProfileConflict
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrProfileConflict
	}
	if err != nil {
		return errors.Wrap(err, "insert profile")
	}
	return nil
}

var _ ProfileRepository = (*PostgresProfileRepository)(nil)
