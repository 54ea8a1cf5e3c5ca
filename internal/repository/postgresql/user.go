package postgresql

import (
	"context"
	"fmt"

	"github.com/shancon-hr/attendance-backend-go/internal/domain/user"
	"github.com/shancon-hr/attendance-backend-go/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

const userColumns = `id, email, password_hash, full_name, role, google_id, created_at, updated_at`

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		INSERT INTO users (email, password_hash, full_name, role, google_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s
	`, userColumns)

	var created user.User
	err := q.QueryRow(ctx, query, u.Email, u.PasswordHash, u.FullName, u.Role, u.GoogleID).Scan(
		&created.ID, &created.Email, &created.PasswordHash, &created.FullName,
		&created.Role, &created.GoogleID, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return user.User{}, err
	}
	return created, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	var u user.User
	err := q.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName,
		&u.Role, &u.GoogleID, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return user.User{}, err
	}
	return u, nil
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)

	var u user.User
	err := q.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName,
		&u.Role, &u.GoogleID, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return user.User{}, err
	}
	return u, nil
}

// GetByGoogleID implements user.UserRepository.
func (r *userRepositoryImpl) GetByGoogleID(ctx context.Context, googleID string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM users WHERE google_id = $1`, userColumns)

	var u user.User
	err := q.QueryRow(ctx, query, googleID).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName,
		&u.Role, &u.GoogleID, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return user.User{}, err
	}
	return u, nil
}

// LinkGoogleID implements user.UserRepository.
func (r *userRepositoryImpl) LinkGoogleID(ctx context.Context, id string, googleID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET google_id = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, googleID, id).Scan(&updatedID); err != nil {
		return err
	}

	return nil
}
