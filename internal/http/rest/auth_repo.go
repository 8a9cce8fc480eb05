package rest

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pollhub/pollhub_api/internal/model"
	"github.com/pollhub/pollhub_api/util/values"
)

func (api *API) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	stmt := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	err := api.DB.QueryRow(ctx, stmt, email).Scan(&exists)
	if err != nil {
		log.Println("error checking email", err)
		return false, err
	}
	return exists, nil
}

func (api *API) CreateNewUserRepo(ctx context.Context, req model.User) error {
	stmt := `
        INSERT INTO users (
            id,
            email,
            display_name,
            password_hash
        ) VALUES ($1, $2, $3, $4)
    `
	_, err := api.DB.Exec(ctx, stmt, req.ID, req.Email, req.DisplayName, req.PasswordHash)
	if err != nil {
		log.Println("error creating new user", err)
		return err
	}
	return nil
}

func (api *API) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	var user model.User
	stmt := `SELECT id, email, display_name, password_hash, created_at, updated_at FROM users WHERE email = $1`

	err := api.DB.QueryRow(ctx, stmt, email).Scan(
		&user.ID,
		&user.Email,
		&user.DisplayName,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}

func (api *API) GetUserByID(ctx context.Context, userID uuid.UUID) (model.User, error) {
	var user model.User
	stmt := `SELECT id, email, display_name, created_at, updated_at FROM users WHERE id = $1`

	err := api.DB.QueryRow(ctx, stmt, userID).Scan(
		&user.ID,
		&user.Email,
		&user.DisplayName,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		log.Println("error getting user by ID", err)
		return model.User{}, err
	}
	return user, nil
}

// GetUserRole looks the role up fresh from user_roles. A missing row or a
// failed lookup both mean plain "user"; the lookup never blocks the caller's
// allow/redirect decision.
func (api *API) GetUserRole(ctx context.Context, userID uuid.UUID) string {
	var role string
	stmt := `SELECT role FROM user_roles WHERE user_id = $1`

	err := api.DB.QueryRow(ctx, stmt, userID).Scan(&role)
	if err != nil {
		if err != pgx.ErrNoRows {
			log.Println("error getting user role", err)
		}
		return values.RoleUser
	}
	return role
}

func (api *API) ListUsersWithRolesRepo(ctx context.Context) ([]model.UserWithRole, error) {
	stmt := `
        SELECT u.id, u.email, u.display_name, COALESCE(r.role, 'user')
        FROM users u
        LEFT JOIN user_roles r ON r.user_id = u.id
        ORDER BY u.created_at DESC`

	rows, err := api.DB.Query(ctx, stmt)
	if err != nil {
		log.Println("error listing users", err)
		return nil, err
	}
	defer rows.Close()

	var users []model.UserWithRole
	for rows.Next() {
		var u model.UserWithRole
		if err := rows.Scan(&u.ID, &u.Email, &u.DisplayName, &u.Role); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
