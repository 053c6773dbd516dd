package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"user-api/internal/data/entity"
	"user-api/pkg/apperror"
	"user-api/pkg/database"
	"user-api/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// UserRepository is the credential store. Lookups return (nil, nil) when the
// user does not exist; mutations return apperror NotFound/Conflict.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	ListPage(ctx context.Context, page, limit int) ([]*entity.User, int64, error)
	Update(ctx context.Context, id uuid.UUID, update entity.UserUpdate) (*entity.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	VerifyEmail(ctx context.Context, id uuid.UUID) error
}

const (
	msgEmailTaken   = "User with this email already exists"
	msgUserNotFound = "User not found"

	userColumns = `id, email, password, first_name, last_name, role,
		       is_active, email_verified, created_at, updated_at, last_login_at`
)

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
	now func() time.Time
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
		now: func() time.Time { return time.Now().UTC() },
	}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.Role,
		&user.IsActive,
		&user.EmailVerified,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.LastLoginAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new account. The existence check and the insert run in one
// transaction holding an advisory lock on the address, so two concurrent
// creates for the same email cannot both pass the check.
func (ur *userRepository) Create(ctx context.Context, user *entity.User) (created *entity.User, err error) {
	if !user.Role.Valid() {
		return nil, apperror.Validation(fmt.Sprintf("invalid role %q", user.Role))
	}

	now := ur.now()
	user.ID = uuid.New()
	user.Email = entity.NormalizeEmail(user.Email)
	user.IsActive = true
	user.EmailVerified = false
	user.CreatedAt = now
	user.UpdatedAt = now
	user.LastLoginAt = nil

	tx, err := ur.db.Begin(ctx)
	if err != nil {
		ur.log.Error("Failed to begin create user transaction", zap.Error(err))
		return nil, fmt.Errorf("begin create user: %w", err)
	}
	defer func() {
		if err == nil {
			return
		}
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			ur.log.Warn("Failed to rollback create user", zap.Error(rbErr))
		}
	}()

	if _, err = tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, user.Email); err != nil {
		ur.log.Error("Failed to lock email", zap.Error(err), zap.String("email", user.Email))
		return nil, fmt.Errorf("lock email %s: %w", user.Email, err)
	}

	var exists bool
	err = tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, user.Email).Scan(&exists)
	if err != nil {
		ur.log.Error("Failed to check email", zap.Error(err), zap.String("email", user.Email))
		return nil, fmt.Errorf("check email %s: %w", user.Email, err)
	}
	if exists {
		err = apperror.Conflict(msgEmailTaken)
		return nil, err
	}

	query := `
		INSERT INTO users (id, email, password, first_name, last_name, role,
		                   is_active, email_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + userColumns

	created, err = scanUser(tx.QueryRow(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Role,
		user.IsActive,
		user.EmailVerified,
		user.CreatedAt,
		user.UpdatedAt,
	))
	if err != nil {
		if apperror.IsUniqueViolation(err) {
			err = apperror.Conflict(msgEmailTaken)
			return nil, err
		}
		ur.log.Error("Failed to create user", zap.Error(err), zap.String("email", user.Email))
		return nil, fmt.Errorf("create user %s: %w", user.Email, err)
	}

	if err = tx.Commit(ctx); err != nil {
		if apperror.IsUniqueViolation(err) {
			err = apperror.Conflict(msgEmailTaken)
			return nil, err
		}
		ur.log.Error("Failed to commit create user", zap.Error(err), zap.String("email", user.Email))
		return nil, fmt.Errorf("commit create user %s: %w", user.Email, err)
	}

	return created, nil
}

func (ur *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(ur.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by ID", zap.Error(err), zap.String("user_id", id.String()))
		return nil, fmt.Errorf("find user by ID %s: %w", id, err)
	}

	return user, nil
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	email = entity.NormalizeEmail(email)
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(ur.db.QueryRow(ctx, query, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by email", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("find user by email %s: %w", email, err)
	}

	return user, nil
}

// ListPage returns one page (1-indexed) ordered newest first, plus the total row count.
func (ur *userRepository) ListPage(ctx context.Context, page, limit int) ([]*entity.User, int64, error) {
	var total int64
	if err := ur.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		ur.log.Error("Failed to count users", zap.Error(err))
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	offset := utils.CalculateOffset(page, limit)
	query := `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := ur.db.Query(ctx, query, limit, offset)
	if err != nil {
		ur.log.Error("Failed to list users", zap.Error(err), zap.Int("limit", limit), zap.Int("offset", offset))
		return nil, 0, fmt.Errorf("list users limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	users := make([]*entity.User, 0, limit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			ur.log.Error("Failed to scan user row", zap.Error(err))
			return nil, 0, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		ur.log.Error("Rows iteration error", zap.Error(err))
		return nil, 0, fmt.Errorf("iterate users rows: %w", err)
	}

	return users, total, nil
}

// Update applies the non-nil fields of update and always bumps updated_at.
func (ur *userRepository) Update(ctx context.Context, id uuid.UUID, update entity.UserUpdate) (*entity.User, error) {
	current, err := ur.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, apperror.NotFound(msgUserNotFound)
	}

	sets := make([]string, 0, 6)
	args := make([]any, 0, 7)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Email != nil {
		email := entity.NormalizeEmail(*update.Email)
		if email != current.Email {
			other, err := ur.FindByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != id {
				return nil, apperror.Conflict(msgEmailTaken)
			}
		}
		add("email", email)
	}
	if update.FirstName != nil {
		add("first_name", *update.FirstName)
	}
	if update.LastName != nil {
		add("last_name", *update.LastName)
	}
	if update.Role != nil {
		if !update.Role.Valid() {
			return nil, apperror.Validation(fmt.Sprintf("invalid role %q", *update.Role))
		}
		add("role", *update.Role)
	}
	if update.IsActive != nil {
		add("is_active", *update.IsActive)
	}
	add("updated_at", ur.now())

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), userColumns)

	user, err := scanUser(ur.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NotFound(msgUserNotFound)
	}
	if err != nil {
		if apperror.IsUniqueViolation(err) {
			return nil, apperror.Conflict(msgEmailTaken)
		}
		ur.log.Error("Failed to update user", zap.Error(err), zap.String("user_id", id.String()))
		return nil, fmt.Errorf("update user %s: %w", id, err)
	}

	return user, nil
}

// Delete removes the row permanently.
func (ur *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := ur.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		ur.log.Error("Failed to delete user", zap.Error(err), zap.String("user_id", id.String()))
		return fmt.Errorf("delete user %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NotFound(msgUserNotFound)
	}

	ur.log.Info("User deleted", zap.String("user_id", id.String()))
	return nil
}

func (ur *userRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	return ur.execByID(ctx, "update last login",
		`UPDATE users SET last_login_at = $1 WHERE id = $2`, ur.now(), id)
}

func (ur *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return ur.execByID(ctx, "update password",
		`UPDATE users SET password = $1, updated_at = $2 WHERE id = $3`, passwordHash, ur.now(), id)
}

func (ur *userRepository) VerifyEmail(ctx context.Context, id uuid.UUID) error {
	return ur.execByID(ctx, "verify email",
		`UPDATE users SET email_verified = TRUE, updated_at = $1 WHERE id = $2`, ur.now(), id)
}

// execByID runs a single-row mutation whose last argument is the user id.
func (ur *userRepository) execByID(ctx context.Context, op, query string, args ...any) error {
	result, err := ur.db.Exec(ctx, query, args...)
	if err != nil {
		ur.log.Error("Failed to "+op, zap.Error(err), zap.Any("user_id", args[len(args)-1]))
		return fmt.Errorf("%s: %w", op, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NotFound(msgUserNotFound)
	}
	return nil
}
