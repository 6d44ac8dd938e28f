package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/akinalp/mblog/database"
	"github.com/akinalp/mblog/models"
	"github.com/akinalp/mblog/pkg"
)

// sqliteUserRepo, UserRepository interface'inin SQLite implementasyonu.
type sqliteUserRepo struct {
	db database.TxQuerier
}

// NewSQLiteUserRepo, constructor — interface döner.
func NewSQLiteUserRepo(db database.TxQuerier) UserRepository {
	return &sqliteUserRepo{db: db}
}

const userColumns = `id, user_name, password, nick_name, gender, picture, city, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }, u *models.User) error {
	return row.Scan(
		&u.ID, &u.UserName, &u.PasswordHash, &u.NickName, &u.Gender,
		&u.Picture, &u.City, &u.CreatedAt, &u.UpdatedAt,
	)
}

func (r *sqliteUserRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (user_name, password, nick_name, gender, picture, city)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		user.UserName,
		user.PasswordHash,
		user.NickName,
		user.Gender,
		user.Picture,
		user.City,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: user name already taken", pkg.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *sqliteUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`

	user := &models.User{}
	err := scanUser(r.db.QueryRowContext(ctx, query, id), user)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (r *sqliteUserRepo) GetByUserName(ctx context.Context, userName string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_name = ?`

	user := &models.User{}
	err := scanUser(r.db.QueryRowContext(ctx, query, userName), user)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by user name: %w", err)
	}

	return user, nil
}

func (r *sqliteUserRepo) GetByUserNames(ctx context.Context, userNames []string) ([]models.User, error) {
	if len(userNames) == 0 {
		return []models.User{}, nil
	}

	placeholders := make([]string, len(userNames))
	args := make([]any, len(userNames))
	for i, name := range userNames {
		placeholders[i] = "?"
		args[i] = name
	}

	query := fmt.Sprintf(
		`SELECT %s FROM users WHERE user_name IN (%s) ORDER BY id`,
		userColumns, strings.Join(placeholders, ", "),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to batch get users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := scanUser(rows, &u); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, nil
}

func (r *sqliteUserRepo) UpdateProfile(ctx context.Context, id int64, nickName, city, picture string) error {
	query := `
		UPDATE users SET nick_name = ?, city = ?, picture = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, nickName, city, picture, id)
	if err != nil {
		return fmt.Errorf("failed to update user profile: %w", err)
	}

	return expectAffected(result)
}

func (r *sqliteUserRepo) UpdatePassword(ctx context.Context, id int64, newPasswordHash string) error {
	query := `UPDATE users SET password = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, newPasswordHash, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return expectAffected(result)
}

func (r *sqliteUserRepo) DeleteByUserName(ctx context.Context, userName string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE user_name = ?`, userName)
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}

	return affected > 0, nil
}

// expectAffected, 0 satır etkilendiyse ErrNotFound döner.
func expectAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}
	return nil
}

// isUniqueViolation, SQLite UNIQUE constraint hatasını kontrol eder.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// isForeignKeyViolation, SQLite FOREIGN KEY constraint hatasını kontrol eder.
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
