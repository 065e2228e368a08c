package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// CreateUser registers a new anonymous user and returns its id.
func (db *Database) CreateUser(ctx context.Context) (int64, error) {
	res, err := db.ReadWrite.ExecContext(ctx, "INSERT INTO users DEFAULT VALUES")
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// UserExists reports whether a user id is known. Session cookies can outlive
// the database they were issued against.
func (db *Database) UserExists(ctx context.Context, userID int64) (bool, error) {
	var one int
	err := db.ReadOnly.QueryRowContext(ctx, "SELECT 1 FROM users WHERE id = ?", userID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("query user: %w", err)
	}
	return true, nil
}
