package tokens

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/hirehub/internal/dbx"
)

const (
	tokenKey = "token"
	loginKey = "login"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Load(ctx context.Context) (Session, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT key, value FROM session WHERE key IN (?, ?)`, tokenKey, loginKey)
	if err != nil {
		return Session{}, fmt.Errorf("failed to load session: %w", err)
	}
	defer rows.Close()

	var sess Session
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return Session{}, fmt.Errorf("failed to load session: %w", err)
		}
		switch key {
		case tokenKey:
			sess.Token = string(value)
		case loginKey:
			sess.Login = string(value)
		}
	}
	if err := rows.Err(); err != nil {
		return Session{}, fmt.Errorf("failed to load session: %w", err)
	}
	return sess, nil
}

// Save writes both keys in a single transaction so a crash cannot leave a
// token without its login or vice versa.
func (r *SQLiteRepository) Save(ctx context.Context, sess Session) error {
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := set(ctx, tx, tokenKey, []byte(sess.Token)); err != nil {
			return err
		}
		return set(ctx, tx, loginKey, []byte(sess.Login))
	})
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM session WHERE key IN (?, ?)`, tokenKey, loginKey)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func set(ctx context.Context, tx dbx.DBTX, key string, value []byte) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}
