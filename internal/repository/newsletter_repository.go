package repository

import (
	"context"
	"database/sql"
)

type newsletterRepository struct {
	db *sql.DB
}

func NewNewsletterRepository(db *sql.DB) INewsletterRepository {
	return &newsletterRepository{db: db}
}

// Subscribe is idempotent: re-subscribing an existing address is not an
// error.
func (r *newsletterRepository) Subscribe(ctx context.Context, email, source string) error {
	query := `
		INSERT INTO newsletter_subscribers (email, source)
		VALUES ($1, $2)
		ON CONFLICT (email) DO NOTHING`

	_, err := r.db.ExecContext(ctx, query, email, source)
	return err
}
