package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Tenchi88/flask-shop/internal/utils"
)

// APIKeyRepository checks presence of a key in the api_keys allow-list.
type APIKeyRepository interface {
	Exists(ctx context.Context, key string) (bool, error)
}

type apiKeyRepository struct {
	DB *sql.DB
}

func NewAPIKeyRepo(db *sql.DB) APIKeyRepository {
	return &apiKeyRepository{DB: db}
}

func (r *apiKeyRepository) Exists(ctx context.Context, key string) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT EXISTS(SELECT 1 FROM api_keys WHERE api_key = $1)`

	var exists bool

	if err := r.DB.QueryRowContext(dbCtx, query, key).Scan(&exists); err != nil {
		return false, fmt.Errorf("querying api_keys: %w", err)
	}

	return exists, nil
}
