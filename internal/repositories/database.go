package repository

import (
	"database/sql"
	"fmt"

	"github.com/Tenchi88/flask-shop/internal/config"
	"github.com/Tenchi88/flask-shop/internal/models"

	_ "github.com/lib/pq"
)

type Repository struct {
	DB         *sql.DB
	Products   ResourceRepository
	Categories ResourceRepository
	APIKeys    APIKeyRepository
}

func New(cfg *config.Config) (*Repository, error) {
	db, err := sql.Open("postgres", cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// Test the connection to make sure DB is reachable
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Repository{
		DB:         db,
		Products:   NewResourceRepo(db, models.ProductModel()),
		Categories: NewResourceRepo(db, models.CategoryModel()),
		APIKeys:    NewAPIKeyRepo(db),
	}, nil
}

func (p *Repository) Close() error {
	return p.DB.Close()
}
