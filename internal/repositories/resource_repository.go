package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Tenchi88/flask-shop/internal/models"
	"github.com/Tenchi88/flask-shop/internal/utils"
	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when the requested id does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrForeignKey is returned when a mutation violates a foreign key:
	// inserting a row that references a missing parent, or deleting a row
	// other rows still reference.
	ErrForeignKey = errors.New("foreign key violation")
)

// ResourceRepository is the generic data-access surface the dispatcher works
// against. One instance serves one entity model; the SQL is generated from
// the model's field descriptors.
type ResourceRepository interface {
	List(ctx context.Context, search string) ([]models.Record, error)
	GetByID(ctx context.Context, id int64) (models.Record, error)
	Insert(ctx context.Context, rec models.Record) (int64, error)
	Update(ctx context.Context, id int64, rec models.Record) error
	Delete(ctx context.Context, id int64) error
}

type resourceRepository struct {
	DB    *sql.DB
	model *models.Model
}

func NewResourceRepo(db *sql.DB, model *models.Model) ResourceRepository {
	return &resourceRepository{DB: db, model: model}
}

func (r *resourceRepository) List(ctx context.Context, search string) ([]models.Record, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := fmt.Sprintf(`SELECT %s FROM %s`,
		strings.Join(r.model.Columns(), ", "), r.model.Table)

	var args []any

	if search != "" {
		query += fmt.Sprintf(" WHERE %s ILIKE $1", r.model.SearchField)
		args = append(args, "%"+search+"%")
	}

	query += " ORDER BY id"

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", r.model.Table, err)
	}

	defer rows.Close()

	var records []models.Record

	for rows.Next() {
		rec, err := r.scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s rows: %w", r.model.Table, err)
	}

	return records, nil
}

func (r *resourceRepository) GetByID(ctx context.Context, id int64) (models.Record, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`,
		strings.Join(r.model.Columns(), ", "), r.model.Table)

	row := r.DB.QueryRowContext(dbCtx, query, id)

	rec, err := r.scanRecord(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return rec, nil
}

func (r *resourceRepository) Insert(ctx context.Context, rec models.Record) (int64, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var cols []string

	var placeholders []string

	var args []any

	for _, f := range r.model.Fields {
		value, ok := rec[f.Name]
		if !ok {
			continue
		}

		cols = append(cols, f.Name)
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)+1))
		args = append(args, value)
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING id`,
		r.model.Table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))

	var id int64

	if err := r.DB.QueryRowContext(dbCtx, query, args...).Scan(&id); err != nil {
		return 0, translateError(fmt.Errorf("inserting into %s: %w", r.model.Table, err))
	}

	return id, nil
}

func (r *resourceRepository) Update(ctx context.Context, id int64, rec models.Record) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var sets []string

	var args []any

	for _, f := range r.model.Fields {
		value, ok := rec[f.Name]
		if !ok {
			continue
		}

		sets = append(sets, fmt.Sprintf("%s = $%d", f.Name, len(args)+1))
		args = append(args, value)
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = $%d`,
		r.model.Table, strings.Join(sets, ", "), len(args))

	result, err := r.DB.ExecContext(dbCtx, query, args...)
	if err != nil {
		return translateError(fmt.Errorf("updating %s: %w", r.model.Table, err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating %s: %w", r.model.Table, err)
	}

	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *resourceRepository) Delete(ctx context.Context, id int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.model.Table)

	result, err := r.DB.ExecContext(dbCtx, query, id)
	if err != nil {
		return translateError(fmt.Errorf("deleting from %s: %w", r.model.Table, err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting from %s: %w", r.model.Table, err)
	}

	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// scanRecord scans one row into a Record, using null-aware holders so
// nullable columns come back as nil values.
func (r *resourceRepository) scanRecord(scan func(...any) error) (models.Record, error) {
	dest := make([]any, 0, len(r.model.Fields)+1)

	var id int64

	dest = append(dest, &id)

	holders := make([]any, len(r.model.Fields))

	for i, f := range r.model.Fields {
		switch f.Kind {
		case models.KindString:
			holders[i] = &sql.NullString{}
		case models.KindInt:
			holders[i] = &sql.NullInt64{}
		case models.KindBool:
			holders[i] = &sql.NullBool{}
		}

		dest = append(dest, holders[i])
	}

	if err := scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("scanning %s row: %w", r.model.Table, err)
	}

	rec := models.Record{models.IDColumn: id}

	for i, f := range r.model.Fields {
		switch h := holders[i].(type) {
		case *sql.NullString:
			if h.Valid {
				rec[f.Name] = h.String
			} else {
				rec[f.Name] = nil
			}
		case *sql.NullInt64:
			if h.Valid {
				rec[f.Name] = h.Int64
			} else {
				rec[f.Name] = nil
			}
		case *sql.NullBool:
			if h.Valid {
				rec[f.Name] = h.Bool
			} else {
				rec[f.Name] = nil
			}
		}
	}

	return rec, nil
}

func translateError(err error) error {
	var pqErr *pq.Error

	if errors.As(err, &pqErr) && pqErr.Code == "23503" {
		return fmt.Errorf("%w: %s", ErrForeignKey, pqErr.Message)
	}

	return err
}
