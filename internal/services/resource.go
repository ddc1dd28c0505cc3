package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	appErrors "github.com/Tenchi88/flask-shop/internal/errors"

	"github.com/Tenchi88/flask-shop/internal/cache"
	"github.com/Tenchi88/flask-shop/internal/models"
	repository "github.com/Tenchi88/flask-shop/internal/repositories"
)

// ListQuery carries the optional collection query parameters. From and To
// are slice bounds over the result sequence and only apply together.
type ListQuery struct {
	Search string
	Filter string
	From   *int
	To     *int
	Fields []string
}

// ResourceService is the generic dispatcher core: list/create/get/replace/
// update/delete over one entity model. All mutation paths validate through
// the schema before touching the repository.
type ResourceService interface {
	List(ctx context.Context, query *ListQuery) ([]models.Record, error)
	Create(ctx context.Context, raw map[string]any) (map[string]any, error)
	Get(ctx context.Context, id int64) (models.Record, error)
	Replace(ctx context.Context, id int64, raw map[string]any) error
	Update(ctx context.Context, id int64, raw map[string]any) (models.Record, error)
	Delete(ctx context.Context, id int64) error
}

type resourceService struct {
	collection string
	model      *models.Model
	schema     *models.Schema
	repo       repository.ResourceRepository
	cache      cache.Cache
}

func NewResourceService(collection string, schema *models.Schema, repo repository.ResourceRepository, c cache.Cache) ResourceService {
	return &resourceService{
		collection: collection,
		model:      schema.Model(),
		schema:     schema,
		repo:       repo,
		cache:      c,
	}
}

func (s *resourceService) List(ctx context.Context, query *ListQuery) ([]models.Record, error) {
	if query.Filter != "" && !s.model.HasColumn(query.Filter) {
		return nil, appErrors.BadRequestError(fmt.Sprintf("Unknown filter field '%s'", query.Filter))
	}

	records, err := s.repo.List(ctx, query.Search)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch " + s.collection).WithError(err)
	}

	// Truthy filtering happens on materialized rows, after the round-trip.
	if query.Filter != "" {
		kept := records[:0]

		for _, rec := range records {
			if truthy(rec[query.Filter]) {
				kept = append(kept, rec)
			}
		}

		records = kept
	}

	if query.From != nil && query.To != nil {
		from, to := *query.From, *query.To

		if from < 0 || to < 0 {
			return nil, appErrors.BadRequestError("Pagination bounds must not be negative")
		}

		if from > len(records) {
			from = len(records)
		}

		if to > len(records) {
			to = len(records)
		}

		if from > to {
			to = from
		}

		records = records[from:to]
	}

	projected := make([]models.Record, 0, len(records))

	for _, rec := range records {
		projected = append(projected, s.model.Project(rec, query.Fields))
	}

	return projected, nil
}

func (s *resourceService) Create(ctx context.Context, raw map[string]any) (map[string]any, error) {
	cleaned, fieldErrs := s.schema.Clean(raw, false)
	if fieldErrs != nil {
		return nil, appErrors.ValidationError("Validation failed").WithFields(fieldErrs)
	}

	if _, err := s.repo.Insert(ctx, cleaned); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, appErrors.BadRequestError("Payload references a row that does not exist").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to create "+s.collection+" record").WithError(err)
	}

	// The contract echoes the submitted payload, not the stored row.
	return raw, nil
}

func (s *resourceService) Get(ctx context.Context, id int64) (models.Record, error) {
	key := s.cacheKey(id)

	var cached models.Record

	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		slog.Warn("Cache lookup failed", slog.String("key", key), slog.String("error", err.Error()))
	} else if found {
		return cached, nil
	}

	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.NotFoundError(s.notFoundMessage(id))
		}

		return nil, appErrors.DatabaseError("Failed to fetch "+s.collection+" record").WithError(err)
	}

	if err := s.cache.Set(ctx, key, rec, 0); err != nil {
		slog.Warn("Cache store failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	return rec, nil
}

func (s *resourceService) Replace(ctx context.Context, id int64, raw map[string]any) error {
	cleaned, fieldErrs := s.schema.Clean(raw, false)
	if fieldErrs != nil {
		return appErrors.ValidationError("Validation failed").WithFields(fieldErrs)
	}

	if err := s.overwrite(ctx, id, cleaned); err != nil {
		return err
	}

	return nil
}

func (s *resourceService) Update(ctx context.Context, id int64, raw map[string]any) (models.Record, error) {
	cleaned, fieldErrs := s.schema.Clean(raw, true)
	if fieldErrs != nil {
		return nil, appErrors.ValidationError("Validation failed").WithFields(fieldErrs)
	}

	if err := s.overwrite(ctx, id, cleaned); err != nil {
		return nil, err
	}

	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.NotFoundError(s.notFoundMessage(id))
		}

		return nil, appErrors.DatabaseError("Failed to fetch "+s.collection+" record").WithError(err)
	}

	return rec, nil
}

func (s *resourceService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return appErrors.NotFoundError(s.notFoundMessage(id))
		}

		if errors.Is(err, repository.ErrForeignKey) {
			return appErrors.ConflictError("Record is still referenced by other rows").WithError(err)
		}

		return appErrors.DatabaseError("Failed to delete "+s.collection+" record").WithError(err)
	}

	s.invalidate(ctx, id)

	return nil
}

// overwrite assigns only the fields present in cleaned onto the existing
// row; fields absent from the payload keep their prior values.
func (s *resourceService) overwrite(ctx context.Context, id int64, cleaned models.Record) error {
	if err := s.repo.Update(ctx, id, cleaned); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return appErrors.NotFoundError(s.notFoundMessage(id))
		}

		if errors.Is(err, repository.ErrForeignKey) {
			return appErrors.BadRequestError("Payload references a row that does not exist").WithError(err)
		}

		return appErrors.DatabaseError("Failed to update "+s.collection+" record").WithError(err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *resourceService) invalidate(ctx context.Context, id int64) {
	key := s.cacheKey(id)

	if err := s.cache.Delete(ctx, key); err != nil {
		slog.Warn("Cache invalidation failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}

func (s *resourceService) cacheKey(id int64) string {
	return cache.Key(s.collection, strconv.FormatInt(id, 10))
}

func (s *resourceService) notFoundMessage(id int64) string {
	return fmt.Sprintf("No record with id %d in %s", id, s.collection)
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case int64:
		return v != 0
	case float64:
		return v != 0
	case string:
		return v != ""
	}

	return true
}
