package service_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/Tenchi88/flask-shop/internal/cache"
	"github.com/Tenchi88/flask-shop/internal/config"
	appErrors "github.com/Tenchi88/flask-shop/internal/errors"
	"github.com/Tenchi88/flask-shop/internal/models"
	repository "github.com/Tenchi88/flask-shop/internal/repositories"
	"github.com/Tenchi88/flask-shop/internal/repositories/mocks"
	service "github.com/Tenchi88/flask-shop/internal/services"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCategoryService(repo repository.ResourceRepository) service.ResourceService {
	return service.NewResourceService("categories", models.NewSchema(models.CategoryModel()), repo, cache.NewNopCache())
}

func newProductService(repo repository.ResourceRepository) service.ResourceService {
	return service.NewResourceService("products", models.NewSchema(models.ProductModel()), repo, cache.NewNopCache())
}

func seedCategories() []models.Record {
	return []models.Record{
		{"id": int64(1), "title": "Ноутбуки", "slug": "laptops", "is_visible": true},
		{"id": int64(2), "title": "Архив", "slug": "archive", "is_visible": false},
		{"id": int64(3), "title": "Мобильные телефоны", "slug": "smart_phones", "is_visible": true},
	}
}

func intPtr(v int) *int {
	return &v
}

func TestList(t *testing.T) {
	ctx := t.Context()

	t.Run("No parameters returns every row with all fields", func(t *testing.T) {
		mockRepo := new(mocks.ResourceRepository)
		svc := newCategoryService(mockRepo)

		mockRepo.On("List", mock.Anything, "").Return(seedCategories(), nil).Once()

		records, err := svc.List(ctx, &service.ListQuery{})

		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, seedCategories()[0], records[0], "rows keep persistence order and full field set")
		mockRepo.AssertExpectations(t)
	})

	t.Run("Search is delegated to the repository", func(t *testing.T) {
		mockRepo := new(mocks.ResourceRepository)
		svc := newCategoryService(mockRepo)

		mockRepo.On("List", mock.Anything, "ноут").Return(seedCategories()[:1], nil).Once()

		records, err := svc.List(ctx, &service.ListQuery{Search: "ноут"})

		require.NoError(t, err)
		assert.Len(t, records, 1)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Filter keeps only truthy rows", func(t *testing.T) {
		mockRepo := new(mocks.ResourceRepository)
		svc := newCategoryService(mockRepo)

		mockRepo.On("List", mock.Anything, "").Return(seedCategories(), nil).Once()

		records, err := svc.List(ctx, &service.ListQuery{Filter: "is_visible"})

		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, int64(1), records[0]["id"])
		assert.Equal(t, int64(3), records[1]["id"])
		mockRepo.AssertExpectations(t)
	})

	t.Run("Unknown filter field is a bad request", func(t *testing.T) {
		mockRepo := new(mocks.ResourceRepository)
		svc := newCategoryService(mockRepo)

		records, err := svc.List(ctx, &service.ListQuery{Filter: "price_rub"})

		require.Error(t, err)
		assert.Nil(t, records)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)
		mockRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})

	t.Run("Range bounds slice the sequence", func(t *testing.T) {
		mockRepo := new(mocks.ResourceRepository)
		svc := newCategoryService(mockRepo)

		mockRepo.On("List", mock.Anything, "").Return(seedCategories(), nil)

		records, err := svc.List(ctx, &service.ListQuery{From: intPtr(1), To: intPtr(3)})
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, int64(2), records[0]["id"], "slice is contiguous over the unsliced ordering")

		records, err = svc.List(ctx, &service.ListQuery{From: intPtr(1), To: intPtr(10)})
		require.NoError(t, err)
		assert.Len(t, records, 2, "to is clamped to the sequence length")

		records, err = svc.List(ctx, &service.ListQuery{From: intPtr(5), To: intPtr(10)})
		require.NoError(t, err)
		assert.Empty(t, records)

		records, err = svc.List(ctx, &service.ListQuery{From: intPtr(2), To: intPtr(1)})
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("Negative bounds are a bad request", func(t *testing.T) {
		mockRepo := new(mocks.ResourceRepository)
		svc := newCategoryService(mockRepo)

		mockRepo.On("List", mock.Anything, "").Return(seedCategories(), nil).Once()

		_, err := svc.List(ctx, &service.ListQuery{From: intPtr(-1), To: intPtr(2)})

		require.Error(t, err)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)
	})

	t.Run("Fields projects each row", func(t *testing.T) {
		mockRepo := new(mocks.ResourceRepository)
		svc := newCategoryService(mockRepo)

		mockRepo.On("List", mock.Anything, "").Return(seedCategories(), nil).Once()

		records, err := svc.List(ctx, &service.ListQuery{Fields: []string{"title", "slug"}})

		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, models.Record{"title": "Ноутбуки", "slug": "laptops"}, records[0])
		mockRepo.AssertExpectations(t)
	})

	t.Run("Repository error surfaces as a database error", func(t *testing.T) {
		mockRepo := new(mocks.ResourceRepository)
		svc := newCategoryService(mockRepo)

		mockRepo.On("List", mock.Anything, "").Return(nil, errors.New("boom")).Once()

		records, err := svc.List(ctx, &service.ListQuery{})

		require.Error(t, err)
		assert.Nil(t, records)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDatabaseError, appErr.Code)
		mockRepo.AssertExpectations(t)
	})
}

func TestCreate(t *testing.T) {
	ctx := t.Context()

	t.Run("Success echoes the submitted payload", func(t *testing.T) {
		mockRepo := new(mocks.ResourceRepository)
		svc := newCategoryService(mockRepo)

		raw := map[string]any{"title": "Laptops", "slug": "laptops", "is_visible": true}

		mockRepo.On("Insert", mock.Anything, models.Record{
			"title": "Laptops", "slug": "laptops", "is_visible": true,
		}).Return(int64(7), nil).Once()

		echo, err := svc.Create(ctx, raw)

		require.NoError(t, err)
		assert.Equal(t, raw, echo, "the response is the submitted payload, not the stored row")
		mockRepo.AssertExpectations(t)
	})

	t.Run("Validation failure short-circuits before persistence", func(t *testing.T) {
		mockRepo := new(mocks.ResourceRepository)
		svc := newCategoryService(mockRepo)

		echo, err := svc.Create(ctx, map[string]any{"title": "No slug"})

		require.Error(t, err)
		assert.Nil(t, echo)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
		assert.Equal(t, "Missing data for required field.", appErr.Fields["slug"])
		mockRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("Missing parent reference is a bad request", func(t *testing.T) {
		mockRepo := new(mocks.ResourceRepository)
		svc := newProductService(mockRepo)

		mockRepo.On("Insert", mock.Anything, mock.Anything).Return(int64(0), repository.ErrForeignKey).Once()

		_, err := svc.Create(ctx, map[string]any{
			"title":       "MacBook Air",
			"price_rub":   float64(80000),
			"params":      "Процессор: Core i5",
			"category_id": float64(42),
		})

		require.Error(t, err)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)
		mockRepo.AssertExpectations(t)
	})
}

func TestGet(t *testing.T) {
	ctx := t.Context()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(mocks.ResourceRepository)
		svc := newCategoryService(mockRepo)

		mockRepo.On("GetByID", mock.Anything, int64(1)).Return(seedCategories()[0], nil).Once()

		record, err := svc.Get(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, seedCategories()[0], record)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Missing id is a distinct not-found error", func(t *testing.T) {
		mockRepo := new(mocks.ResourceRepository)
		svc := newCategoryService(mockRepo)

		mockRepo.On("GetByID", mock.Anything, int64(99)).Return(nil, repository.ErrNotFound).Once()

		record, err := svc.Get(ctx, 99)

		require.Error(t, err)
		assert.Nil(t, record)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Cache hit skips the repository", func(t *testing.T) {
		client, redisMock := redismock.NewClientMock()
		mockRepo := new(mocks.ResourceRepository)
		redisCache := cache.NewRedisCache(client, &config.CacheConfig{DefaultTTL: 0})
		svc := service.NewResourceService("categories", models.NewSchema(models.CategoryModel()), mockRepo, redisCache)

		cached, err := json.Marshal(map[string]any{"id": 1, "title": "Ноутбуки"})
		require.NoError(t, err)

		redisMock.ExpectGet(cache.Key("categories", "1")).SetVal(string(cached))

		record, err := svc.Get(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, "Ноутбуки", record["title"])
		mockRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})
}

func TestReplace(t *testing.T) {
	ctx := t.Context()

	t.Run("Overwrites only fields present in the payload", func(t *testing.T) {
		mockRepo := new(mocks.ResourceRepository)
		svc := newCategoryService(mockRepo)

		// is_visible is optional, absent from the payload, and must stay untouched.
		mockRepo.On("Update", mock.Anything, int64(1), models.Record{
			"title": "Laptops", "slug": "laptops",
		}).Return(nil).Once()

		err := svc.Replace(ctx, 1, map[string]any{"title": "Laptops", "slug": "laptops"})

		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Full validation applies", func(t *testing.T) {
		mockRepo := new(mocks.ResourceRepository)
		svc := newCategoryService(mockRepo)

		err := svc.Replace(ctx, 1, map[string]any{"title": "Only title"})

		require.Error(t, err)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Missing id is not found", func(t *testing.T) {
		mockRepo := new(mocks.ResourceRepository)
		svc := newCategoryService(mockRepo)

		mockRepo.On("Update", mock.Anything, int64(99), mock.Anything).Return(repository.ErrNotFound).Once()

		err := svc.Replace(ctx, 99, map[string]any{"title": "Laptops", "slug": "laptops"})

		require.Error(t, err)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		mockRepo.AssertExpectations(t)
	})
}

func TestUpdate(t *testing.T) {
	ctx := t.Context()

	t.Run("Partial payload returns the full updated record", func(t *testing.T) {
		mockRepo := new(mocks.ResourceRepository)
		svc := newCategoryService(mockRepo)

		updated := models.Record{"id": int64(1), "title": "Renamed", "slug": "laptops", "is_visible": true}

		mockRepo.On("Update", mock.Anything, int64(1), models.Record{"title": "Renamed"}).Return(nil).Once()
		mockRepo.On("GetByID", mock.Anything, int64(1)).Return(updated, nil).Once()

		record, err := svc.Update(ctx, 1, map[string]any{"title": "Renamed"})

		require.NoError(t, err)
		assert.Equal(t, updated, record)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Required fields may be absent", func(t *testing.T) {
		mockRepo := new(mocks.ResourceRepository)
		svc := newCategoryService(mockRepo)

		updated := models.Record{"id": int64(1), "title": "Ноутбуки", "slug": "laptops", "is_visible": false}

		mockRepo.On("Update", mock.Anything, int64(1), models.Record{"is_visible": false}).Return(nil).Once()
		mockRepo.On("GetByID", mock.Anything, int64(1)).Return(updated, nil).Once()

		record, err := svc.Update(ctx, 1, map[string]any{"is_visible": false})

		require.NoError(t, err)
		assert.Equal(t, false, record["is_visible"])
		mockRepo.AssertExpectations(t)
	})

	t.Run("Present keys are still validated", func(t *testing.T) {
		mockRepo := new(mocks.ResourceRepository)
		svc := newCategoryService(mockRepo)

		record, err := svc.Update(ctx, 1, map[string]any{"is_visible": "yes"})

		require.Error(t, err)
		assert.Nil(t, record)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
		assert.Equal(t, "Not a valid boolean.", appErr.Fields["is_visible"])
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDelete(t *testing.T) {
	ctx := t.Context()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(mocks.ResourceRepository)
		svc := newCategoryService(mockRepo)

		mockRepo.On("Delete", mock.Anything, int64(1)).Return(nil).Once()

		require.NoError(t, svc.Delete(ctx, 1))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Missing id is not found, never a fault", func(t *testing.T) {
		mockRepo := new(mocks.ResourceRepository)
		svc := newCategoryService(mockRepo)

		mockRepo.On("Delete", mock.Anything, int64(99)).Return(repository.ErrNotFound).Once()

		err := svc.Delete(ctx, 99)

		require.Error(t, err)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Referenced category delete is a conflict", func(t *testing.T) {
		mockRepo := new(mocks.ResourceRepository)
		svc := newCategoryService(mockRepo)

		mockRepo.On("Delete", mock.Anything, int64(1)).Return(repository.ErrForeignKey).Once()

		err := svc.Delete(ctx, 1)

		require.Error(t, err)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeConflict, appErr.Code)
		mockRepo.AssertExpectations(t)
	})
}
