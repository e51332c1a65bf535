package service_test

import (
	"context"
	"errors"
	"testing"

	"resto/config"
	"resto/infras/otel/mocks"
	tableMocks "resto/internal/domains/table/mocks"
	"resto/internal/domains/table/model"
	"resto/internal/domains/table/model/dto"
	"resto/internal/domains/table/service"
	"resto/shared/cache"
	cacheMocks "resto/shared/cache/mocks"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	"resto/shared/failure"
	gModel "resto/shared/model"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testTableID = "0d9a41b3-2f1d-4a83-9d5e-6b7c8d9e0f1a"

func newTableService(t *testing.T) (service.Table, *tableMocks.MockTable, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := tableMocks.NewMockTable(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	return svc, mockRepo, mockCache
}

func adminContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
}

func storedTable() model.Table {
	return model.Table{
		ID:          testTableID,
		TableNumber: 7,
		Capacity:    4,
		Location:    "window",
		Active:      true,
		Metadata: gModel.Metadata{
			CreatedBy:  "admin-1",
			ModifiedBy: "admin-1",
		},
	}
}

func TestTableService_Create(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		svc, mockRepo, mockCache := newTableService(t)

		req := dto.CreateTableRequest{TableNumber: 7, Capacity: 4, Location: "window"}

		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, table model.Table) error {
				assert.Equal(t, 7, table.TableNumber)
				assert.Equal(t, 4, table.Capacity)
				assert.True(t, table.Active)
				assert.Equal(t, "admin-1", table.CreatedBy)

				return nil
			},
		)
		mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := svc.Create(adminContext(), req)
		require.NoError(t, err)
	})

	t.Run("inactive on request", func(t *testing.T) {
		svc, mockRepo, mockCache := newTableService(t)

		active := false
		req := dto.CreateTableRequest{TableNumber: 8, Capacity: 2, Active: &active}

		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, table model.Table) error {
				assert.False(t, table.Active)

				return nil
			},
		)
		mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := svc.Create(adminContext(), req)
		require.NoError(t, err)
	})

	t.Run("duplicate table number", func(t *testing.T) {
		svc, mockRepo, _ := newTableService(t)

		req := dto.CreateTableRequest{TableNumber: 7, Capacity: 4}

		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(
			&pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeUniqueViolation)},
		)

		err := svc.Create(adminContext(), req)
		require.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
		assert.Contains(t, err.Error(), "table number 7 already exists")
	})

	t.Run("repository error", func(t *testing.T) {
		svc, mockRepo, _ := newTableService(t)

		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db error"))

		err := svc.Create(adminContext(), dto.CreateTableRequest{TableNumber: 7, Capacity: 4})
		require.Error(t, err)
	})
}

func TestTableService_GetAll(t *testing.T) {
	t.Run("cache miss hits repository", func(t *testing.T) {
		svc, mockRepo, mockCache := newTableService(t)

		req := gDto.QueryParams{Page: 1, Limit: 10}
		filter := gDto.FilterGroup{}

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).Times(2)
		mockRepo.EXPECT().Count(gomock.Any(), filter).Return(1, nil)
		mockRepo.EXPECT().GetAll(gomock.Any(), req, filter).Return([]model.Table{storedTable()}, nil)
		mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 3600).Return(nil).AnyTimes()

		res, err := svc.GetAll(context.Background(), req, filter)
		require.NoError(t, err)
		require.Len(t, res.Tables, 1)
		assert.Equal(t, testTableID, res.Tables[0].ID)
		assert.Equal(t, 1, res.TotalData)
	})

	t.Run("repository error", func(t *testing.T) {
		svc, mockRepo, mockCache := newTableService(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).Times(2)
		mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("db error"))

		_, err := svc.GetAll(context.Background(), gDto.QueryParams{}, gDto.FilterGroup{})
		require.Error(t, err)
	})
}

func TestTableService_Get(t *testing.T) {
	t.Run("successful get", func(t *testing.T) {
		svc, mockRepo, mockCache := newTableService(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedTable(), nil)
		mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 3600).Return(nil).AnyTimes()

		res, err := svc.Get(context.Background(), testTableID)
		require.NoError(t, err)
		assert.Equal(t, 7, res.TableNumber)
		assert.Equal(t, "window", res.Location)
	})

	t.Run("table not found", func(t *testing.T) {
		svc, mockRepo, mockCache := newTableService(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Table{}, nil)

		_, err := svc.Get(context.Background(), testTableID)
		require.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestTableService_Update(t *testing.T) {
	t.Run("successful update", func(t *testing.T) {
		svc, mockRepo, mockCache := newTableService(t)

		req := dto.UpdateTableRequest{Capacity: 6}

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, 6, fields["capacity"])
				assert.Equal(t, "admin-1", fields["modified_by"])

				return nil
			},
		)
		mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := svc.Update(adminContext(), req, testTableID)
		require.NoError(t, err)
	})

	t.Run("table not found", func(t *testing.T) {
		svc, mockRepo, _ := newTableService(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Update(adminContext(), dto.UpdateTableRequest{Capacity: 6}, testTableID)
		require.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestTableService_Delete(t *testing.T) {
	t.Run("successful delete", func(t *testing.T) {
		svc, mockRepo, mockCache := newTableService(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := svc.Delete(adminContext(), testTableID)
		require.NoError(t, err)
	})

	t.Run("table not found", func(t *testing.T) {
		svc, mockRepo, _ := newTableService(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Delete(adminContext(), testTableID)
		require.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}
