package mocks

import (
	"context"

	"mediaapi/internal/model"
	"mediaapi/internal/service"
	"mediaapi/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockMediaService struct {
	mock.Mock
}

func (m *MockMediaService) Upload(ctx context.Context, folder string, items []model.UploadItem) ([]model.UploadResult, error) {
	args := m.Called(ctx, folder, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UploadResult), args.Error(1)
}

func (m *MockMediaService) List(ctx context.Context, q service.ListQuery) (*service.ListResult, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult), args.Error(1)
}

func (m *MockMediaService) Delete(ctx context.Context, ref model.ResourceRef) (*storage.DestroyResult, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.DestroyResult), args.Error(1)
}

func (m *MockMediaService) BulkDelete(ctx context.Context, refs []model.ResourceRef) (service.BulkDeleteResult, error) {
	args := m.Called(ctx, refs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(service.BulkDeleteResult), args.Error(1)
}
