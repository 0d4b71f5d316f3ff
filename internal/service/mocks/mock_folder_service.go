package mocks

import (
	"context"

	"mediaapi/internal/model"
	"mediaapi/internal/service"
	"mediaapi/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockFolderService struct {
	mock.Mock
}

func (m *MockFolderService) List(ctx context.Context, prefix string) ([]model.Folder, error) {
	args := m.Called(ctx, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Folder), args.Error(1)
}

func (m *MockFolderService) Create(ctx context.Context, name, parent string) (*model.Folder, error) {
	args := m.Called(ctx, name, parent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Folder), args.Error(1)
}

func (m *MockFolderService) Rename(ctx context.Context, path, newName string) (*service.RenameResult, error) {
	args := m.Called(ctx, path, newName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RenameResult), args.Error(1)
}

func (m *MockFolderService) Delete(ctx context.Context, path string) (*storage.DeleteFolderResult, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.DeleteFolderResult), args.Error(1)
}
