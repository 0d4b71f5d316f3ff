package mocks

import (
	"context"
	"io"

	"mediaapi/internal/model"
	"mediaapi/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Upload(ctx context.Context, r io.Reader, opt storage.UploadOptions) (model.MediaResource, error) {
	args := m.Called(ctx, r, opt)
	if f, ok := args.Get(0).(func(context.Context, io.Reader, storage.UploadOptions) model.MediaResource); ok {
		return f(ctx, r, opt), args.Error(1)
	}
	return args.Get(0).(model.MediaResource), args.Error(1)
}

func (m *MockProvider) ListAssets(ctx context.Context, q storage.AssetQuery) (storage.AssetPage, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(storage.AssetPage), args.Error(1)
}

func (m *MockProvider) Destroy(ctx context.Context, publicID string, rt model.ResourceType) (storage.DestroyResult, error) {
	args := m.Called(ctx, publicID, rt)
	return args.Get(0).(storage.DestroyResult), args.Error(1)
}

func (m *MockProvider) DeleteAssets(ctx context.Context, publicIDs []string, rt model.ResourceType) (storage.DeleteAssetsResult, error) {
	args := m.Called(ctx, publicIDs, rt)
	return args.Get(0).(storage.DeleteAssetsResult), args.Error(1)
}

func (m *MockProvider) RootFolders(ctx context.Context) ([]model.Folder, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Folder), args.Error(1)
}

func (m *MockProvider) SubFolders(ctx context.Context, path string) ([]model.Folder, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Folder), args.Error(1)
}

func (m *MockProvider) CreateFolder(ctx context.Context, path string) (model.Folder, error) {
	args := m.Called(ctx, path)
	return args.Get(0).(model.Folder), args.Error(1)
}

func (m *MockProvider) RenameFolder(ctx context.Context, from, to string) (storage.RenameFolderResult, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(storage.RenameFolderResult), args.Error(1)
}

func (m *MockProvider) DeleteFolder(ctx context.Context, path string) (storage.DeleteFolderResult, error) {
	args := m.Called(ctx, path)
	return args.Get(0).(storage.DeleteFolderResult), args.Error(1)
}

func (m *MockProvider) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
