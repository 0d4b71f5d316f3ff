package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mediaapi/internal/model"
	"mediaapi/internal/pathutil"
	"mediaapi/internal/storage"
)

var (
	ErrFolderNameRequired = errors.New("folder name is required")
	ErrFolderPathRequired = errors.New("folder path is required")
	ErrNewNameRequired    = errors.New("new folder name is required")
)

// RenameResult is the rename response: the provider result plus the resolved paths.
type RenameResult struct {
	Result storage.RenameFolderResult `json:"result"`
	From   string                     `json:"from"`
	To     string                     `json:"to"`
}

// FolderService defines the folder use cases. Every path argument is sanitized before use.
type FolderService interface {
	// List returns root folders when prefix is empty, otherwise the sub-folders of prefix.
	List(ctx context.Context, prefix string) ([]model.Folder, error)
	Create(ctx context.Context, name, parent string) (*model.Folder, error)
	// Rename replaces the last segment of path with newName, keeping the parent. Renaming a folder
	// to its current name moves nothing.
	Rename(ctx context.Context, path, newName string) (*RenameResult, error)
	// Delete removes the folder and everything in it.
	Delete(ctx context.Context, path string) (*storage.DeleteFolderResult, error)
}

type folderService struct {
	provider storage.Provider
}

// NewFolderService constructs a new FolderService.
func NewFolderService(provider storage.Provider) FolderService {
	return &folderService{provider: provider}
}

func (s *folderService) List(ctx context.Context, prefix string) ([]model.Folder, error) {
	var (
		folders []model.Folder
		err     error
	)
	if p := pathutil.Sanitize(prefix); p == "" {
		folders, err = s.provider.RootFolders(ctx)
	} else {
		folders, err = s.provider.SubFolders(ctx, p)
	}
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	if folders == nil {
		folders = []model.Folder{}
	}
	return folders, nil
}

func (s *folderService) Create(ctx context.Context, name, parent string) (*model.Folder, error) {
	n := pathutil.Sanitize(strings.TrimSpace(name))
	if n == "" {
		return nil, ErrFolderNameRequired
	}
	p := pathutil.Join(parent, n)
	folder, err := s.provider.CreateFolder(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create folder %s: %w", p, err)
	}
	return &folder, nil
}

func (s *folderService) Rename(ctx context.Context, path, newName string) (*RenameResult, error) {
	from := pathutil.Sanitize(path)
	if from == "" {
		return nil, ErrFolderPathRequired
	}
	n := pathutil.Segment(strings.TrimSpace(newName))
	if n == "" {
		return nil, ErrNewNameRequired
	}
	to := pathutil.Join(pathutil.Parent(from), n)
	if to == from {
		return &RenameResult{
			Result: storage.RenameFolderResult{
				From: model.Folder{Name: pathutil.Leaf(from), Path: from},
				To:   model.Folder{Name: pathutil.Leaf(to), Path: to},
			},
			From: from,
			To:   to,
		}, nil
	}

	res, err := s.provider.RenameFolder(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("rename folder %s to %s: %w", from, to, err)
	}
	return &RenameResult{Result: res, From: from, To: to}, nil
}

func (s *folderService) Delete(ctx context.Context, path string) (*storage.DeleteFolderResult, error) {
	p := pathutil.Sanitize(path)
	if p == "" {
		return nil, ErrFolderPathRequired
	}
	res, err := s.provider.DeleteFolder(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("delete folder %s: %w", p, err)
	}
	return &res, nil
}
