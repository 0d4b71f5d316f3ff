package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"mediaapi/internal/service"
)

type createFolderRequest struct {
	Name   string `json:"name"`
	Parent string `json:"parent"`
}

type renameFolderRequest struct {
	Path    string `json:"path"`
	NewName string `json:"newName"`
}

type deleteFolderRequest struct {
	Path string `json:"path"`
}

// ListFolders handles GET /media/folders.
//
// @Summary     List folders
// @Tags        folders
// @Produce     json
// @Param       prefix query string false "Parent folder; empty lists root folders"
// @Success     200 {object} map[string][]model.Folder
// @Failure     500 {object} errorPayload
// @Security    BearerAuth
// @Router      /media/folders [get]
func ListFolders(svc service.FolderService, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		folders, err := svc.List(c.UserContext(), c.Query("prefix"))
		if err != nil {
			return writeServiceError(c, log, "list-folders", err)
		}
		return c.JSON(fiber.Map{"folders": folders})
	}
}

// CreateFolder handles POST /media/folders.
//
// @Summary     Create a folder
// @Tags        folders
// @Accept      json
// @Produce     json
// @Param       body body createFolderRequest true "Folder to create"
// @Success     201 {object} map[string]model.Folder
// @Failure     400 {object} errorPayload
// @Failure     500 {object} errorPayload
// @Security    BearerAuth
// @Router      /media/folders [post]
func CreateFolder(svc service.FolderService, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createFolderRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		folder, err := svc.Create(c.UserContext(), req.Name, req.Parent)
		if err != nil {
			return writeServiceError(c, log, "create-folder", err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"folder": folder})
	}
}

// RenameFolder handles POST /media/folders/rename.
//
// @Summary     Rename a folder
// @Tags        folders
// @Accept      json
// @Produce     json
// @Param       body body renameFolderRequest true "Folder and its new name"
// @Success     200 {object} service.RenameResult
// @Failure     400 {object} errorPayload
// @Failure     409 {object} errorPayload
// @Failure     500 {object} errorPayload
// @Security    BearerAuth
// @Router      /media/folders/rename [post]
func RenameFolder(svc service.FolderService, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req renameFolderRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		res, err := svc.Rename(c.UserContext(), req.Path, req.NewName)
		if err != nil {
			return writeServiceError(c, log, "rename-folder", err)
		}
		return c.JSON(res)
	}
}

// DeleteFolder handles DELETE /media/folders.
//
// @Summary     Delete a folder and its contents
// @Tags        folders
// @Accept      json
// @Produce     json
// @Param       body body deleteFolderRequest true "Folder to delete"
// @Success     200 {object} map[string]storage.DeleteFolderResult
// @Failure     400 {object} errorPayload
// @Failure     500 {object} errorPayload
// @Security    BearerAuth
// @Router      /media/folders [delete]
func DeleteFolder(svc service.FolderService, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req deleteFolderRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		res, err := svc.Delete(c.UserContext(), req.Path)
		if err != nil {
			return writeServiceError(c, log, "delete-folder", err)
		}
		return c.JSON(fiber.Map{"result": res})
	}
}
