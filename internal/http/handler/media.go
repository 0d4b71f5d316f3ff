package handler

import (
	"encoding/json"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"mediaapi/internal/model"
	"mediaapi/internal/service"
)

const defaultContentType = "application/octet-stream"

type deleteResourceRequest struct {
	PublicID     string `json:"publicId"`
	ResourceType string `json:"resourceType"`
}

type bulkDeleteRequest struct {
	Items []model.ResourceRef `json:"items"`
}

// parsePaths decodes the "paths" form field. Anything that is not a JSON array of strings yields nil.
func parsePaths(raw string) []string {
	if raw == "" {
		return nil
	}
	var paths []string
	if err := json.Unmarshal([]byte(raw), &paths); err != nil {
		return nil
	}
	return paths
}

func formValue(form *multipart.Form, key string) string {
	if v := form.Value[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}

// UploadMedia handles POST /media/upload.
//
// @Summary     Upload media files
// @Tags        media
// @Accept      multipart/form-data
// @Produce     json
// @Param       files  formData file   true  "Files to upload"
// @Param       folder formData string false "Base folder"
// @Param       paths  formData string false "JSON array of relative paths aligned with files"
// @Success     201 {object} map[string][]model.UploadResult
// @Failure     400 {object} errorPayload
// @Failure     500 {object} errorPayload
// @Security    BearerAuth
// @Router      /media/upload [post]
func UploadMedia(svc service.MediaService, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := c.MultipartForm()
		if err != nil {
			return writeServiceError(c, log, "upload", service.ErrNoFiles)
		}

		files := form.File["files"]
		paths := parsePaths(formValue(form, "paths"))

		items := make([]model.UploadItem, 0, len(files))
		opened := make([]io.Closer, 0, len(files))
		defer func() {
			for _, f := range opened {
				_ = f.Close()
			}
		}()
		for i, fh := range files {
			f, err := fh.Open()
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
			}
			opened = append(opened, f)

			ct := fh.Header.Get(fiber.HeaderContentType)
			if ct == "" {
				ct = defaultContentType
			}
			var p string
			if i < len(paths) {
				p = paths[i]
			}
			items = append(items, model.UploadItem{
				Filename:    fh.Filename,
				Path:        p,
				ContentType: ct,
				Size:        fh.Size,
				Body:        f,
			})
		}

		res, err := svc.Upload(c.UserContext(), formValue(form, "folder"), items)
		if err != nil {
			return writeServiceError(c, log, "upload", err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"uploaded": res})
	}
}

// ListResources handles GET /media/.
//
// @Summary     List media resources
// @Tags        media
// @Produce     json
// @Param       prefix       query string false "Folder prefix"
// @Param       resourceType query string false "image, video, raw or all" default(all)
// @Param       max          query int    false "Page size, 1..200" default(60)
// @Param       nextCursor   query string false "Cursor from a previous single-type page"
// @Success     200 {object} service.ListResult
// @Failure     400 {object} errorPayload
// @Failure     500 {object} errorPayload
// @Security    BearerAuth
// @Router      /media/ [get]
func ListResources(svc service.MediaService, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.List(c.UserContext(), service.ListQuery{
			Prefix:       c.Query("prefix"),
			ResourceType: c.Query("resourceType", model.TypeFilterAll),
			Limit:        service.ParseLimit(c.Query("max")),
			NextCursor:   c.Query("nextCursor"),
		})
		if err != nil {
			return writeServiceError(c, log, "list", err)
		}
		return c.JSON(res)
	}
}

// DeleteResource handles DELETE /media/.
//
// @Summary     Delete a single resource
// @Tags        media
// @Accept      json
// @Produce     json
// @Param       body body deleteResourceRequest true "Resource to delete"
// @Success     200 {object} map[string]string
// @Failure     400 {object} errorPayload
// @Failure     500 {object} errorPayload
// @Security    BearerAuth
// @Router      /media/ [delete]
func DeleteResource(svc service.MediaService, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req deleteResourceRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		res, err := svc.Delete(c.UserContext(), model.ResourceRef{
			PublicID:     req.PublicID,
			ResourceType: req.ResourceType,
		})
		if err != nil {
			return writeServiceError(c, log, "delete", err)
		}
		return c.JSON(fiber.Map{"result": res.Result})
	}
}

// BulkDeleteResources handles POST /media/bulk-delete.
//
// @Summary     Delete many resources
// @Tags        media
// @Accept      json
// @Produce     json
// @Param       body body bulkDeleteRequest true "Resources to delete"
// @Success     200 {object} map[string]service.BulkDeleteResult
// @Failure     400 {object} errorPayload
// @Failure     500 {object} errorPayload
// @Security    BearerAuth
// @Router      /media/bulk-delete [post]
func BulkDeleteResources(svc service.MediaService, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req bulkDeleteRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		res, err := svc.BulkDelete(c.UserContext(), req.Items)
		if err != nil {
			return writeServiceError(c, log, "bulk-delete", err)
		}
		return c.JSON(fiber.Map{"result": res})
	}
}
