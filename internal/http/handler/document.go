package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"patientdocs/internal/service"
)

// Root reports API liveness with a short status payload.
//
// @Summary API status
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func Root() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "Patient document API running",
		})
	}
}

// ListDocuments returns every stored document, newest first.
//
// @Summary List documents
// @Produce json
// @Success 200 {array} model.Document
// @Failure 500 {object} handler.errorPayload
// @Router /documents [get]
func ListDocuments(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		docs, err := docSvc.List(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "failed to fetch documents")
		}
		return c.JSON(docs)
	}
}

// UploadDocument accepts a single PDF in the multipart field "file",
// stores it, and returns the created metadata record.
//
// @Summary Upload a PDF document
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF file"
// @Success 201 {object} model.Document
// @Failure 400 {object} handler.errorPayload
// @Failure 415 {object} handler.errorPayload
// @Failure 500 {object} handler.errorPayload
// @Router /documents/upload [post]
func UploadDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "no file uploaded")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")

		doc, err := docSvc.Upload(c.UserContext(), f, fh.Filename, ct, fh.Size)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrUnsupportedType):
				return writeError(c, fiber.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", "only PDF files are allowed")
			case errors.Is(err, service.ErrNoFile):
				return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "no file uploaded")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "upload failed")
			}
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// DownloadDocument streams a document's content as an attachment named by
// the original filename.
//
// @Summary Download a document
// @Produce application/pdf
// @Param id path int true "Document ID"
// @Success 200 {file} binary
// @Failure 400 {object} handler.errorPayload
// @Failure 404 {object} handler.errorPayload
// @Failure 500 {object} handler.errorPayload
// @Router /documents/{id} [get]
func DownloadDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		rc, doc, err := docSvc.Fetch(c.UserContext(), id)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
			case errors.Is(err, service.ErrFileMissing):
				return writeError(c, fiber.StatusNotFound, "FILE_MISSING", "file missing from storage")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "failed to download document")
			}
		}

		// fasthttp closes the stream after the response is written.
		c.Attachment(doc.Filename)
		return c.SendStream(rc)
	}
}

// DeleteDocument removes a document's blob (best-effort) and metadata row.
//
// @Summary Delete a document
// @Produce json
// @Param id path int true "Document ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} handler.errorPayload
// @Failure 404 {object} handler.errorPayload
// @Failure 500 {object} handler.errorPayload
// @Router /documents/{id} [delete]
func DeleteDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		if err := docSvc.Delete(c.UserContext(), id); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "failed to delete document")
		}
		return c.JSON(fiber.Map{"message": "Document deleted successfully"})
	}
}

func parseID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}
