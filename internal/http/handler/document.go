package handler

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/service"
)

// ListDocuments lists the caller's documents with limit & offset.
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, ok, err := page(c)
		if !ok {
			return err
		}
		res, err := svc.List(c.UserContext(), principal(c), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// UploadDocument accepts multipart/form-data with a "file" field and optional
// doc_type, quote_id and shipment_id fields. maxBytes <= 0 disables the size check.
func UploadDocument(svc service.DocumentService, maxBytes int64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}
		if maxBytes > 0 && fh.Size > maxBytes {
			return writeError(c, fiber.StatusRequestEntityTooLarge, "FILE_TOO_LARGE",
				fmt.Sprintf("file exceeds %d bytes", maxBytes))
		}

		docType := model.DocumentType(strings.ToUpper(strings.TrimSpace(c.FormValue("doc_type"))))
		if docType != "" && !docType.Valid() {
			return writeError(c, fiber.StatusBadRequest, "INVALID_DOC_TYPE", "doc_type must be one of: MSDS, COA, INVOICE, BOL, OTHER")
		}
		quoteID := strings.TrimSpace(c.FormValue("quote_id"))
		shipmentID := strings.TrimSpace(c.FormValue("shipment_id"))
		for _, id := range []string{quoteID, shipmentID} {
			if id == "" {
				continue
			}
			if _, err := uuid.Parse(id); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
			}
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		doc, err := svc.Upload(c.UserContext(), principal(c), service.UploadInput{
			Reader:      f,
			Filename:    fh.Filename,
			ContentType: ct,
			Size:        fh.Size,
			DocType:     docType,
			QuoteID:     quoteID,
			ShipmentID:  shipmentID,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// GetDocument returns document metadata by ID.
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := idParam(c)
		if !ok {
			return err
		}
		doc, err := svc.Get(c.UserContext(), principal(c), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// DownloadDocument streams the decrypted content.
func DownloadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := idParam(c)
		if !ok {
			return err
		}
		doc, rc, err := svc.Download(c.UserContext(), principal(c), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		c.Set(fiber.HeaderContentType, doc.ContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.Filename))
		// fasthttp closes rc once the body has been written.
		return c.SendStream(rc)
	}
}

// DeleteDocument removes a document by ID.
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := idParam(c)
		if !ok {
			return err
		}
		if err := svc.Delete(c.UserContext(), principal(c), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
