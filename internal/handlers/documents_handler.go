package handlers

import (
	"encoding/json"
	"io"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/perfdash/dashboard-backend/internal/dto"
	"github.com/perfdash/dashboard-backend/internal/supabase"
	"github.com/perfdash/dashboard-backend/internal/validation"
)

const (
	documentsTable  = "documents"
	maxDocumentSize = 10 << 20 // 10 MB
)

type DocumentsHandler struct {
	sb *supabase.Client
}

func NewDocumentsHandler(sb *supabase.Client) *DocumentsHandler {
	return &DocumentsHandler{sb: sb}
}

// List returns documents, optionally filtered by team, employee, and
// category.
func (h *DocumentsHandler) List(c *fiber.Ctx) error {
	filters := supabase.Filters{}
	if v := c.Query("team_id"); v != "" {
		filters["team_id"] = "eq." + v
	}
	if v := c.Query("employee_id"); v != "" {
		filters["employee_id"] = "eq." + v
	}
	if v := c.Query("category"); v != "" {
		filters["category"] = "eq." + v
	}

	resp, failure := h.sb.Query(documentsTable, filters, listOptions(c))
	if failure != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Failed to fetch documents", failure.JSON()))
	}

	return c.JSON(dto.OK(resp))
}

// Get returns a single document by id.
func (h *DocumentsHandler) Get(c *fiber.Ctx) error {
	resp, failure := h.sb.Query(documentsTable, idFilter(c.Params("id")), supabase.QueryOptions{})
	if failure != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("Document not found", failure.JSON()))
	}

	records, err := rows(resp)
	if err != nil || len(records) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(dto.FailMessage("Document not found"))
	}

	return c.JSON(dto.OK(records[0]))
}

// Download resolves the public URL of a document's stored object. The URL
// is built only after the record is found; a missing id is a plain 404.
func (h *DocumentsHandler) Download(c *fiber.Ctx) error {
	resp, failure := h.sb.Query(documentsTable, idFilter(c.Params("id")), supabase.QueryOptions{})
	if failure != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("Document not found", failure.JSON()))
	}

	records, err := rows(resp)
	if err != nil || len(records) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(dto.FailMessage("Document not found"))
	}

	var doc dto.DocumentRecord
	if err := json.Unmarshal(records[0], &doc); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.FailMessage("Document not found"))
	}

	return c.JSON(dto.OK(fiber.Map{
		"url":      h.sb.PublicURL(doc.BucketName, doc.FilePath),
		"document": records[0],
	}))
}

// Upload stores the object, resolves the uploader, and inserts the
// document record. A failed insert compensates by deleting the object just
// uploaded; a failed activity log never affects the response.
func (h *DocumentsHandler) Upload(c *fiber.Ctx) error {
	teamID := c.FormValue("team_id")
	employeeID := c.FormValue("employee_id")
	title := c.FormValue("title")
	description := c.FormValue("description")
	category := c.FormValue("category")
	file, fileErr := c.FormFile("file")

	errs := validation.Errors{}
	if teamID == "" {
		errs.Add("team_id", "team_id is required")
	} else if !validation.IsUUID(teamID) {
		errs.Add("team_id", "team_id must be a valid UUID")
	}
	if employeeID != "" && !validation.IsUUID(employeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	if title == "" {
		errs.Add("title", "title is required")
	} else if len(title) > 255 {
		errs.Add("title", "title must not exceed 255 characters")
	}
	if category == "" {
		errs.Add("category", "category is required")
	} else if !validation.OneOf(category, dto.DocumentCategories...) {
		errs.Add("category", "category must be one of: performance_review, report, presentation, other")
	}
	if fileErr != nil {
		errs.Add("file", "file is required")
	} else if file.Size > maxDocumentSize {
		errs.Add("file", "file must not exceed 10 MB")
	}
	if errs.Any() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Invalid(errs))
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.FailMessage("File upload failed"))
	}
	data, err := io.ReadAll(src)
	src.Close()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.FailMessage("File upload failed"))
	}

	contentType := file.Header.Get("Content-Type")
	filePath := teamID + "/" + uuid.New().String() + "_" + file.Filename

	if failure := h.sb.UploadObject(documentsBucket, filePath, data, contentType); failure != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("File upload failed", failure.JSON()))
	}

	user, failure := h.sb.ResolveUser(bearerToken(c))
	if failure != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized", failure.JSON()))
	}

	record := map[string]any{
		"team_id":     teamID,
		"uploaded_by": user.ID,
		"title":       title,
		"file_path":   filePath,
		"file_type":   contentType,
		"file_size":   file.Size,
		"bucket_name": documentsBucket,
		"category":    category,
	}
	if employeeID != "" {
		record["employee_id"] = employeeID
	}
	if description != "" {
		record["description"] = description
	}

	resp, failure := h.sb.Insert(documentsTable, record)
	if failure != nil {
		// Compensate so no orphaned object outlives a failed insert. The
		// compensation's own failure is logged, not surfaced.
		if delFailure := h.sb.DeleteObject(documentsBucket, filePath); delFailure != nil {
			slog.Warn("compensating object delete failed", "bucket", documentsBucket, "path", filePath, "error", delFailure.Error())
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Failed to create document record", failure.JSON()))
	}

	logActivity(h.sb, user.ID, teamID, "document_uploaded",
		"Uploaded document: "+title,
		map[string]any{
			"file_name": file.Filename,
			"file_size": file.Size,
			"category":  category,
		})

	return c.Status(fiber.StatusCreated).JSON(dto.OKMessage("Document uploaded successfully", resp))
}

// Update patches the submitted metadata fields of a document.
func (h *DocumentsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateDocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.FailMessage("Invalid request body"))
	}

	errs := validation.Errors{}
	if req.Title != nil {
		if *req.Title == "" {
			errs.Add("title", "title must not be empty")
		} else if len(*req.Title) > 255 {
			errs.Add("title", "title must not exceed 255 characters")
		}
	}
	if req.Category != nil && !validation.OneOf(*req.Category, dto.DocumentCategories...) {
		errs.Add("category", "category must be one of: performance_review, report, presentation, other")
	}
	if errs.Any() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Invalid(errs))
	}

	resp, failure := h.sb.Update(documentsTable, idFilter(c.Params("id")), req.Record())
	if failure != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Failed to update document", failure.JSON()))
	}

	return c.JSON(dto.OKMessage("Document updated successfully", resp))
}

// Delete removes the stored object and then the record. Object deletion
// failure does not block the record delete.
func (h *DocumentsHandler) Delete(c *fiber.Ctx) error {
	resp, failure := h.sb.Query(documentsTable, idFilter(c.Params("id")), supabase.QueryOptions{})
	if failure != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.FailMessage("Document not found"))
	}

	records, err := rows(resp)
	if err != nil || len(records) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(dto.FailMessage("Document not found"))
	}

	var doc dto.DocumentRecord
	if err := json.Unmarshal(records[0], &doc); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.FailMessage("Document not found"))
	}

	if delFailure := h.sb.DeleteObject(doc.BucketName, doc.FilePath); delFailure != nil {
		slog.Warn("stored object delete failed", "bucket", doc.BucketName, "path", doc.FilePath, "error", delFailure.Error())
	}

	if _, failure := h.sb.Remove(documentsTable, idFilter(c.Params("id"))); failure != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Failed to delete document", failure.JSON()))
	}

	return c.JSON(dto.OKMessage("Document deleted successfully", nil))
}
