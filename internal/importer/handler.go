package importer

import (
	"fmt"

	"catalog-backend/internal/audit"
	"catalog-backend/internal/models"
	"catalog-backend/internal/notice"

	"github.com/gofiber/fiber/v2"
)

// UploadHandler serves POST /api/admin/import: a multipart upload with
// the spreadsheet under the "file" field.
func UploadHandler(imp *Importer, recorder *audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "An .xlsx file is required under the \"file\" field.")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "The uploaded file could not be opened.")
		}
		defer file.Close()

		summary, err := imp.ImportXLSX(file)
		if err != nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "The spreadsheet could not be processed.")
		}

		_ = recorder.Write(audit.LogOptions{
			EntityType: "product",
			Action:     models.AuditActionImport,
			Description: fmt.Sprintf("Imported %q: %d created, %d skipped, %d new categories",
				fileHeader.Filename, summary.Created, summary.Skipped, summary.CategoriesCreated),
			After: summary,
		})

		return c.JSON(fiber.Map{
			"summary": summary,
			"notice": notice.Success(fmt.Sprintf(
				"%d products imported, %d rows skipped.", summary.Created, summary.Skipped)),
		})
	}
}
