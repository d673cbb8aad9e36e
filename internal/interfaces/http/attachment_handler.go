package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/runnersutah/pipetrack-api/internal/application/dto"
)

// AttachmentStore blobs opacos de los adjuntos del ledger.
type AttachmentStore interface {
	Save(filename string, r io.Reader) (string, error)
	Open(id string) (io.ReadCloser, error)
	Delete(id string) error
}

// AttachmentHandler sube y descarga adjuntos. El ledger solo guarda el id
// devuelto por Upload.
type AttachmentHandler struct {
	store AttachmentStore
}

// NewAttachmentHandler construye el handler.
func NewAttachmentHandler(store AttachmentStore) *AttachmentHandler {
	return &AttachmentHandler{store: store}
}

// Upload godoc
// @Summary      Subir adjunto
// @Tags         attachments
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Archivo adjunto"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/attachments [post]
func (h *AttachmentHandler) Upload(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "campo file requerido"})
	}
	f, err := header.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer f.Close()
	id, err := h.store.Save(header.Filename, f)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// Download godoc
// @Summary      Descargar adjunto
// @Tags         attachments
// @Security     Bearer
// @Produce      application/octet-stream
// @Param        id  path  string  true  "ID del adjunto"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/attachments/{id} [get]
func (h *AttachmentHandler) Download(c *fiber.Ctx) error {
	f, err := h.store.Open(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+c.Params("id")+`"`)
	return c.SendStream(f)
}

// Delete godoc
// @Summary      Eliminar adjunto
// @Tags         attachments
// @Security     Bearer
// @Param        id  path  string  true  "ID del adjunto"
// @Success      204
// @Router       /api/attachments/{id} [delete]
func (h *AttachmentHandler) Delete(c *fiber.Ctx) error {
	if err := h.store.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
