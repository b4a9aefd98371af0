package admin

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/therapy-portal/internal/handler"
	"github.com/jwalitptl/therapy-portal/internal/model"
	apperrors "github.com/jwalitptl/therapy-portal/pkg/errors"
	"github.com/jwalitptl/therapy-portal/pkg/httputil"
)

const (
	msgMaterialsLoadFailed = "Error al cargar materiales"
	msgMaterialUploaded    = "Material subido exitosamente"
	msgMaterialUploadFail  = "Error al subir el material"
	msgMaterialDeleted     = "Material eliminado exitosamente"
	msgMaterialDeleteFail  = "Error al eliminar material"
)

func (h *Handler) ListMaterials(c *gin.Context) {
	materials, err := h.dashboard.ListMaterials(c.Request.Context())
	if err != nil {
		h.fail(c, err, msgMaterialsLoadFailed)
		return
	}
	httputil.RespondWithSuccess(c, materials)
}

// UploadMaterial accepts the multipart form and streams the file upstream.
func (h *Handler) UploadMaterial(c *gin.Context) {
	up := &model.MaterialUpload{
		Title:       c.PostForm("titulo"),
		Description: c.PostForm("descripcion"),
		Category:    model.MaterialCategory(c.PostForm("categoria")),
	}
	up.Public, _ = strconv.ParseBool(c.PostForm("visiblePublico"))

	fh, err := c.FormFile("file")
	switch {
	case err == nil:
		var file multipart.File
		file, err = fh.Open()
		if err != nil {
			httputil.RespondWithError(c, apperrors.BadRequest("invalid upload", err))
			return
		}
		defer file.Close()
		up.FileName = fh.Filename
		up.File = file
	case errors.Is(err, http.ErrMissingFile):
		// reported by validation below
	default:
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httputil.RespondWithError(c, apperrors.TooLarge(err))
			return
		}
		httputil.RespondWithError(c, apperrors.BadRequest("invalid multipart form", fmt.Errorf("read upload: %w", err)))
		return
	}

	m, err := h.dashboard.UploadMaterial(c.Request.Context(), up)
	if err != nil {
		h.fail(c, err, msgMaterialUploadFail)
		return
	}
	handler.NotifySuccess(c, h.notices, msgMaterialUploaded)
	httputil.RespondCreated(c, m)
}

func (h *Handler) DeleteMaterial(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	if err := h.dashboard.DeleteMaterial(c.Request.Context(), id, handler.Confirmed(c)); err != nil {
		h.fail(c, err, msgMaterialDeleteFail)
		return
	}
	handler.NotifySuccess(c, h.notices, msgMaterialDeleted)
	httputil.RespondWithSuccess(c, nil)
}
