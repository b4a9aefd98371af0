package model

import "io"

type MaterialCategory string

const (
	MaterialCategoryExercises   MaterialCategory = "EJERCICIOS"
	MaterialCategoryGuides      MaterialCategory = "GUIAS"
	MaterialCategoryActivities  MaterialCategory = "ACTIVIDADES"
	MaterialCategoryInformation MaterialCategory = "INFORMACION"
	MaterialCategoryAssessments MaterialCategory = "EVALUACIONES"
	MaterialCategoryOther       MaterialCategory = "OTROS"

	// MaterialCategoryAll is a filter value only; no material carries it.
	MaterialCategoryAll MaterialCategory = "TODOS"
)

var MaterialCategories = []MaterialCategory{
	MaterialCategoryExercises,
	MaterialCategoryGuides,
	MaterialCategoryActivities,
	MaterialCategoryInformation,
	MaterialCategoryAssessments,
	MaterialCategoryOther,
}

func (c MaterialCategory) Valid() bool {
	for _, known := range MaterialCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Material mirrors the backend's material resource. DownloadURL is filled
// in by the portal and never sent upstream.
type Material struct {
	ID          int64            `json:"id"`
	Title       string           `json:"titulo"`
	Description string           `json:"descripcion,omitempty"`
	FileName    string           `json:"nombreArchivo,omitempty"`
	FileType    string           `json:"tipoArchivo,omitempty"`
	SizeBytes   int64            `json:"tamanoBytes,omitempty"`
	Category    MaterialCategory `json:"categoria"`
	Public      bool             `json:"visiblePublico"`
	CreatedAt   *LocalDateTime   `json:"createdAt,omitempty"`
	DownloadURL string           `json:"download_url,omitempty"`
}

// MaterialUpload is the multipart form an admin submits.
type MaterialUpload struct {
	Title       string           `json:"titulo" validate:"required,max=200"`
	Description string           `json:"descripcion" validate:"max=2000"`
	Category    MaterialCategory `json:"categoria" validate:"required,material_category"`
	Public      bool             `json:"visiblePublico"`
	FileName    string           `json:"file" validate:"required"`
	File        io.Reader        `json:"-"`
}
