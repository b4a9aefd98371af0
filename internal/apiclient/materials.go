package apiclient

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/jwalitptl/therapy-portal/internal/model"
)

const materialsPath = "/materiales"

func (c *Client) ListMaterials(ctx context.Context) ([]*model.Material, error) {
	return c.listMaterials(ctx, materialsPath)
}

func (c *Client) ListPublicMaterials(ctx context.Context) ([]*model.Material, error) {
	return c.listMaterials(ctx, materialsPath+"/publicos")
}

func (c *Client) ListMaterialsByCategory(ctx context.Context, category model.MaterialCategory) ([]*model.Material, error) {
	return c.listMaterials(ctx, materialsPath+"/categoria/"+string(category))
}

func (c *Client) listMaterials(ctx context.Context, path string) ([]*model.Material, error) {
	var out []*model.Material
	if err := c.getJSON(ctx, "materials", path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetMaterial(ctx context.Context, id int64) (*model.Material, error) {
	var out model.Material
	if err := c.getJSON(ctx, "materials", idPath(materialsPath, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateMaterial(ctx context.Context, id int64, m *model.Material) (*model.Material, error) {
	var out model.Material
	if err := c.doJSON(ctx, "materials", http.MethodPut, idPath(materialsPath, id), nil, m, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteMaterial(ctx context.Context, id int64) error {
	return c.doJSON(ctx, "materials", http.MethodDelete, idPath(materialsPath, id), nil, nil, nil)
}

// DownloadURL builds the public download link; it performs no I/O.
func (c *Client) DownloadURL(id int64) string {
	return fmt.Sprintf("%s%s/descargar/%d", c.baseURL, materialsPath, id)
}

// UploadMaterial streams the file to the backend as multipart/form-data
// with the fields file, titulo, descripcion, categoria and visiblePublico.
func (c *Client) UploadMaterial(ctx context.Context, up *model.MaterialUpload) (*model.Material, error) {
	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeUploadForm(form, up))
	}()

	req, err := c.newRequest(ctx, http.MethodPost, materialsPath, nil, pr)
	if err != nil {
		pr.Close()
		return nil, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	var out model.Material
	if err := c.do(req, "materials", &out); err != nil {
		pr.Close()
		return nil, err
	}
	return &out, nil
}

func writeUploadForm(form *multipart.Writer, up *model.MaterialUpload) error {
	part, err := form.CreateFormFile("file", up.FileName)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, up.File); err != nil {
		return fmt.Errorf("failed to stream upload: %w", err)
	}

	fields := [][2]string{
		{"titulo", up.Title},
		{"descripcion", up.Description},
		{"categoria", string(up.Category)},
		{"visiblePublico", strconv.FormatBool(up.Public)},
	}
	for _, f := range fields {
		if err := form.WriteField(f[0], f[1]); err != nil {
			return err
		}
	}
	return form.Close()
}
