// Package formdata binds request payloads that may arrive either as plain
// JSON or as multipart forms carrying uploads.
package formdata

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const (
	// DataField holds the JSON payload of a multipart request.
	DataField = "data"
	// FilesField holds the uploaded files of a multipart request.
	FilesField = "files"

	maxMemory = 32 << 20
)

var ErrMissingData = errors.New("multipart request requires a data field")

func IsMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// Bind decodes the payload into dst and validates it with gin's validator.
// Uploaded files are returned for multipart requests and nil otherwise.
func Bind(c *gin.Context, dst any) ([]*multipart.FileHeader, error) {
	if !IsMultipart(c) {
		return nil, c.ShouldBindJSON(dst)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, fmt.Errorf("parse multipart form: %w", err)
	}

	values := form.Value[DataField]
	if len(values) == 0 || strings.TrimSpace(values[0]) == "" {
		return nil, ErrMissingData
	}
	if err := json.Unmarshal([]byte(values[0]), dst); err != nil {
		return nil, fmt.Errorf("decode %s field: %w", DataField, err)
	}
	if err := binding.Validator.ValidateStruct(dst); err != nil {
		return nil, err
	}

	return Files(form), nil
}

// FilesOnly returns the uploads of a multipart request that carries no JSON
// payload.
func FilesOnly(c *gin.Context) ([]*multipart.FileHeader, error) {
	if !IsMultipart(c) {
		return nil, nil
	}
	if err := c.Request.ParseMultipartForm(maxMemory); err != nil {
		return nil, fmt.Errorf("parse multipart form: %w", err)
	}
	return Files(c.Request.MultipartForm), nil
}

func Files(form *multipart.Form) []*multipart.FileHeader {
	if form == nil {
		return nil
	}
	files := form.File[FilesField]
	if len(files) == 0 {
		files = form.File["file"]
	}
	return files
}
