package formdata

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Title string `json:"title" binding:"required"`
}

func newContext(req *http.Request) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req
	return c
}

func TestBind_JSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"brief"}`))
	req.Header.Set("Content-Type", "application/json")

	var p payload
	files, err := Bind(newContext(req), &p)

	assert.NoError(t, err)
	assert.Nil(t, files)
	assert.Equal(t, "brief", p.Title)
}

func TestBind_Multipart(t *testing.T) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	require.NoError(t, w.WriteField("data", `{"title":"with files"}`))
	part, err := w.CreateFormFile("files", "brief.pdf")
	require.NoError(t, err)
	_, _ = part.Write([]byte("%PDF"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())

	var p payload
	files, err := Bind(newContext(req), &p)

	assert.NoError(t, err)
	assert.Equal(t, "with files", p.Title)
	require.Len(t, files, 1)
	assert.Equal(t, "brief.pdf", files[0].Filename)
}

func TestBind_MultipartValidation(t *testing.T) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	require.NoError(t, w.WriteField("data", `{}`))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())

	var p payload
	_, err := Bind(newContext(req), &p)
	assert.Error(t, err)
}

func TestBind_MultipartWithoutData(t *testing.T) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	require.NoError(t, w.WriteField("title", "x"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())

	var p payload
	_, err := Bind(newContext(req), &p)
	assert.ErrorIs(t, err, ErrMissingData)
}
