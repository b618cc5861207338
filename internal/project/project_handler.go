package project

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"go-hrm/internal/middleware"
	"go-hrm/internal/shared/apperror"
	"go-hrm/internal/shared/formdata"
	"go-hrm/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("project.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("project.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("project request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) writeBindError(c *gin.Context, err error) {
	h.logger.Warn("http project validation failed", zap.Error(err))
	h.writeServiceError(c, apperror.MapValidationError(err))
}

// queryVersion reads the optional ?version= guard used by DELETE routes.
func queryVersion(c *gin.Context) (*int64, bool) {
	raw := strings.TrimSpace(c.Query("version"))
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, false
	}
	return &v, true
}

func (h *Handler) List(c *gin.Context) {
	filter := ListFilter{
		Status:     strings.TrimSpace(c.Query("status")),
		Department: strings.TrimSpace(c.Query("department")),
		Query:      strings.TrimSpace(c.Query("q")),
	}

	resp, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	items, meta := response.Paginate(resp, page, pageSize)
	response.Success(c, http.StatusOK, items, &meta)
}

func (h *Handler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateProjectRequest
	files, err := formdata.Bind(c, &req)
	if err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req, files)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusCreated, "Project created successfully", resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Project updated successfully", resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	version, ok := queryVersion(c)
	if !ok {
		h.writeServiceError(c, apperror.InvalidField("Version"))
		return
	}
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), version); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Project deleted successfully", nil, nil)
}

func (h *Handler) GetMyProjects(c *gin.Context) {
	employeeID, ok := middleware.CurrentEmployeeID(c)
	if !ok {
		return
	}
	resp, err := h.service.GetMyProjects(c.Request.Context(), employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetMyManagedProjects(c *gin.Context) {
	employeeID, ok := middleware.CurrentEmployeeID(c)
	if !ok {
		return
	}
	resp, err := h.service.GetMyManagedProjects(c.Request.Context(), employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) AddModule(c *gin.Context) {
	var req ModuleRequest
	files, err := formdata.Bind(c, &req)
	if err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.AddModule(c.Request.Context(), c.Param("id"), req, files)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusCreated, "Module added successfully", resp, nil)
}

func (h *Handler) UpdateModule(c *gin.Context) {
	var req UpdateModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.UpdateModule(c.Request.Context(), c.Param("id"), c.Param("moduleId"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Module updated successfully", resp, nil)
}

func (h *Handler) DeleteModule(c *gin.Context) {
	version, ok := queryVersion(c)
	if !ok {
		h.writeServiceError(c, apperror.InvalidField("Version"))
		return
	}
	resp, err := h.service.DeleteModule(c.Request.Context(), c.Param("id"), c.Param("moduleId"), version)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Module deleted successfully", resp, nil)
}

func (h *Handler) AssignModuleTeamLead(c *gin.Context) {
	var req AssignTeamLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.AssignModuleTeamLead(c.Request.Context(), c.Param("id"), c.Param("moduleId"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Team lead assigned successfully", resp, nil)
}

// AttachModuleFiles accepts multipart uploads, with or without a data field,
// or a JSON body of already stored file metadata.
func (h *Handler) AttachModuleFiles(c *gin.Context) {
	var req AttachFilesRequest
	var files []*multipart.FileHeader
	var err error
	if formdata.IsMultipart(c) && c.PostForm(formdata.DataField) == "" {
		files, err = formdata.FilesOnly(c)
	} else {
		files, err = formdata.Bind(c, &req)
	}
	if err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.AttachModuleFiles(c.Request.Context(), c.Param("id"), c.Param("moduleId"), req, files)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Files attached successfully", resp, nil)
}

func (h *Handler) AddRequirement(c *gin.Context) {
	var req RequirementRequest
	files, err := formdata.Bind(c, &req)
	if err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.AddRequirement(c.Request.Context(), c.Param("id"), req, files)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusCreated, "Requirement added successfully", resp, nil)
}

func (h *Handler) DeleteRequirement(c *gin.Context) {
	version, ok := queryVersion(c)
	if !ok {
		h.writeServiceError(c, apperror.InvalidField("Version"))
		return
	}
	resp, err := h.service.DeleteRequirement(c.Request.Context(), c.Param("id"), c.Param("requirementId"), version)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Requirement deleted successfully", resp, nil)
}
