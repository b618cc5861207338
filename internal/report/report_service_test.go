package report

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-hrm/internal/employee"
	"go-hrm/internal/employeestatus"
	"go-hrm/internal/project"
	"go-hrm/internal/task"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeProjects struct {
	ListFn func(ctx context.Context, filter project.ListFilter) ([]project.ProjectResponse, error)
}

func (f *fakeProjects) List(ctx context.Context, filter project.ListFilter) ([]project.ProjectResponse, error) {
	return f.ListFn(ctx, filter)
}

type fakeOverview struct {
	resp employeestatus.OverviewResponse
	err  error
}

func (f *fakeOverview) GetOverview(context.Context) (employeestatus.OverviewResponse, error) {
	return f.resp, f.err
}

type fakeTasks struct {
	tasks []task.Task
}

func (f *fakeTasks) FindAll(context.Context) ([]task.Task, error) {
	return f.tasks, nil
}

func fixture() (*fakeProjects, *fakeOverview, *fakeTasks) {
	alpha := uuid.New()
	beta := uuid.New()

	projects := &fakeProjects{ListFn: func(_ context.Context, _ project.ListFilter) ([]project.ProjectResponse, error) {
		return []project.ProjectResponse{
			{
				ID:          alpha.String(),
				Code:        "PRJ-000001",
				ProjectName: "Payroll Revamp",
				Department:  "Engineering",
				Manager:     &employee.Summary{ID: "m1", FullName: "Mia Manager"},
				TeamLead:    &employee.Summary{ID: "l1"},
				TeamMembers: []employee.Summary{{ID: "a", FullName: "Ari"}, {ID: "b", FullName: "Bo"}},
				StartDate:   "2026-01-01",
				Deadline:    "2026-02-01",
				Status:      string(project.StatusActive),
				Progress:    40,
				Modules:     []project.ModuleResponse{{}, {}},
			},
			{
				ID:          beta.String(),
				Code:        "PRJ-000002",
				ProjectName: "Portal",
				Department:  "Product",
				StartDate:   "2026-01-01",
				Deadline:    "2026-01-15",
				Status:      string(project.StatusCompleted),
				Progress:    100,
			},
		}, nil
	}}

	overview := &fakeOverview{resp: employeestatus.OverviewResponse{
		Total: 3,
		ByStatus: []employeestatus.CountResponse{
			{Value: "Intern", Count: 1},
			{Value: "Confirmed", Count: 2},
		},
		ByWorkMode: []employeestatus.CountResponse{
			{Value: "Office", Count: 2},
			{Value: "Remote", Count: 1},
		},
	}}

	tasks := &fakeTasks{tasks: []task.Task{
		{ProjectID: alpha, Status: task.StatusCompleted},
		{ProjectID: alpha, Status: task.StatusPending},
		{ProjectID: alpha, Status: task.StatusInProgress},
		{ProjectID: beta, Status: task.StatusCompleted},
	}}

	return projects, overview, tasks
}

func newTestService(p ProjectLister, o StatusOverview, t TaskLister) *service {
	svc := NewService(p, o, t).(*service)
	svc.now = func() time.Time { return time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC) }
	return svc
}

func TestProjectsWorkbook(t *testing.T) {
	svc := newTestService(fixture())

	f, name, err := svc.ProjectsWorkbook(context.Background(), project.ListFilter{})
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, "projects_20260310.xlsx", name)
	assert.Equal(t, []string{ProjectsSheet, OverviewSheet}, f.GetSheetList())

	rows, err := f.GetRows(ProjectsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, projectHeaders, rows[0])
	assert.Equal(t, []string{
		"PRJ-000001", "Payroll Revamp", "Engineering", "Mia Manager", "l1", "Ari, Bo",
		"Active", "40", "2026-01-01", "2026-02-01", "2", "0", "3", "1", "Yes",
	}, rows[1])
	// Completed projects are never overdue.
	assert.Equal(t, "No", rows[2][14])
	assert.Equal(t, "1", rows[2][12])

	overview, err := f.GetRows(OverviewSheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Employee Status", "Count"}, overview[0])
	assert.Equal(t, []string{"Intern", "1"}, overview[1])
	assert.Equal(t, []string{"Total", "3"}, overview[3])

	cell := func(label string) string {
		for _, r := range overview {
			if len(r) == 2 && r[0] == label {
				return r[1]
			}
		}
		return ""
	}
	assert.Equal(t, "Remote", overview[7][0])
	assert.Equal(t, "0", cell("Planning"))
	assert.Equal(t, "1", cell("Completed"))
	assert.Equal(t, "1", cell("In Progress"))
}

func TestProjectsWorkbook_PropagatesErrors(t *testing.T) {
	projects, overview, tasks := fixture()
	overview.err = errors.New("db down")

	_, _, err := newTestService(projects, overview, tasks).ProjectsWorkbook(context.Background(), project.ListFilter{})
	assert.EqualError(t, err, "db down")
}

func TestHandler_ExportProjects(t *testing.T) {
	gin.SetMode(gin.TestMode)
	projects, overview, tasks := fixture()

	var got project.ListFilter
	inner := projects.ListFn
	projects.ListFn = func(ctx context.Context, filter project.ListFilter) ([]project.ProjectResponse, error) {
		got = filter
		return inner(ctx, filter)
	}

	r := gin.New()
	r.GET("/reports/projects.xlsx", NewHandler(newTestService(projects, overview, tasks)).ExportProjects)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports/projects.xlsx?status=Active&department=Engineering", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "projects_20260310.xlsx")
	assert.Equal(t, project.ListFilter{Status: "Active", Department: "Engineering"}, got)

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue(ProjectsSheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Payroll Revamp", v)
}
