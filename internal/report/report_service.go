package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-hrm/internal/employee"
	"go-hrm/internal/employeestatus"
	"go-hrm/internal/project"
	"go-hrm/internal/task"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	ProjectsSheet = "Projects"
	OverviewSheet = "Status Overview"
)

type ProjectLister interface {
	List(ctx context.Context, filter project.ListFilter) ([]project.ProjectResponse, error)
}

type StatusOverview interface {
	GetOverview(ctx context.Context) (employeestatus.OverviewResponse, error)
}

type TaskLister interface {
	FindAll(ctx context.Context) ([]task.Task, error)
}

type Service interface {
	ProjectsWorkbook(ctx context.Context, filter project.ListFilter) (*excelize.File, string, error)
}

type service struct {
	projects ProjectLister
	statuses StatusOverview
	tasks    TaskLister
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(projects ProjectLister, statuses StatusOverview, tasks TaskLister, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{
		projects: projects,
		statuses: statuses,
		tasks:    tasks,
		now:      func() time.Time { return time.Now().UTC() },
		logger:   l,
	}
}

var projectHeaders = []string{
	"Code", "Project", "Department", "Manager", "Team Lead", "Members",
	"Status", "Progress %", "Start Date", "Deadline", "Modules", "Requirements",
	"Tasks", "Tasks Completed", "Overdue",
}

type taskTally struct {
	total     int
	completed int
}

func (s *service) ProjectsWorkbook(ctx context.Context, filter project.ListFilter) (*excelize.File, string, error) {
	projects, err := s.projects.List(ctx, filter)
	if err != nil {
		return nil, "", err
	}
	overview, err := s.statuses.GetOverview(ctx)
	if err != nil {
		return nil, "", err
	}
	tasks, err := s.tasks.FindAll(ctx)
	if err != nil {
		s.logger.Error("load tasks for report failed", zap.Error(err))
		return nil, "", err
	}

	tally := make(map[string]*taskTally)
	taskStatus := make(map[string]int64)
	for _, t := range tasks {
		key := t.ProjectID.String()
		if tally[key] == nil {
			tally[key] = &taskTally{}
		}
		tally[key].total++
		if t.Status == task.StatusCompleted {
			tally[key].completed++
		}
		taskStatus[string(t.Status)]++
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", ProjectsSheet); err != nil {
		_ = f.Close()
		return nil, "", err
	}
	if _, err := f.NewSheet(OverviewSheet); err != nil {
		_ = f.Close()
		return nil, "", err
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	today := s.now().Format("2006-01-02")
	s.writeProjects(f, headerStyle, projects, tally, today)
	s.writeOverview(f, headerStyle, overview, projects, taskStatus)

	f.SetActiveSheet(0)

	filename := fmt.Sprintf("projects_%s.xlsx", s.now().Format("20060102"))
	s.logger.Info("project report generated",
		zap.Int("projects", len(projects)),
		zap.Int("tasks", len(tasks)),
	)
	return f, filename, nil
}

func (s *service) writeProjects(f *excelize.File, headerStyle int, projects []project.ProjectResponse, tally map[string]*taskTally, today string) {
	sheet := ProjectsSheet
	for i, h := range projectHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for idx, p := range projects {
		row := idx + 2
		t := tally[p.ID]
		if t == nil {
			t = &taskTally{}
		}

		members := make([]string, 0, len(p.TeamMembers))
		for _, m := range p.TeamMembers {
			members = append(members, displayName(&m))
		}

		overdue := "No"
		if p.Deadline != "" && p.Deadline < today &&
			p.Status != string(project.StatusCompleted) && p.Status != string(project.StatusCancelled) {
			overdue = "Yes"
		}

		values := []any{
			p.Code, p.ProjectName, p.Department, displayName(p.Manager), displayName(p.TeamLead),
			strings.Join(members, ", "), p.Status, p.Progress, p.StartDate, p.Deadline,
			len(p.Modules), len(p.Requirements), t.total, t.completed, overdue,
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		f.SetSheetRow(sheet, cell, &values)
	}

	widths := []float64{12, 28, 16, 20, 20, 36, 12, 10, 12, 12, 9, 13, 8, 15, 9}
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}
	f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

// writeOverview lays out three count tables one under another, separated by
// a blank row: employee status, work mode, then project and task status.
func (s *service) writeOverview(f *excelize.File, headerStyle int, overview employeestatus.OverviewResponse, projects []project.ProjectResponse, taskStatus map[string]int64) {
	sheet := OverviewSheet
	row := 1

	table := func(title string, counts []employeestatus.CountResponse, total int64) {
		top, _ := excelize.CoordinatesToCellName(1, row)
		end, _ := excelize.CoordinatesToCellName(2, row)
		f.SetSheetRow(sheet, top, &[]any{title, "Count"})
		f.SetCellStyle(sheet, top, end, headerStyle)
		row++
		for _, c := range counts {
			cell, _ := excelize.CoordinatesToCellName(1, row)
			f.SetSheetRow(sheet, cell, &[]any{c.Value, c.Count})
			row++
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		f.SetSheetRow(sheet, cell, &[]any{"Total", total})
		row += 2
	}

	table("Employee Status", overview.ByStatus, overview.Total)
	table("Work Mode", overview.ByWorkMode, overview.Total)

	projectCounts := make(map[string]int64)
	for _, p := range projects {
		projectCounts[p.Status]++
	}
	table("Project Status", countsOf(projectStatuses(), projectCounts), int64(len(projects)))

	var taskTotal int64
	for _, n := range taskStatus {
		taskTotal += n
	}
	table("Task Status", countsOf(taskStatuses(), taskStatus), taskTotal)

	f.SetColWidth(sheet, "A", "A", 26)
	f.SetColWidth(sheet, "B", "B", 10)
}

func countsOf(order []string, counts map[string]int64) []employeestatus.CountResponse {
	out := make([]employeestatus.CountResponse, 0, len(order))
	for _, v := range order {
		out = append(out, employeestatus.CountResponse{Value: v, Count: counts[v]})
	}
	return out
}

func projectStatuses() []string {
	return []string{
		string(project.StatusPlanning),
		string(project.StatusActive),
		string(project.StatusOnHold),
		string(project.StatusCompleted),
		string(project.StatusCancelled),
	}
}

func taskStatuses() []string {
	return []string{
		string(task.StatusPending),
		string(task.StatusInProgress),
		string(task.StatusCompleted),
		string(task.StatusOnHold),
	}
}

func displayName(s *employee.Summary) string {
	if s == nil {
		return ""
	}
	if s.FullName != "" {
		return s.FullName
	}
	return s.ID
}
