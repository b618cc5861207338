package migration

import (
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeMigrator struct {
	version  uint
	dirty    bool
	upErr    error
	stepsErr error

	calls  []string
	forced int
}

func (f *fakeMigrator) Up() error {
	f.calls = append(f.calls, "up")
	return f.upErr
}

func (f *fakeMigrator) Steps(n int) error {
	f.calls = append(f.calls, "steps")
	return f.stepsErr
}

func (f *fakeMigrator) Drop() error {
	f.calls = append(f.calls, "drop")
	return nil
}

func (f *fakeMigrator) Force(version int) error {
	f.calls = append(f.calls, "force")
	f.forced = version
	f.dirty = false
	return nil
}

func (f *fakeMigrator) Version() (uint, bool, error) {
	if f.version == 0 {
		return 0, false, migrate.ErrNilVersion
	}
	return f.version, f.dirty, nil
}

func TestApply_UpForcesDirtyVersion(t *testing.T) {
	m := &fakeMigrator{version: 4, dirty: true}

	err := apply(m, ActionUp, zap.NewNop())

	assert.NoError(t, err)
	assert.Equal(t, []string{"force", "up"}, m.calls)
	assert.Equal(t, 4, m.forced)
}

func TestApply_UpNoChange(t *testing.T) {
	m := &fakeMigrator{upErr: migrate.ErrNoChange}

	assert.NoError(t, apply(m, ActionUp, zap.NewNop()))
	assert.Equal(t, []string{"up"}, m.calls)
}

func TestApply_UpFailure(t *testing.T) {
	m := &fakeMigrator{version: 2, upErr: errors.New("syntax error")}

	err := apply(m, ActionUp, zap.NewNop())
	assert.ErrorContains(t, err, "syntax error")
}

func TestApply_DownRollsBackOneStep(t *testing.T) {
	m := &fakeMigrator{version: 3}
	assert.NoError(t, apply(m, ActionDown, zap.NewNop()))
	assert.Equal(t, []string{"steps"}, m.calls)

	empty := &fakeMigrator{stepsErr: migrate.ErrNilVersion}
	assert.NoError(t, apply(empty, ActionDown, zap.NewNop()))
}

func TestApply_DropAndVersion(t *testing.T) {
	m := &fakeMigrator{version: 1}
	assert.NoError(t, apply(m, ActionDrop, zap.NewNop()))
	assert.NoError(t, apply(m, ActionVersion, zap.NewNop()))
	assert.Equal(t, []string{"drop"}, m.calls)
}

func TestApply_UnknownAction(t *testing.T) {
	err := apply(&fakeMigrator{}, "sideways", zap.NewNop())
	assert.EqualError(t, err, `unsupported action "sideways"`)
}
