package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/riskibarqy/leetstreak/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMigrator struct {
	upErr      error
	steps      []int
	version    uint
	dirty      bool
	versionErr error
	forced     []int
	migratedTo []uint
}

func (f *fakeMigrator) Up() error { return f.upErr }

func (f *fakeMigrator) Steps(n int) error {
	f.steps = append(f.steps, n)
	return nil
}

func (f *fakeMigrator) Version() (uint, bool, error) {
	return f.version, f.dirty, f.versionErr
}

func (f *fakeMigrator) Force(version int) error {
	f.forced = append(f.forced, version)
	return nil
}

func (f *fakeMigrator) Migrate(version uint) error {
	f.migratedTo = append(f.migratedTo, version)
	return migrate.ErrNoChange
}

func TestExecute(t *testing.T) {
	t.Parallel()

	logger := logging.NewNop()

	t.Run("up ignores no change", func(t *testing.T) {
		t.Parallel()
		m := &fakeMigrator{upErr: migrate.ErrNoChange}
		require.NoError(t, execute(m, []string{"up"}, logger, &bytes.Buffer{}))
	})

	t.Run("up propagates failures", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		m := &fakeMigrator{upErr: boom}
		assert.ErrorIs(t, execute(m, []string{"UP"}, logger, &bytes.Buffer{}), boom)
	})

	t.Run("down defaults to one step", func(t *testing.T) {
		t.Parallel()
		m := &fakeMigrator{}
		require.NoError(t, execute(m, []string{"down"}, logger, &bytes.Buffer{}))
		require.NoError(t, execute(m, []string{"down", "3"}, logger, &bytes.Buffer{}))
		assert.Equal(t, []int{-1, -3}, m.steps)
	})

	t.Run("version prints none when unset", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		m := &fakeMigrator{versionErr: migrate.ErrNilVersion}
		require.NoError(t, execute(m, []string{"version"}, logger, &out))
		assert.Equal(t, "version: none\ndirty: false\n", out.String())
	})

	t.Run("version prints current state", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		m := &fakeMigrator{version: 1771776034, dirty: true}
		require.NoError(t, execute(m, []string{"version"}, logger, &out))
		assert.Equal(t, "version: 1771776034\ndirty: true\n", out.String())
	})

	t.Run("force and goto", func(t *testing.T) {
		t.Parallel()
		m := &fakeMigrator{}
		require.NoError(t, execute(m, []string{"force", "7"}, logger, &bytes.Buffer{}))
		require.NoError(t, execute(m, []string{"goto", "9"}, logger, &bytes.Buffer{}))
		assert.Equal(t, []int{7}, m.forced)
		assert.Equal(t, []uint{9}, m.migratedTo)
	})

	t.Run("usage errors", func(t *testing.T) {
		t.Parallel()
		m := &fakeMigrator{}
		assert.ErrorIs(t, execute(m, []string{"force"}, logger, &bytes.Buffer{}), errUsage)
		assert.ErrorIs(t, execute(m, []string{"goto"}, logger, &bytes.Buffer{}), errUsage)
		assert.ErrorIs(t, execute(m, []string{"sideways"}, logger, &bytes.Buffer{}), errUsage)
	})
}

func TestParseArguments(t *testing.T) {
	t.Parallel()

	_, err := parseSteps([]string{"0"})
	assert.Error(t, err)
	_, err = parseSteps([]string{"x"})
	assert.Error(t, err)

	_, err = parseVersion("-1")
	assert.Error(t, err)
	v, err := parseVersion(" 12 ")
	require.NoError(t, err)
	assert.Equal(t, 12, v)

	_, err = parseTarget("-3")
	assert.Error(t, err)
}

func TestResolveMigrationsDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	got, err := resolveMigrationsDir("", "/definitely/missing", dir)
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	_, err = resolveMigrationsDir("/definitely/missing")
	assert.Error(t, err)
}
