package main

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/tasknest/internal/common"
	"github.com/Veraticus/tasknest/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestParseID(t *testing.T) {
	id, err := parseID("42", "task")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, arg := range []string{"0", "-3", "abc", ""} {
		_, err := parseID(arg, "task")
		var userErr *common.UserError
		require.True(t, errors.As(err, &userErr), "parseID(%q)", arg)
		assert.Contains(t, userErr.UserMessage, "invalid task id")
	}
}

func TestParseDue(t *testing.T) {
	due, err := parseDue("")
	require.NoError(t, err)
	assert.Zero(t, due)

	due, err = parseDue("2026-11-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC).Unix(), due)

	_, err = parseDue("01/11/2026")
	assert.Contains(t, common.UserMessage(err), "expected YYYY-MM-DD")
}

func TestFormatDue(t *testing.T) {
	assert.Equal(t, "-", formatDue(model.Task{}))

	task := model.Task{LimitDate: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC).Unix()}
	assert.Equal(t, "2026-03-09", formatDue(task))
}

func TestNotFound(t *testing.T) {
	err := notFound(common.ErrNotFound, "tag", 7)
	assert.Equal(t, "no tag with id 7", common.UserMessage(err))
	assert.ErrorIs(t, err, common.ErrNotFound)

	other := errors.New("disk full")
	assert.Equal(t, other, notFound(other, "tag", 7))
}

func TestTagNames(t *testing.T) {
	assert.Equal(t, "-", tagNames(nil))
	assert.Equal(t, "urgent,work", tagNames([]model.Tag{{Name: "urgent"}, {Name: "work"}}))
}

func indexOf(s, substr string) int {
	return strings.Index(s, substr)
}
