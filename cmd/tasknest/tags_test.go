package main

import (
	"testing"

	"github.com/Veraticus/tasknest/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTags_AddAndList(t *testing.T) {
	env := newCLIEnv(t)
	seedUser(t, env, "alice")

	out := env.mustRun("tags", "add", "--user", "alice", "--name", "work", "--color", "#336699")
	assert.Contains(t, out, "Created tag 1: work")
	env.mustRun("tags", "add", "--user", "alice", "--name", "errands")

	out = env.mustRun("tags", "list", "--user", "alice")
	assert.Contains(t, out, "#336699")
	assert.Contains(t, out, "#888888")
	assert.Less(t, indexOf(out, "errands"), indexOf(out, "work"))

	_, err := env.run("tags", "add", "--user", "alice", "--name", "work")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrDuplicateEntry)

	_, err = env.run("tags", "add", "--user", "alice", "--name", "home", "--color", "blue")
	require.Error(t, err)
	assert.Contains(t, common.UserMessage(err), "valid hex color")

	seedUser(t, env, "bob")
	out = env.mustRun("tags", "list", "--user", "bob")
	assert.Contains(t, out, "No tags for bob")
}

func TestTags_AssignRemove(t *testing.T) {
	env := newCLIEnv(t)
	seedUser(t, env, "alice")
	env.mustRun("tasks", "add", "--user", "alice", "--title", "Report", "--description", "Quarterly")
	env.mustRun("tags", "add", "--user", "alice", "--name", "work")
	env.mustRun("tags", "add", "--user", "alice", "--name", "urgent", "--color", "#f00")

	out := env.mustRun("tags", "assign", "1", "1")
	assert.Contains(t, out, "Assigned tag 1 to task 1")
	out = env.mustRun("tags", "assign", "1", "1")
	assert.Contains(t, out, "already assigned")
	env.mustRun("tags", "assign", "1", "2")

	out = env.mustRun("tasks", "list", "--user", "alice")
	assert.Contains(t, out, "urgent,work")

	out = env.mustRun("tags", "remove", "1", "1")
	assert.Contains(t, out, "Removed tag 1 from task 1")

	_, err := env.run("tags", "remove", "1", "1")
	require.Error(t, err)
	assert.Equal(t, "tag 1 is not assigned to task 1", common.UserMessage(err))

	env.mustRun("tags", "delete", "2")
	out = env.mustRun("tasks", "list", "--user", "alice")
	assert.NotContains(t, out, "urgent")

	_, err = env.run("tags", "delete", "2")
	require.Error(t, err)
	assert.Equal(t, "no tag with id 2", common.UserMessage(err))
}

func TestTags_AssignAcrossUsers(t *testing.T) {
	env := newCLIEnv(t)
	seedUser(t, env, "alice")
	seedUser(t, env, "bob")
	env.mustRun("tasks", "add", "--user", "alice", "--title", "Report", "--description", "Quarterly")
	env.mustRun("tags", "add", "--user", "bob", "--name", "home")

	_, err := env.run("tags", "assign", "1", "1")
	require.Error(t, err)
	assert.Equal(t, "tag and task belong to different users", common.UserMessage(err))

	_, err = env.run("tags", "assign", "1", "99")
	require.Error(t, err)
	assert.Equal(t, "no task 1 or tag 99", common.UserMessage(err))
}
