package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/tasknest/internal/cli"
	"github.com/Veraticus/tasknest/internal/common"
	"github.com/Veraticus/tasknest/internal/model"
	"github.com/Veraticus/tasknest/internal/service"
	"github.com/spf13/cobra"
)

func tasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage tasks",
	}

	cmd.AddCommand(tasksAddCmd())
	cmd.AddCommand(tasksListCmd())
	cmd.AddCommand(tasksStatusCmd())
	cmd.AddCommand(tasksUpdateCmd())
	cmd.AddCommand(tasksDeleteCmd())

	return cmd
}

func tasksAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task",
		RunE: func(cmd *cobra.Command, _ []string) error {
			username, _ := cmd.Flags().GetString("user")
			title, _ := cmd.Flags().GetString("title")
			description, _ := cmd.Flags().GetString("description")
			priorityName, _ := cmd.Flags().GetString("priority")
			dueValue, _ := cmd.Flags().GetString("due")

			priority, err := model.ParsePriority(priorityName)
			if err != nil {
				return common.NewUserError(err.Error(), err)
			}
			due, err := parseDue(dueValue)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			return withStorage(ctx, func(store service.Storage) error {
				user, err := lookupUser(ctx, store, username)
				if err != nil {
					return err
				}

				task, err := model.NewTask(user.ID, title, description)
				if err != nil {
					return common.NewUserError(err.Error(), err)
				}
				task.Priority = priority
				task.LimitDate = due

				if err := store.SaveTask(ctx, task); err != nil {
					return err
				}

				common.LogInfo("Created task", common.Fields{"id": task.ID, "user": user.Username})
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Created task %d: %s", task.ID, task.Title)))
				return nil
			})
		},
	}

	cmd.Flags().String("user", "", "Owner username (required)")
	cmd.Flags().String("title", "", "Task title (required)")
	cmd.Flags().String("description", "", "Task description (required)")
	cmd.Flags().String("priority", model.PriorityLow.String(), "Priority (low, medium, high)")
	cmd.Flags().String("due", "", "Deadline as YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}

func tasksListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the tasks of a user, most urgent first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			username, _ := cmd.Flags().GetString("user")
			statusName, _ := cmd.Flags().GetString("status")

			var filter *model.TaskStatus
			if statusName != "" {
				status, err := model.ParseStatus(statusName)
				if err != nil {
					return common.NewUserError(err.Error(), err)
				}
				filter = &status
			}

			ctx := cmd.Context()
			return withStorage(ctx, func(store service.Storage) error {
				user, err := lookupUser(ctx, store, username)
				if err != nil {
					return err
				}

				tasks, err := store.GetTasksByUser(ctx, user.ID)
				if err != nil {
					return err
				}

				rows := make([][]string, 0, len(tasks))
				for _, task := range tasks {
					if filter != nil && task.Status != *filter {
						continue
					}
					tags, err := store.GetTagsOfTask(ctx, task.ID)
					if err != nil {
						return err
					}
					rows = append(rows, []string{
						strconv.FormatInt(task.ID, 10),
						task.Title,
						task.Priority.String(),
						task.Status.String(),
						formatDue(task),
						tagNames(tags),
					})
				}

				out := cmd.OutOrStdout()
				if len(rows) == 0 {
					fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("No tasks for %s", user.Username)))
					return nil
				}
				fmt.Fprintln(out, cli.RenderTable([]string{"ID", "TITLE", "PRIORITY", "STATUS", "DUE", "TAGS"}, rows))
				return nil
			})
		},
	}

	cmd.Flags().String("user", "", "Owner username (required)")
	cmd.Flags().String("status", "", "Only show tasks with this status (pending, in_progress, done)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func tasksStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Move a task to pending, in_progress or done",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "task")
			if err != nil {
				return err
			}
			status, err := model.ParseStatus(args[1])
			if err != nil {
				return common.NewUserError(err.Error(), err)
			}

			ctx := cmd.Context()
			return withStorage(ctx, func(store service.Storage) error {
				task, err := getTask(cmd, store, id)
				if err != nil {
					return err
				}
				task.Status = status
				if err := store.SaveTask(ctx, task); err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Task %d is now %s", task.ID, task.Status)))
				return nil
			})
		},
	}
}

func tasksUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the text, priority or deadline of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "task")
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			ctx := cmd.Context()
			return withStorage(ctx, func(store service.Storage) error {
				task, err := getTask(cmd, store, id)
				if err != nil {
					return err
				}

				if flags.Changed("title") {
					title, _ := flags.GetString("title")
					if err := task.SetTitle(title); err != nil {
						return common.NewUserError(err.Error(), err)
					}
				}
				if flags.Changed("description") {
					description, _ := flags.GetString("description")
					if err := task.SetDescription(description); err != nil {
						return common.NewUserError(err.Error(), err)
					}
				}
				if flags.Changed("priority") {
					name, _ := flags.GetString("priority")
					priority, err := model.ParsePriority(name)
					if err != nil {
						return common.NewUserError(err.Error(), err)
					}
					task.Priority = priority
				}
				if flags.Changed("due") {
					value, _ := flags.GetString("due")
					due, err := parseDue(value)
					if err != nil {
						return err
					}
					task.LimitDate = due
				}

				if err := store.SaveTask(ctx, task); err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Updated task %d", task.ID)))
				return nil
			})
		},
	}

	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("description", "", "New description")
	cmd.Flags().String("priority", "", "New priority (low, medium, high)")
	cmd.Flags().String("due", "", "New deadline as YYYY-MM-DD, empty to clear")

	return cmd
}

func tasksDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "task")
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			return withStorage(ctx, func(store service.Storage) error {
				if err := store.DeleteTask(ctx, id); err != nil {
					return notFound(err, "task", id)
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted task %d", id)))
				return nil
			})
		},
	}
}

func getTask(cmd *cobra.Command, store service.Storage, id int64) (*model.Task, error) {
	task, err := store.GetTaskByID(cmd.Context(), id)
	if err != nil {
		return nil, notFound(err, "task", id)
	}
	return task, nil
}

func tagNames(tags []model.Tag) string {
	if len(tags) == 0 {
		return "-"
	}
	names := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = tag.Name
	}
	return strings.Join(names, ",")
}
