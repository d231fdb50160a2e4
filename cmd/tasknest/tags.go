package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Veraticus/tasknest/internal/cli"
	"github.com/Veraticus/tasknest/internal/common"
	"github.com/Veraticus/tasknest/internal/model"
	"github.com/Veraticus/tasknest/internal/service"
	"github.com/spf13/cobra"
)

func tagsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Manage tags and attach them to tasks",
	}

	cmd.AddCommand(tagsAddCmd())
	cmd.AddCommand(tagsListCmd())
	cmd.AddCommand(tagsAssignCmd())
	cmd.AddCommand(tagsRemoveCmd())
	cmd.AddCommand(tagsDeleteCmd())

	return cmd
}

func tagsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a tag",
		RunE: func(cmd *cobra.Command, _ []string) error {
			username, _ := cmd.Flags().GetString("user")
			name, _ := cmd.Flags().GetString("name")
			color, _ := cmd.Flags().GetString("color")

			ctx := cmd.Context()
			return withStorage(ctx, func(store service.Storage) error {
				user, err := lookupUser(ctx, store, username)
				if err != nil {
					return err
				}

				tag, err := model.NewTag(user.ID, name, color)
				if err != nil {
					return common.NewUserError(err.Error(), err)
				}
				if err := store.SaveTag(ctx, tag); err != nil {
					if errors.Is(err, common.ErrDuplicateEntry) {
						return common.NewUserError(fmt.Sprintf("%s already has a tag named %q", user.Username, tag.Name), err)
					}
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Created tag %d: %s", tag.ID, tag.Name)))
				return nil
			})
		},
	}

	cmd.Flags().String("user", "", "Owner username (required)")
	cmd.Flags().String("name", "", "Tag name (required)")
	cmd.Flags().String("color", "#888888", "Hex color, #RGB or #RRGGBB")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func tagsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the tags of a user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			username, _ := cmd.Flags().GetString("user")

			ctx := cmd.Context()
			return withStorage(ctx, func(store service.Storage) error {
				user, err := lookupUser(ctx, store, username)
				if err != nil {
					return err
				}

				tags, err := store.GetTagsByUser(ctx, user.ID)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(tags) == 0 {
					fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("No tags for %s", user.Username)))
					return nil
				}

				rows := make([][]string, len(tags))
				for i, tag := range tags {
					rows[i] = []string{strconv.FormatInt(tag.ID, 10), tag.Name, tag.Color}
				}
				fmt.Fprintln(out, cli.RenderTable([]string{"ID", "NAME", "COLOR"}, rows))
				return nil
			})
		},
	}

	cmd.Flags().String("user", "", "Owner username (required)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

// parseLink reads the <task-id> <tag-id> pair shared by assign and remove.
func parseLink(args []string) (taskID, tagID int64, err error) {
	if taskID, err = parseID(args[0], "task"); err != nil {
		return 0, 0, err
	}
	if tagID, err = parseID(args[1], "tag"); err != nil {
		return 0, 0, err
	}
	return taskID, tagID, nil
}

func tagsAssignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assign <task-id> <tag-id>",
		Short: "Attach a tag to a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, tagID, err := parseLink(args)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			return withStorage(ctx, func(store service.Storage) error {
				created, err := store.AssignTagToTask(ctx, taskID, tagID)
				switch {
				case errors.Is(err, common.ErrNotFound):
					return common.NewUserError(fmt.Sprintf("no task %d or tag %d", taskID, tagID), err)
				case errors.Is(err, model.ErrInvalidTag):
					return common.NewUserError("tag and task belong to different users", err)
				case err != nil:
					return err
				}

				out := cmd.OutOrStdout()
				if !created {
					fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Tag %d is already assigned to task %d", tagID, taskID)))
					return nil
				}
				fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Assigned tag %d to task %d", tagID, taskID)))
				return nil
			})
		},
	}
}

func tagsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <task-id> <tag-id>",
		Short: "Detach a tag from a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, tagID, err := parseLink(args)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			return withStorage(ctx, func(store service.Storage) error {
				if err := store.RemoveTagFromTask(ctx, taskID, tagID); err != nil {
					if errors.Is(err, common.ErrNotFound) {
						return common.NewUserError(fmt.Sprintf("tag %d is not assigned to task %d", tagID, taskID), err)
					}
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Removed tag %d from task %d", tagID, taskID)))
				return nil
			})
		},
	}
}

func tagsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a tag and detach it from every task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "tag")
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			return withStorage(ctx, func(store service.Storage) error {
				if err := store.DeleteTag(ctx, id); err != nil {
					return notFound(err, "tag", id)
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted tag %d", id)))
				return nil
			})
		},
	}
}
