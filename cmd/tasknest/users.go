package main

import (
	"errors"
	"fmt"

	"github.com/Veraticus/tasknest/internal/cli"
	"github.com/Veraticus/tasknest/internal/common"
	"github.com/Veraticus/tasknest/internal/model"
	"github.com/Veraticus/tasknest/internal/service"
	"github.com/spf13/cobra"
)

func usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts",
	}

	cmd.AddCommand(usersAddCmd())
	cmd.AddCommand(usersShowCmd())
	cmd.AddCommand(usersCheckPasswordCmd())
	cmd.AddCommand(usersUpdateCmd())
	cmd.AddCommand(usersDeleteCmd())

	return cmd
}

func usersAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <username> <email> [password]",
		Short: "Create a user",
		Long:  `Create a user. The password is read from standard input when it is not given.`,
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			password := ""
			if len(args) == 3 {
				password = args[2]
			} else {
				var err error
				reader := cli.NewNonBlockingReader(cmd.InOrStdin())
				password, err = reader.Prompt(ctx, cmd.OutOrStdout(), "Password")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout())
			}

			user, err := model.NewUser(args[0], args[1], password)
			if err != nil {
				return common.NewUserError(err.Error(), err)
			}

			return withStorage(ctx, func(store service.Storage) error {
				if err := store.CreateUser(ctx, user); err != nil {
					if errors.Is(err, common.ErrDuplicateEntry) {
						return common.NewUserError(fmt.Sprintf("user %q already exists", user.Username), err)
					}
					return err
				}

				common.LogInfo("Created user", common.Fields{"id": user.ID, "username": user.Username})
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Created user %s (id %d)", user.Username, user.ID)))
				return nil
			})
		},
	}
}

func usersShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <username>",
		Short: "Show a user and a summary of their tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withStorage(ctx, func(store service.Storage) error {
				user, err := lookupUser(ctx, store, args[0])
				if err != nil {
					return err
				}

				tasks, err := store.GetTasksByUser(ctx, user.ID)
				if err != nil {
					return err
				}
				tags, err := store.GetTagsByUser(ctx, user.ID)
				if err != nil {
					return err
				}

				done := 0
				for _, task := range tasks {
					if task.Status == model.StatusDone {
						done++
					}
				}

				content := fmt.Sprintf("ID: %d\nEmail: %s\nCreated: %s\nTasks: %d (%d done)\nTags: %d",
					user.ID, user.Email, user.CreatedAt.Format(dateLayout), len(tasks), done, len(tags))
				fmt.Fprintln(cmd.OutOrStdout(), cli.RenderBox(user.Username, content))
				return nil
			})
		},
	}
}

func usersCheckPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-password <username> <password>",
		Short: "Verify a password against the stored hash",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withStorage(ctx, func(store service.Storage) error {
				user, err := lookupUser(ctx, store, args[0])
				if err != nil {
					return err
				}
				if !user.CheckPassword(args[1]) {
					return common.NewUserError("password does not match", nil)
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Password matches"))
				return nil
			})
		},
	}
}

func usersUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <username>",
		Short: "Change the email, password or name of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			rename, _ := cmd.Flags().GetString("rename")
			if email == "" && password == "" && rename == "" {
				return common.NewUserError("nothing to update, pass --email, --password or --rename", nil)
			}

			ctx := cmd.Context()
			return withStorage(ctx, func(store service.Storage) error {
				user, err := lookupUser(ctx, store, args[0])
				if err != nil {
					return err
				}

				if email != "" {
					if err := user.SetEmail(email); err != nil {
						return userFieldError(err)
					}
				}
				if password != "" {
					if err := user.SetPassword(password); err != nil {
						return userFieldError(err)
					}
				}
				if rename != "" {
					if err := user.SetUsername(rename); err != nil {
						return userFieldError(err)
					}
				}

				if err := store.UpdateUser(ctx, user); err != nil {
					if errors.Is(err, common.ErrDuplicateEntry) {
						return common.NewUserError(fmt.Sprintf("user %q already exists", user.Username), err)
					}
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Updated user %s", user.Username)))
				return nil
			})
		},
	}

	cmd.Flags().String("email", "", "New email address")
	cmd.Flags().String("password", "", "New password")
	cmd.Flags().String("rename", "", "New username")

	return cmd
}

func usersDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <username>",
		Short: "Delete a user with all their tasks and tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withStorage(ctx, func(store service.Storage) error {
				user, err := lookupUser(ctx, store, args[0])
				if err != nil {
					return err
				}
				if err := store.DeleteUser(ctx, user.ID); err != nil {
					return err
				}

				common.LogInfo("Deleted user", common.Fields{"id": user.ID, "username": user.Username})
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted user %s", user.Username)))
				return nil
			})
		},
	}
}

func userFieldError(err error) error {
	if errors.Is(err, model.ErrUnchanged) {
		return common.NewUserError("new value is the same as the current one", err)
	}
	return common.NewUserError(err.Error(), err)
}
