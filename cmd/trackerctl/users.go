package main

import (
	"alcyxob/tracker-app/internal/domain"
	"alcyxob/tracker-app/internal/service"
	"context"
	"fmt"
	"io"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const commandTimeout = 30 * time.Second

func newUsersCmd() *cobra.Command {
	users := &cobra.Command{
		Use:   "users",
		Short: "Manage accounts and the approval queue",
	}
	users.AddCommand(newPendingCmd(), newApproveCmd(), newRejectCmd(), newCreateAdminCmd())
	return users
}

func newPendingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "List accounts waiting for approval",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()
			return withAuthService(ctx, func(auth service.AuthService) error {
				users, err := auth.ListPendingUsers(ctx)
				if err != nil {
					printError("Could not list pending users: %v", err)
					return err
				}
				printUsers(cmd.OutOrStdout(), users)
				return nil
			})
		},
	}
}

func newApproveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "approve <user-id>",
		Short: "Approve a pending account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return changeStatus(cmd, args[0], service.AuthService.ApproveUser, "approved")
		},
	}
}

func newRejectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reject <user-id>",
		Short: "Reject an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return changeStatus(cmd, args[0], service.AuthService.RejectUser, "rejected")
		},
	}
}

type statusChange func(service.AuthService, context.Context, string) (*domain.User, error)

func changeStatus(cmd *cobra.Command, userID string, change statusChange, verb string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()
	return withAuthService(ctx, func(auth service.AuthService) error {
		user, err := change(auth, ctx, userID)
		if err != nil {
			printError("Could not update %s: %v", userID, err)
			return err
		}
		printSuccess("%s (%s) %s", user.Email, user.ID, verb)
		return nil
	})
}

func newCreateAdminCmd() *cobra.Command {
	var email, username string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an approved admin, or promote an existing account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return fmt.Errorf("email is required (--email)")
			}

			fmt.Print("Password (ignored when promoting an existing account): ")
			passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
			fmt.Println()
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()
			return withAuthService(ctx, func(auth service.AuthService) error {
				user, err := auth.CreateAdmin(ctx, email, username, string(passwordBytes))
				if err != nil {
					printError("Could not create admin: %v", err)
					return err
				}
				printSuccess("%s (%s) is an approved admin", user.Email, user.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&username, "username", "", "display name (defaults to the email local part)")
	return cmd
}

func printUsers(out io.Writer, users []domain.User) {
	if len(users) == 0 {
		fmt.Fprintln(out, dimStyle.Render("No pending users."))
		return
	}
	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%d pending", len(users))))
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEMAIL\tUSERNAME\tREGISTERED")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.ID, u.Email, u.Username, u.CreatedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()
}
