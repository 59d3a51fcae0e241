package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"inkwell/internal/app"
	"inkwell/internal/auth"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/services"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}
	cmd.AddCommand(newUserCreateCmd())
	cmd.AddCommand(newUserPromoteCmd())
	cmd.AddCommand(newUserTokenCmd())
	return cmd
}

func newUserCreateCmd() *cobra.Command {
	var (
		password string
		admin    bool
	)

	cmd := &cobra.Command{
		Use:   "create <email>",
		Short: "Create a user account",
		Long:  "Create a user account. The password is read from stdin when --password is omitted.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				var err error
				if password, err = readLine(cmd); err != nil {
					return err
				}
			}

			role := models.RoleUser
			if admin {
				role = models.RoleAdmin
			}

			return withServices(cmd, func(ctx context.Context, svc *app.Services) error {
				user, err := svc.Users.CreateUser(ctx, &services.CreateUserRequest{
					Email:    args[0],
					Password: password,
					Role:     role,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", user.ID, user.Email, user.Role)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (at least 6 characters)")
	cmd.Flags().BoolVar(&admin, "admin", false, "Create the account with the admin role")
	return cmd
}

func newUserPromoteCmd() *cobra.Command {
	var demote bool

	cmd := &cobra.Command{
		Use:   "promote <email>",
		Short: "Grant the admin role to a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			role := models.RoleAdmin
			if demote {
				role = models.RoleUser
			}

			return withServices(cmd, func(ctx context.Context, svc *app.Services) error {
				user, err := svc.Users.SetRole(ctx, args[0], role)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", user.Email, user.Role)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&demote, "demote", false, "Revoke the admin role instead")
	return cmd
}

func newUserTokenCmd() *cobra.Command {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token <email>",
		Short: "Issue an access token for a user (requires JWT_SECRET)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.JWTSecret == "" {
				return errors.New("JWT_SECRET is not set")
			}
			issuer, err := auth.NewHMACVerifier(cfg.JWTSecret, newLogger(cmd))
			if err != nil {
				return err
			}

			return withServices(cmd, func(ctx context.Context, svc *app.Services) error {
				user, err := svc.Users.FindByEmail(ctx, args[0])
				if err != nil {
					return err
				}
				token, err := issuer.IssueToken(user.ID, user.Email, ttl)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), token)
				return nil
			})
		},
	}

	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	return cmd
}

func readLine(cmd *cobra.Command) (string, error) {
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read password from stdin: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
