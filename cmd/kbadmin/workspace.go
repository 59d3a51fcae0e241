package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"inkwell/internal/app"
	docsysSvc "inkwell/internal/domain/services/docsystem"
)

func newWorkspaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workspace",
		Short: "Manage workspaces",
	}
	cmd.AddCommand(newWorkspaceCreateCmd())
	cmd.AddCommand(newWorkspaceListCmd())
	return cmd
}

func newWorkspaceCreateCmd() *cobra.Command {
	var (
		slug        string
		description string
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a workspace",
		Long:  "Create a workspace. The slug is derived from the name unless --slug is given; a taken slug gets a numeric suffix.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &docsysSvc.CreateWorkspaceRequest{Name: args[0], Slug: slug}
			if d := strings.TrimSpace(description); d != "" {
				req.Description = &d
			}

			return withServices(cmd, func(ctx context.Context, svc *app.Services) error {
				ws, err := svc.Workspaces.CreateWorkspace(ctx, req)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", ws.ID, ws.Slug, ws.Name)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&slug, "slug", "", "URL slug (lowercase letters, digits and dashes)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Workspace description")
	return cmd
}

func newWorkspaceListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List workspaces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, func(ctx context.Context, svc *app.Services) error {
				workspaces, err := svc.Workspaces.ListWorkspaces(ctx)
				if err != nil {
					return err
				}
				for _, ws := range workspaces {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", ws.ID, ws.Slug, ws.Name)
				}
				return nil
			})
		},
	}
}
