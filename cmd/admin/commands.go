package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	errors "github.com/Laisky/errors/v2"
	"github.com/spf13/cobra"

	"github.com/nexbytes/nexfolio/backend/go-services/internal/blogs"
	"github.com/nexbytes/nexfolio/backend/go-services/internal/comments"
	"github.com/nexbytes/nexfolio/backend/go-services/internal/config"
	"github.com/nexbytes/nexfolio/backend/go-services/internal/credentials"
	"github.com/nexbytes/nexfolio/backend/go-services/internal/database"
	"github.com/nexbytes/nexfolio/backend/go-services/internal/models"
	"github.com/nexbytes/nexfolio/backend/go-services/internal/users"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "nexfolio-admin",
		Short:        "nexfolio-admin",
		Long:         `operator commands for the nexfolio content API`,
		SilenceUsage: true,
	}
	root.AddCommand(newUserCmd(), newHashPasswordCmd(), newEnsureIndexesCmd())
	return root
}

// connect opens the shared pool from environment configuration.
func connect(ctx context.Context) (*database.Pool, *config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, errors.Wrap(err, "load config")
	}
	pool, err := database.Open(ctx, cfg.MongoDB, 1)
	if err != nil {
		return nil, nil, err
	}
	return pool, cfg, nil
}

func newUserCmd() *cobra.Command {
	userCmd := &cobra.Command{Use: "user", Short: "manage admin users"}

	var name, email, password string
	create := &cobra.Command{
		Use:   "create",
		Short: "create a user with a hashed password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			pool, _, err := connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close(context.Background())

			repo := users.NewMongoUserRepository(pool.Collection(users.CollectionName))
			if err := repo.EnsureIndexes(ctx); err != nil {
				return errors.Wrap(err, "ensure user indexes")
			}
			u, err := users.NewService(repo).Create(ctx, models.UserInput{Name: name, Email: email, Password: password})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %s <%s>\n", u.ID.Hex(), u.Email)
			return nil
		},
	}
	create.Flags().StringVar(&name, "name", "", "display name")
	create.Flags().StringVar(&email, "email", "", "login email")
	create.Flags().StringVar(&password, "password", "", "plaintext password")
	_ = create.MarkFlagRequired("email")
	_ = create.MarkFlagRequired("password")

	list := &cobra.Command{
		Use:   "list",
		Short: "list users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			pool, _, err := connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close(context.Background())

			all, err := users.NewService(users.NewMongoUserRepository(pool.Collection(users.CollectionName))).List(ctx)
			if err != nil {
				return err
			}
			return printUsers(cmd, all)
		},
	}

	userCmd.AddCommand(create, list)
	return userCmd
}

func printUsers(cmd *cobra.Command, all []models.User) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tCREATED")
	for _, u := range all {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.ID.Hex(), u.Name, u.Email, u.CreatedAt.Format("2006-01-02"))
	}
	return w.Flush()
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <plaintext>",
		Short: "print a bcrypt hash for seeding users by hand",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := credentials.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func newEnsureIndexesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ensure-indexes",
		Short: "create the unique and lookup indexes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			pool, _, err := connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close(context.Background())

			steps := []struct {
				name   string
				ensure func(context.Context) error
			}{
				{blogs.CollectionName, blogs.NewMongoRepository(pool.Collection(blogs.CollectionName)).EnsureIndexes},
				{comments.CollectionName, comments.NewMongoRepository(pool.Collection(comments.CollectionName)).EnsureIndexes},
				{users.CollectionName, users.NewMongoUserRepository(pool.Collection(users.CollectionName)).EnsureIndexes},
			}
			for _, s := range steps {
				if err := s.ensure(ctx); err != nil {
					return errors.Wrapf(err, "ensure indexes on %s", s.name)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "indexes ok: %s\n", s.name)
			}
			return nil
		},
	}
}
