package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/freshfold/app/repositories"
)

// freshfold admin:grant <email>
var adminGrantCmd = &cobra.Command{
	Use:   "admin:grant <email>",
	Short: "Promote an existing account to the admin role",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email := args[0]

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		client, db, err := bootDB(ctx)
		if err != nil {
			return err
		}
		defer client.Disconnect(context.Background())

		users := repositories.NewUserRepository(db)
		if err := users.GrantAdmin(ctx, email); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return fmt.Errorf("no account registered as %s", email)
			}
			return err
		}

		fmt.Printf("%s is now an admin.\n", email)
		return nil
	},
}
