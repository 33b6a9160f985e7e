package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/freshfold/config"
	"github.com/shashiranjanraj/freshfold/database/seeders"
	"github.com/shashiranjanraj/freshfold/pkg/database"
)

// bootDB loads config and opens the MongoDB connection. The caller owns the
// returned client and must Disconnect it.
func bootDB(ctx context.Context) (*mongo.Client, *mongo.Database, error) {
	if err := config.Load(); err != nil {
		return nil, nil, err
	}
	client, err := database.Connect(ctx)
	if err != nil {
		return nil, nil, err
	}
	return client, database.Database(client), nil
}

// freshfold db:setup
var dbSetupCmd = &cobra.Command{
	Use:   "db:setup",
	Short: "Create the collections and indexes the application needs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		client, db, err := bootDB(ctx)
		if err != nil {
			return err
		}
		defer client.Disconnect(context.Background())

		fmt.Println("Setting up collections and indexes…")
		if err := database.EnsureSchema(ctx, db); err != nil {
			return err
		}
		fmt.Println("Done.")
		return nil
	},
}

// freshfold db:seed
var dbSeedCmd = &cobra.Command{
	Use:   "db:seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		client, db, err := bootDB(ctx)
		if err != nil {
			return err
		}
		defer client.Disconnect(context.Background())

		fmt.Println("Running seeders…")
		return seeders.RunAll(ctx, db)
	},
}
