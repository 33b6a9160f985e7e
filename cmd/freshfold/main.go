package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "freshfold",
	Short: "FreshFold laundry service CLI",
	Long:  "FreshFold is an online laundry booking and order management service. Use this CLI to run the server and manage the database.",
}

func init() {
	// Server
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	// Database
	rootCmd.AddCommand(dbSetupCmd)
	rootCmd.AddCommand(dbSeedCmd)

	// Accounts
	rootCmd.AddCommand(adminGrantCmd)
}
