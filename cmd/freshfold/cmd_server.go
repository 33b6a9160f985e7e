package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/freshfold/app/controllers"
	"github.com/shashiranjanraj/freshfold/app/routes"
	"github.com/shashiranjanraj/freshfold/internal/server"
	"github.com/shashiranjanraj/freshfold/pkg/router"
)

// freshfold serve: start the HTTP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}

// freshfold route:list: print all registered routes.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Mounting handlers does not call them, so empty controllers are
		// enough to enumerate the table.
		r := router.New()
		routes.RegisterWeb(r, routes.Controllers{
			Home:     &controllers.HomeController{},
			Auth:     &controllers.AuthController{},
			Password: &controllers.PasswordController{},
			Profile:  &controllers.ProfileController{},
			Booking:  &controllers.BookingController{},
			Order:    &controllers.OrderController{},
			Billing:  &controllers.BillingController{},
			Support:  &controllers.SupportController{},
			Admin:    &controllers.AdminController{},
			Report:   &controllers.ReportController{},
		})

		infos := r.Routes()
		if len(infos) == 0 {
			fmt.Println("No routes registered.")
			return nil
		}

		// Sort by path then method.
		sort.Slice(infos, func(i, j int) bool {
			if infos[i].Path != infos[j].Path {
				return infos[i].Path < infos[j].Path
			}
			return infos[i].Method < infos[j].Method
		})

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range infos {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}
