package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/cmd/bootstrap"
)

func main() {
	root := &cobra.Command{
		Use:           "radlab-console",
		Short:         "Web console for the radiology lab backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve,
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the console HTTP server",
			RunE:  serve,
		},
		&cobra.Command{
			Use:   "routes",
			Short: "Print the route table",
			RunE:  routes,
		},
	)

	if err := root.Execute(); err != nil {
		logrus.Fatalf("radlab-console: %v", err)
	}
}

func serve(_ *cobra.Command, _ []string) error {
	app, err := bootstrap.New(true)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	app.Run()
	return nil
}

func routes(cmd *cobra.Command, _ []string) error {
	app, err := bootstrap.New(false)
	if err != nil {
		return err
	}
	defer app.Close()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tPATH\tGATE")
	for _, r := range app.Router.Routes() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.Method, r.Path, r.Gate)
	}
	return w.Flush()
}
