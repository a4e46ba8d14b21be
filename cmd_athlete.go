package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newAthleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "athlete",
		Short: "Manage athletes",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add NAME",
		Short: "Add an athlete",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			e, err := setup(false)
			if err != nil {
				return err
			}
			defer e.Close()

			a, err := e.db.CreateAthlete(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Added %s (%s)\n", a.Name, a.ID)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List athletes",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			e, err := setup(false)
			if err != nil {
				return err
			}
			defer e.Close()

			athletes, err := e.query.ListAthletes()
			if err != nil {
				return err
			}
			if len(athletes) == 0 {
				fmt.Println("No athletes yet.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tID\tASSESSMENTS\tADDED")
			for _, a := range athletes {
				n, err := e.db.CountAssessments(a.ID)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.Name, a.ID, humanize.Comma(int64(n)), humanize.Time(a.CreatedAt))
			}
			return w.Flush()
		},
	})

	return cmd
}
