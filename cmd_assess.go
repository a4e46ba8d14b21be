package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"athlete-monitor/internal/assessment"
)

func newInstrumentsCmd() *cobra.Command {
	var showItems bool
	cmd := &cobra.Command{
		Use:   "instruments [ID]",
		Short: "List questionnaires and their items",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			defs := assessment.Instruments()
			if len(args) == 1 {
				def, err := assessment.Lookup(assessment.Instrument(args[0]))
				if err != nil {
					return err
				}
				defs = []assessment.Definition{def}
				showItems = true
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, def := range defs {
				fmt.Fprintf(w, "%s\t%s\t%d items\n", def.ID, def.Name, len(def.Items))
				if !showItems {
					continue
				}
				for _, it := range def.Items {
					rev := ""
					if it.Reverse {
						rev = " (reversed)"
					}
					fmt.Fprintf(w, "  %s\t%d-%d%s\t%s\n", it.ID, it.Min, it.Max, rev, it.Text)
				}
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&showItems, "items", false, "show every item")
	return cmd
}

func newAssessCmd() *cobra.Command {
	var (
		answers map[string]int
		at      string
	)
	cmd := &cobra.Command{
		Use:   "assess INSTRUMENT",
		Short: "Score and record a questionnaire",
		Long: "Score and record a questionnaire. Answers not given with --answer are\n" +
			"asked for interactively. Run 'instruments INSTRUMENT' to see the item IDs.",
		Example: "  athlete-monitor assess nprs --answer pain=3\n  athlete-monitor assess hooper -a ana",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			def, err := assessment.Lookup(assessment.Instrument(args[0]))
			if err != nil {
				return err
			}
			when, err := parseWhen(at, time.Now())
			if err != nil {
				return err
			}

			e, err := setup(false)
			if err != nil {
				return err
			}
			defer e.Close()

			athlete, err := e.athlete()
			if err != nil {
				return err
			}

			responses := assessment.ResponseSet{}
			for k, v := range answers {
				responses[k] = v
			}
			if err := promptMissing(os.Stdin, os.Stdout, def, responses); err != nil {
				return err
			}

			rec, err := e.record.RecordAssessment(athlete.ID, def.ID, responses, when)
			var rangeErr *assessment.RangeError
			if errors.As(err, &rangeErr) {
				return fmt.Errorf("%s must be between %g and %g, got %g", rangeErr.Field, rangeErr.Min, rangeErr.Max, rangeErr.Value)
			}
			if err != nil {
				return err
			}

			fmt.Printf("%s for %s: %.1f", def.Name, athlete.Name, rec.Result.RawScore)
			if rec.Result.NormalizedScore != nil {
				fmt.Printf(" (%.0f%% of scale)", *rec.Result.NormalizedScore)
			}
			fmt.Println()
			if rec.Result.Band != assessment.Unbanded {
				fmt.Printf("Band: %s\n%s\n", rec.Result.Band, rec.Guidance)
			}
			return nil
		},
	}
	cmd.Flags().StringToIntVar(&answers, "answer", nil, "item answer as ITEM=VALUE, repeatable")
	cmd.Flags().StringVar(&at, "at", "", "when it was taken (default now)")
	return cmd
}

// promptMissing asks for every item that has no answer yet
func promptMissing(in io.Reader, out io.Writer, def assessment.Definition, responses assessment.ResponseSet) error {
	scanner := bufio.NewScanner(in)
	for _, it := range def.Items {
		if _, ok := responses[it.ID]; ok {
			continue
		}
		for {
			fmt.Fprintf(out, "%s [%d-%d]: ", it.Text, it.Min, it.Max)
			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					return err
				}
				return fmt.Errorf("no answer for %s", it.ID)
			}
			v, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
			if err != nil || v < it.Min || v > it.Max {
				fmt.Fprintf(out, "  enter a whole number from %d to %d\n", it.Min, it.Max)
				continue
			}
			responses[it.ID] = v
			break
		}
	}
	return nil
}
