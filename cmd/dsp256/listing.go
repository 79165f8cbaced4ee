package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

func runPresets(_ context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("presets", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	h, err := newHall()
	if err != nil {
		return err
	}

	params := h.Parameters()
	presets := h.FactoryPresets()

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	header := []string{"#", "Preset"}
	for _, p := range params {
		header = append(header, p.Name)
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for i, pr := range presets {
		if err := h.LoadPreset(pr); err != nil {
			return err
		}

		row := []string{fmt.Sprint(i), pr.Name}
		for j := range params {
			row = append(row, h.ParameterDisplay(j))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	return tw.Flush()
}

func runParams(_ context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("params", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	h, err := newHall()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tID\tName\tDefault\tDisplay\tUnit")
	for i, p := range h.Parameters() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\t%s\t%s\n",
			i, p.ID, p.Name, p.Default, h.ParameterDisplay(i), p.Unit)
	}

	return tw.Flush()
}
