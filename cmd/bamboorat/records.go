package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/erazemk/bamboorat/internal/config"
	"github.com/erazemk/bamboorat/internal/listview"
	"github.com/erazemk/bamboorat/internal/model"
)

func newRecordsCmd(cfg *config.Config) *cobra.Command {
	var (
		filter listview.Filter
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "records",
		Short: "List records, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cliContext(cmd.Context())

			a, err := openApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			records, err := a.records.ListAll(ctx)
			if err != nil {
				return fmt.Errorf("listing records: %w", err)
			}
			filter.Search = strings.TrimSpace(filter.Search)
			visible := listview.Apply(records, filter)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(visible)
			}
			return printRecords(cmd.OutOrStdout(), visible)
		},
	}
	cmd.Flags().StringVarP(&filter.Search, "search", "q", "", "case-insensitive name substring")
	cmd.Flags().StringVar(&filter.Owner, "owner", listview.OwnerAll, "owner to show (Tay, Ter or all)")
	cmd.Flags().StringVar(&filter.Status, "status", listview.StatusAny, "status to show (mixing, pregnant, nursing, recovering or any)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func printRecords(w io.Writer, records []model.Record) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tOWNER\tBREEDING\tBIRTH\tSEPARATION\tESTRUS")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Name, r.Status, r.Owner, r.BreedingDate, r.BirthDate, r.SeparationDate, r.EstrusDate)
	}
	return tw.Flush()
}
