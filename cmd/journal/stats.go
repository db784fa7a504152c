package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show entry and word totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			api, err := o.client()
			if err != nil {
				return err
			}
			st, err := api.Stats(cmd.Context())
			if err != nil {
				return err
			}
			if o.asJSON {
				return o.printJSON(st)
			}

			first, last := "-", "-"
			if st.FirstEntryDate != nil {
				first = *st.FirstEntryDate
			}
			if st.LastEntryDate != nil {
				last = *st.LastEntryDate
			}
			_, err = fmt.Fprintf(o.out,
				"Entries:        %d\nWords:          %d\nAvg words:      %d\nFirst entry:    %s\nLast entry:     %s\n",
				st.TotalEntries, st.TotalWords, st.AvgWordsPerEntry, first, last)
			return err
		},
	}
}
