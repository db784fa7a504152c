package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newListCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			api, err := o.client()
			if err != nil {
				return err
			}
			entries, err := api.List(cmd.Context())
			if err != nil {
				return err
			}
			return o.printEntries(entries)
		},
	}
}

func newGetCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get DATE",
		Short: "Show the entry for a date (YYYY-MM-DD or \"today\")",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := o.client()
			if err != nil {
				return err
			}
			e, err := api.Get(cmd.Context(), resolveDate(args[0]))
			if err != nil {
				return err
			}
			return o.printEntry(e)
		},
	}
}

func newWriteCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "write DATE CONTENT|-",
		Short: "Create or replace the entry for a date; \"-\" reads content from stdin",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := o.readContent(args[1])
			if err != nil {
				return err
			}
			j, err := o.journal()
			if err != nil {
				return err
			}
			e, created, err := j.Save(cmd.Context(), resolveDate(args[0]), content)
			if err != nil {
				return err
			}
			if o.asJSON {
				return o.printJSON(e)
			}
			verb := "Updated"
			if created {
				verb = "Created"
			}
			_, err = fmt.Fprintf(o.out, "%s entry for %s (id %s). %d entries in journal.\n", verb, e.Date, e.ID, j.Cache.Len())
			return err
		},
	}
}

func newEditCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "edit ID CONTENT|-",
		Short: "Replace the content of an entry by id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := o.readContent(args[1])
			if err != nil {
				return err
			}
			j, err := o.journal()
			if err != nil {
				return err
			}
			e, err := j.Update(cmd.Context(), args[0], content)
			if err != nil {
				return err
			}
			if o.asJSON {
				return o.printJSON(e)
			}
			_, err = fmt.Fprintf(o.out, "Updated entry for %s.\n", e.Date)
			return err
		},
	}
}

func newDeleteCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an entry by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := o.journal()
			if err != nil {
				return err
			}
			if err := j.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, err = fmt.Fprintf(o.out, "Deleted entry %s. %d entries left.\n", args[0], j.Cache.Len())
			return err
		},
	}
}

func newSearchCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search QUERY",
		Short: "Find entries containing QUERY, ignoring case",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := o.client()
			if err != nil {
				return err
			}
			entries, err := api.Search(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return o.printEntries(entries)
		},
	}
}

func (o *rootOptions) readContent(arg string) (string, error) {
	if arg != "-" {
		return arg, nil
	}
	data, err := io.ReadAll(o.in)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

// resolveDate expands "today" and "yesterday" to local dates.
func resolveDate(arg string) string {
	now := time.Now()
	switch strings.ToLower(arg) {
	case "today":
		return now.Format(time.DateOnly)
	case "yesterday":
		return now.AddDate(0, 0, -1).Format(time.DateOnly)
	default:
		return arg
	}
}
