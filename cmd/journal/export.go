package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"daily-journal/internal/client"
)

// exportDoc is the shape written by journal export.
type exportDoc struct {
	ExportedAt time.Time      `json:"exportedAt" yaml:"exportedAt"`
	Server     string         `json:"server" yaml:"server"`
	Count      int            `json:"count" yaml:"count"`
	Entries    []client.Entry `json:"entries" yaml:"entries"`
}

func newExportCmd(o *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every entry to stdout as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "json" && format != "yaml" {
				return fmt.Errorf("--format must be json or yaml, got %q", format)
			}
			cfg, err := o.clientConfig()
			if err != nil {
				return err
			}
			api, err := client.New(cfg)
			if err != nil {
				return err
			}

			entries, err := api.List(cmd.Context())
			if err != nil {
				return err
			}
			doc := exportDoc{
				ExportedAt: time.Now().UTC(),
				Server:     cfg.BaseURL,
				Count:      len(entries),
				Entries:    entries,
			}

			if format == "json" {
				return o.printJSON(doc)
			}
			enc := yaml.NewEncoder(o.out)
			enc.SetIndent(2)
			if err := enc.Encode(doc); err != nil {
				return fmt.Errorf("encode yaml: %w", err)
			}
			return enc.Close()
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	return cmd
}
