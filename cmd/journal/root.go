package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"daily-journal/internal/client"
)

type rootOptions struct {
	server     string
	configPath string
	timeout    time.Duration
	verbose    bool
	asJSON     bool

	in  io.Reader
	out io.Writer
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	o := &rootOptions{in: in, out: out}

	root := &cobra.Command{
		Use:           "journal",
		Short:         "Read and write a daily journal",
		Long:          "journal talks to a daily-journal API server: one entry per date, searchable, with simple stats.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelWarn
			if o.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	root.SetIn(in)
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVar(&o.server, "server", "", "API base URL (env JOURNAL_SERVER, default http://localhost:3000)")
	flags.StringVar(&o.configPath, "config", defaultConfigPath(), "YAML config file")
	flags.DurationVar(&o.timeout, "timeout", 0, "per-request timeout (env JOURNAL_TIMEOUT)")
	flags.BoolVarP(&o.verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVar(&o.asJSON, "json", false, "print raw JSON instead of text")

	root.AddCommand(
		newListCmd(o),
		newGetCmd(o),
		newWriteCmd(o),
		newEditCmd(o),
		newDeleteCmd(o),
		newSearchCmd(o),
		newStatsCmd(o),
		newExportCmd(o),
	)
	return root
}

func (o *rootOptions) client() (*client.Client, error) {
	cfg, err := o.clientConfig()
	if err != nil {
		return nil, err
	}
	slog.Debug("using journal server", slog.String("server", cfg.BaseURL))
	return client.New(cfg)
}

func (o *rootOptions) journal() (*client.Journal, error) {
	api, err := o.client()
	if err != nil {
		return nil, err
	}
	return &client.Journal{API: api, Cache: client.NewCache(client.DefaultCacheSize)}, nil
}

func (o *rootOptions) printJSON(v any) error {
	enc := json.NewEncoder(o.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (o *rootOptions) printEntries(entries []client.Entry) error {
	if o.asJSON {
		return o.printJSON(entries)
	}
	if len(entries) == 0 {
		_, err := fmt.Fprintln(o.out, "No entries.")
		return err
	}
	tw := tabwriter.NewWriter(o.out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "DATE\tID\tWORDS\tPREVIEW")
	for _, e := range entries {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", e.Date, e.ID, len(strings.Fields(e.Content)), preview(e.Content, 60))
	}
	return tw.Flush()
}

func (o *rootOptions) printEntry(e *client.Entry) error {
	if o.asJSON {
		return o.printJSON(e)
	}
	_, err := fmt.Fprintf(o.out, "%s  (id %s, updated %s)\n\n%s\n",
		e.Date, e.ID, e.UpdatedAt.Local().Format(time.DateTime), e.Content)
	return err
}

// preview is the first line of s, cut to n runes.
func preview(s string, n int) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i] + " …"
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}
