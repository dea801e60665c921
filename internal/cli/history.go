package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tactus-lang/tactus/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	LogDB    string
	Document string
	Limit    int
}

// HistoryListing is the success payload for the history command.
type HistoryListing struct {
	Records []store.Record `json:"records"`
}

func (l HistoryListing) String() string {
	if len(l.Records) == 0 {
		return "no compilations recorded"
	}

	var b strings.Builder
	for _, rec := range l.Records {
		fmt.Fprintf(&b, "%s  %s  %d error(s), %d warning(s)  %s\n",
			time.Unix(rec.CreatedAt, 0).UTC().Format(time.RFC3339),
			rec.ID,
			rec.ErrorCount,
			rec.WarningCount,
			rec.DocumentURI,
		)
	}
	return strings.TrimRight(b.String(), "\n")
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "history",
		Short:         "List recorded compilations from a compile-log database",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.LogDB, "log-db", "", "compile-log database path (required)")
	cmd.Flags().StringVar(&opts.Document, "document", "", "filter by document URI")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum records to list")
	_ = cmd.MarkFlagRequired("log-db")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	db, err := store.Open(opts.LogDB)
	if err != nil {
		return &ExitError{Code: ExitCommandError, Message: "opening compile log", Err: err}
	}
	defer db.Close()

	records, err := db.ListCompilations(cmd.Context(), opts.Document, opts.Limit)
	if err != nil {
		return &ExitError{Code: ExitCommandError, Message: "reading compile log", Err: err}
	}

	return formatter.Success(HistoryListing{Records: records}, nil)
}
