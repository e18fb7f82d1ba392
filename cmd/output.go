package cmd

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"ims/internal/console"
	"ims/internal/table"
	custom_error "ims/pkg/errors"

	"github.com/spf13/cobra"
)

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
}

func writeListing(out io.Writer, listing console.Listing) error {
	w := newTable(out)

	headers := []string{"ID"}
	for _, col := range listing.Columns {
		headers = append(headers, strings.ToUpper(col.Label))
	}
	fmt.Fprintln(w, strings.Join(headers, "\t"))

	for _, row := range listing.Rows {
		fmt.Fprintf(w, "%d\t%s\n", row.ID, strings.Join(row.Cells, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if listing.PageSize > 0 {
		pages := (listing.Total + listing.PageSize - 1) / listing.PageSize
		fmt.Fprintf(out, "\nPage %d of %d, %d records\n", listing.Page, max(pages, 1), listing.Total)
	} else {
		fmt.Fprintf(out, "\n%d records\n", listing.Total)
	}
	return nil
}

// applied drops err when it only reports a failed list refresh after the
// upstream applied the change, printing a warning instead.
func applied(cmd *cobra.Command, err error) error {
	var resyncErr *table.ResyncError
	if !errors.As(err, &resyncErr) {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "warning: the list could not be refreshed: %s\n", custom_error.Notification(resyncErr.Err))
	return nil
}

// describe turns err into the message an operator sees, with field errors listed one per line.
func describe(err error) error {
	var validationErr *custom_error.ValidationError
	if errors.As(err, &validationErr) {
		names := make([]string, 0, len(validationErr.Fields))
		for name := range validationErr.Fields {
			names = append(names, name)
		}
		sort.Strings(names)

		var b strings.Builder
		b.WriteString("the form has errors:")
		for _, name := range names {
			fmt.Fprintf(&b, "\n  %s: %s", name, validationErr.Fields[name])
		}
		return errors.New(b.String())
	}

	var expired *custom_error.SessionExpiredError
	if errors.As(err, &expired) || errors.Is(err, custom_error.ErrUnauthenticated) {
		return fmt.Errorf("%s (ims login --token ...)", custom_error.Notification(err))
	}

	var httpErr *custom_error.HttpError
	var networkErr *custom_error.NetworkError
	if errors.As(err, &httpErr) || errors.As(err, &networkErr) {
		return errors.New(custom_error.Notification(err))
	}

	return err
}
