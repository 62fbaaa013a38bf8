package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

var (
	errorColor = color.New(color.FgRed, color.Bold)
	statColor  = color.New(color.FgCyan)
	okColor    = color.New(color.FgGreen)
)

// reportedError marks an error whose banner has already been printed.
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }

func (e reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return reportedError{err: err}
}

func isReported(err error) bool {
	var r reportedError
	return errors.As(err, &r)
}

// banner prints a red error line.
func banner(w io.Writer, message string) {
	_, _ = errorColor.Fprintln(w, "Error: "+message)
}

// fail prints message as a banner and returns err marked as reported.
func fail(w io.Writer, message string, err error) error {
	banner(w, message)
	return reported(err)
}

func success(w io.Writer, format string, args ...any) {
	_, _ = okColor.Fprintf(w, format+"\n", args...)
}

// stat prints one "label: value" summary line.
func stat(w io.Writer, label, value string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", statColor.Sprint(label+":"), value)
}

type table struct {
	tw *tabwriter.Writer
}

func newTable(w io.Writer, headers ...string) *table {
	t := &table{tw: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
	t.row(headers...)
	return t
}

func (t *table) row(cells ...string) {
	_, _ = fmt.Fprintln(t.tw, strings.Join(cells, "\t"))
}

func (t *table) flush() {
	_ = t.tw.Flush()
}

// empty prints the placeholder shown for an empty list.
func empty(w io.Writer, noun string) {
	_, _ = fmt.Fprintf(w, "No %s found.\n", noun)
}
