// Package shell is a read-only inspection REPL over the career database:
// list tables, show schema, describe columns, run ad-hoc read queries.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"careernav/db"
)

const prompt = "careernav> "

const helpText = `Commands:
  tables                 list all tables
  schema <table>         show the CREATE TABLE statement
  describe <table>       list the table's columns
  count <table>          row count
  query <select ...>     run a read-only query (bare SELECT also works)
  help                   this message
  exit                   leave the shell`

// Shell reads commands from in and writes results to out. Each command maps
// to one Store call; command failures are reported and the loop continues.
type Shell struct {
	store db.Store
	in    io.Reader
	out   io.Writer
}

func New(store db.Store, in io.Reader, out io.Writer) *Shell {
	return &Shell{store: store, in: in, out: out}
}

// Run loops until EOF or an exit command. The returned error only reflects
// input problems; per-command failures stay inside the loop.
func (s *Shell) Run() error {
	fmt.Fprintln(s.out, dimStyle.Render("career database shell, type 'help' for commands"))
	scanner := bufio.NewScanner(s.in)
	for {
		fmt.Fprint(s.out, promptStyle.Render(prompt))
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if done := s.dispatch(line); done {
			return nil
		}
	}
}

// dispatch executes one command line and reports whether the loop should end.
func (s *Shell) dispatch(line string) bool {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "exit", "quit":
		return true
	case "help":
		fmt.Fprintln(s.out, helpText)
	case "tables":
		s.showTables()
	case "schema":
		s.showSchema(arg)
	case "describe":
		s.describe(arg)
	case "count":
		s.count(arg)
	case "query":
		s.runQuery(arg)
	case "select", "with":
		// Convenience: a bare query works without the `query` prefix.
		s.runQuery(line)
	default:
		s.reportError(fmt.Errorf("unknown command %q, try 'help'", cmd))
	}
	return false
}

func (s *Shell) showTables() {
	tables, err := s.store.ListTables()
	if err != nil {
		s.reportError(err)
		return
	}
	for _, t := range tables {
		fmt.Fprintln(s.out, t)
	}
}

func (s *Shell) showSchema(table string) {
	if table == "" {
		s.reportError(fmt.Errorf("usage: schema <table>"))
		return
	}
	ddl, err := s.store.TableSchema(table)
	if err != nil {
		s.reportError(err)
		return
	}
	fmt.Fprintln(s.out, ddl)
}

func (s *Shell) describe(table string) {
	if table == "" {
		s.reportError(fmt.Errorf("usage: describe <table>"))
		return
	}
	cols, err := s.store.TableColumns(table)
	if err != nil {
		s.reportError(err)
		return
	}
	w := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, headerStyle.Render("column")+"\t"+headerStyle.Render("type")+"\t"+headerStyle.Render("constraints"))
	for _, c := range cols {
		var notes []string
		if c.PrimaryKey {
			notes = append(notes, "primary key")
		}
		if c.NotNull {
			notes = append(notes, "not null")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", c.Name, c.Type, strings.Join(notes, ", "))
	}
	if err := w.Flush(); err != nil {
		s.reportError(err)
	}
}

func (s *Shell) count(table string) {
	if table == "" {
		s.reportError(fmt.Errorf("usage: count <table>"))
		return
	}
	n, err := s.store.CountRows(table)
	if err != nil {
		s.reportError(err)
		return
	}
	fmt.Fprintln(s.out, n)
}

func (s *Shell) runQuery(query string) {
	if query == "" {
		s.reportError(fmt.Errorf("usage: query <select ...>"))
		return
	}
	rs, err := s.store.Query(query)
	if err != nil {
		s.reportError(err)
		return
	}
	s.renderResultSet(rs)
}

func (s *Shell) renderResultSet(rs *db.ResultSet) {
	w := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	headers := make([]string, len(rs.Columns))
	for i, c := range rs.Columns {
		headers[i] = headerStyle.Render(c)
	}
	fmt.Fprintln(w, strings.Join(headers, "\t"))
	for _, row := range rs.Rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	if err := w.Flush(); err != nil {
		s.reportError(err)
		return
	}
	fmt.Fprintln(s.out, dimStyle.Render(fmt.Sprintf("(%d rows)", len(rs.Rows))))
}

func (s *Shell) reportError(err error) {
	fmt.Fprintln(s.out, errStyle.Render("error: ")+err.Error())
}
