package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/quarterdeck-labs/quarterdeck/internal/grid"
	"github.com/spf13/cobra"
)

// browseSession bundles everything the interactive browser needs for one
// record type.
type browseSession[T any] struct {
	Grid    *grid.Grid[T]
	Prompt  string
	What    string // plural noun for messages, e.g. "players"
	Source  string // data source name shown in the banner
	Columns []string
	Detail  func(*cobra.Command, T)
	Format  string
}

// runBrowseREPL drives an interactive readline session over a grid:
// search, paging, and opening a row's detail view.
func runBrowseREPL[T any](cmd *cobra.Command, s browseSession[T]) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.Prompt,
		AutoComplete:    browseCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize browser: %w", err)
	}
	defer func() { _ = rl.Close() }()

	out := cmd.OutOrStdout()
	styles := newStyles()
	_, _ = fmt.Fprintln(out, styles.Header.Render(fmt.Sprintf("Browsing %s (source: %s)", s.What, s.Source)))
	_, _ = fmt.Fprintln(out, styles.Muted.Render("Type help for commands, quit to exit"))
	_, _ = fmt.Fprintln(out)

	// Show the first page up front
	if err := renderGridPage(out, s.Grid, s.Columns, s.Format); err != nil {
		return err
	}

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if quit := handleBrowseCommand(cmd, s, line); quit {
			break
		}
	}

	return nil
}

// handleBrowseCommand executes one REPL command. Returns true when the
// session should end.
func handleBrowseCommand[T any](cmd *cobra.Command, s browseSession[T], line string) bool {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	// "/text" is shorthand for "search text"
	if strings.HasPrefix(line, "/") {
		line = "search " + strings.TrimSpace(line[1:])
	}

	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])
	arg := strings.TrimSpace(strings.TrimPrefix(line, parts[0]))

	redraw := func() {
		if err := renderGridPage(out, s.Grid, s.Columns, s.Format); err != nil {
			_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
		}
	}

	switch command {
	case "quit", "exit", "q":
		return true

	case "help", "?":
		printBrowseHelp(out)

	case "search", "s":
		s.Grid.SetSearchQuery(arg)
		redraw()

	case "clear":
		s.Grid.SetSearchQuery("")
		redraw()

	case "page", "p":
		n, err := strconv.Atoi(arg)
		if err != nil {
			_, _ = fmt.Fprintln(errOut, "Usage: page <number>")
			return false
		}
		s.Grid.SetPage(n)
		redraw()

	case "next", "n":
		s.Grid.SetPage(s.Grid.Page() + 1)
		redraw()

	case "prev":
		s.Grid.SetPage(s.Grid.Page() - 1)
		redraw()

	case "open", "o":
		if arg == "" {
			_, _ = fmt.Fprintln(errOut, "Usage: open <id>")
			return false
		}
		rec, ok := s.Grid.ActivateRow(arg)
		if !ok {
			_, _ = fmt.Fprintf(errOut, "No row with id %q in the current result set\n", arg)
			return false
		}
		s.Grid.Select(arg)
		s.Detail(cmd, rec)

	case "show", "ls":
		redraw()

	default:
		_, _ = fmt.Fprintf(errOut, "Unknown command: %s (type help for commands)\n", command)
	}

	return false
}

func printBrowseHelp(w io.Writer) {
	_, _ = fmt.Fprintln(w, newStyles().Bold.Render("Commands:"))
	_, _ = fmt.Fprintln(w, "  search <text>  Filter rows (case-insensitive, matches any search field)")
	_, _ = fmt.Fprintln(w, "  clear          Clear the active search")
	_, _ = fmt.Fprintln(w, "  page <n>       Jump to page n (clamped to the valid range)")
	_, _ = fmt.Fprintln(w, "  next / prev    Move one page forward or back")
	_, _ = fmt.Fprintln(w, "  open <id>      Show the detail view for a row in the result set")
	_, _ = fmt.Fprintln(w, "  show           Redraw the current page")
	_, _ = fmt.Fprintln(w, "  quit           Exit the browser")
}

func browseCompleter() readline.AutoCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("search"),
		readline.PcItem("clear"),
		readline.PcItem("page"),
		readline.PcItem("next"),
		readline.PcItem("prev"),
		readline.PcItem("open"),
		readline.PcItem("show"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}
