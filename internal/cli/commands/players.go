package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/quarterdeck-labs/quarterdeck/internal/console"
	"github.com/quarterdeck-labs/quarterdeck/internal/grid"
	"github.com/spf13/cobra"
)

// ListOptions holds shared options for the list subcommands.
type ListOptions struct {
	Query    string
	Page     int
	PageSize int
}

// NewPlayersCommand creates the players command group.
func NewPlayersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "players",
		Short: "Inspect and moderate player accounts",
		Long: `Browse the player accounts known to the backend.

Use "players list" for a one-shot paginated listing, or "players browse"
for an interactive session with search and paging.`,
	}

	cmd.AddCommand(newPlayersListCommand())
	cmd.AddCommand(newPlayersBrowseCommand())

	return cmd
}

func newPlayersListCommand() *cobra.Command {
	opts := &ListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List player accounts",
		Example: `  # First page of players
  quarterdeck players list

  # Search across username and display name
  quarterdeck players list --query admin

  # Third page, 25 per page, as JSON
  quarterdeck players list --page 3 --page-size 25 -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlayersList(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Query, "query", "q", "", "Filter players by search query")
	cmd.Flags().IntVar(&opts.Page, "page", 1, "Page to display")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", 0, "Rows per page (default 10)")

	return cmd
}

func newPlayersBrowseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse players interactively",
		Long: `Open an interactive browser over the player list.

Type "help" inside the session for the available commands (search,
paging, opening a player's detail view).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			players, err := cc.Source.ListPlayers(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list players: %w", err)
			}

			g, err := newPlayerGrid(players, cc.Cfg.GetUIConfig().PageSize)
			if err != nil {
				return err
			}

			return runBrowseREPL(cmd, browseSession[console.Player]{
				Grid:    g,
				Prompt:  "players> ",
				What:    "players",
				Source:  cc.Source.Name(),
				Columns: playerListColumns(),
				Detail:  renderPlayerDetail,
				Format:  cc.Cfg.OutputFormat,
			})
		},
	}

	return cmd
}

func runPlayersList(cmd *cobra.Command, opts *ListOptions) error {
	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	players, err := cc.Source.ListPlayers(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list players: %w", err)
	}

	g, err := newPlayerGrid(players, opts.PageSize)
	if err != nil {
		return err
	}
	g.SetSearchQuery(opts.Query)
	g.SetPage(opts.Page)

	return renderGridPage(cmd.OutOrStdout(), g, playerListColumns(), cc.Cfg.OutputFormat)
}

// newPlayerGrid builds the canonical player grid: searchable across
// username and display name, keyed by player ID.
func newPlayerGrid(players []console.Player, pageSize int) (*grid.Grid[console.Player], error) {
	return grid.New(grid.Config[console.Player]{
		Records:  players,
		KeyField: "id",
		Fields: map[string]grid.Field[console.Player]{
			"id":           func(p console.Player) any { return p.ID },
			"username":     func(p console.Player) any { return p.Username },
			"display_name": func(p console.Player) any { return p.DisplayName },
			"level":        func(p console.Player) any { return p.Level },
			"status":       func(p console.Player) any { return p.Status() },
			"win_loss":     func(p console.Player) any { return p.WinLoss() },
			"last_seen":    func(p console.Player) any { return p.LastSeen.Format("2006-01-02 15:04") },
		},
		Columns: []grid.Column[console.Player]{
			{Key: "id", Header: "ID"},
			{Key: "username", Header: "Username"},
			{Key: "display_name", Header: "Display Name"},
			{Key: "level", Header: "Level"},
			{Key: "win_loss", Header: "W/L"},
			{Key: "status", Header: "Status"},
			{Key: "last_seen", Header: "Last Seen"},
		},
		Searchable:   true,
		SearchFields: []string{"username", "display_name"},
		Pagination:   true,
		PageSize:     pageSize,
		EmptyMessage: "No players found",
	})
}

func playerListColumns() []string {
	return []string{"ID", "Username", "Display Name", "Level", "W/L", "Status", "Last Seen"}
}

func renderPlayerDetail(cmd *cobra.Command, p console.Player) {
	out := cmd.OutOrStdout()
	styles := newStyles()
	_, _ = fmt.Fprintf(out, "ID:           %s\n", p.ID)
	_, _ = fmt.Fprintf(out, "Username:     %s\n", p.Username)
	_, _ = fmt.Fprintf(out, "Display name: %s\n", p.DisplayName)
	_, _ = fmt.Fprintf(out, "Level:        %d\n", p.Level)
	_, _ = fmt.Fprintf(out, "Games:        %d (%d won, %d lost)\n", p.GamesPlayed, p.Wins, p.Losses)
	_, _ = fmt.Fprintf(out, "Status:       %s\n", statusStyle(styles, p.Status()).Render(p.Status()))
	_, _ = fmt.Fprintf(out, "Last seen:    %s\n", p.LastSeen.Format("2006-01-02 15:04:05"))
	_, _ = fmt.Fprintf(out, "Created:      %s\n", p.CreatedAt.Format("2006-01-02 15:04:05"))
}

// renderGridPage renders the grid's visible rows plus a pagination footer.
func renderGridPage[T any](w io.Writer, g *grid.Grid[T], cols []string, format string) error {
	tabular := format == "" || format == "table"

	if g.Empty() && tabular {
		_, _ = fmt.Fprintln(w, g.EmptyMessage())
		return nil
	}

	rows := make([]map[string]any, 0, len(g.VisibleRows()))
	for _, rec := range g.VisibleRows() {
		row := make(map[string]any, len(cols))
		for i, col := range g.Columns() {
			row[cols[i]] = g.Cell(rec, col)
		}
		rows = append(rows, row)
	}

	if err := renderRows(w, cols, rows, format); err != nil {
		return err
	}

	if tabular {
		footer := "Page " + strconv.Itoa(g.Page()) + "/" + strconv.Itoa(g.TotalPages()) +
			" (" + strconv.Itoa(g.FilteredLen()) + " of " + strconv.Itoa(g.TotalLen()) + " rows"
		if q := g.Query(); q != "" {
			footer += ", query " + strconv.Quote(q)
		}
		footer += ")"
		_, _ = fmt.Fprintln(w, newStyles().Muted.Render(footer))
	}
	return nil
}
