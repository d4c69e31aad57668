package commands

import (
	"fmt"

	"github.com/quarterdeck-labs/quarterdeck/internal/console"
	"github.com/quarterdeck-labs/quarterdeck/internal/grid"
	"github.com/spf13/cobra"
)

// NewStorageCommand creates the storage command group.
func NewStorageCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storage",
		Short: "Inspect key-value storage objects",
		Long: `Browse the key-value storage objects held by the backend.

Objects are addressed by (collection, key, owner). Use "storage list"
for a one-shot paginated listing, or "storage browse" for an
interactive session with search and paging.`,
	}

	cmd.AddCommand(newStorageListCommand())
	cmd.AddCommand(newStorageBrowseCommand())

	return cmd
}

func newStorageListCommand() *cobra.Command {
	opts := &ListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List storage objects",
		Example: `  # First page of storage objects
  quarterdeck storage list

  # Search across collection, key, and owner
  quarterdeck storage list --query saves

  # Output as CSV
  quarterdeck storage list -o csv`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStorageList(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Query, "query", "q", "", "Filter objects by search query")
	cmd.Flags().IntVar(&opts.Page, "page", 1, "Page to display")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", 0, "Rows per page (default 10)")

	return cmd
}

func newStorageBrowseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse storage objects interactively",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			objects, err := cc.Source.ListObjects(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list storage objects: %w", err)
			}

			g, err := newStorageGrid(objects, cc.Cfg.GetUIConfig().PageSize)
			if err != nil {
				return err
			}

			return runBrowseREPL(cmd, browseSession[console.StorageObject]{
				Grid:    g,
				Prompt:  "storage> ",
				What:    "storage objects",
				Source:  cc.Source.Name(),
				Columns: storageListColumns(),
				Detail:  renderObjectDetail,
				Format:  cc.Cfg.OutputFormat,
			})
		},
	}

	return cmd
}

func runStorageList(cmd *cobra.Command, opts *ListOptions) error {
	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	objects, err := cc.Source.ListObjects(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list storage objects: %w", err)
	}

	g, err := newStorageGrid(objects, opts.PageSize)
	if err != nil {
		return err
	}
	g.SetSearchQuery(opts.Query)
	g.SetPage(opts.Page)

	return renderGridPage(cmd.OutOrStdout(), g, storageListColumns(), cc.Cfg.OutputFormat)
}

// newStorageGrid builds the canonical storage grid: searchable across
// collection, key, and owning user, keyed by the composite record ID.
func newStorageGrid(objects []console.StorageObject, pageSize int) (*grid.Grid[console.StorageObject], error) {
	return grid.New(grid.Config[console.StorageObject]{
		Records:  objects,
		KeyField: "record_id",
		Fields: map[string]grid.Field[console.StorageObject]{
			"record_id":  func(o console.StorageObject) any { return o.RecordID() },
			"collection": func(o console.StorageObject) any { return o.Collection },
			"key":        func(o console.StorageObject) any { return o.Key },
			"user_id":    func(o console.StorageObject) any { return o.UserID },
			"version":    func(o console.StorageObject) any { return o.Version },
			"permission": func(o console.StorageObject) any { return o.Permission() },
			"updated_at": func(o console.StorageObject) any { return o.UpdatedAt.Format("2006-01-02 15:04") },
		},
		Columns: []grid.Column[console.StorageObject]{
			{Key: "collection", Header: "Collection"},
			{Key: "key", Header: "Key"},
			{Key: "user_id", Header: "Owner"},
			{Key: "version", Header: "Version"},
			{Key: "permission", Header: "Permission"},
			{Key: "updated_at", Header: "Updated"},
		},
		Searchable:   true,
		SearchFields: []string{"collection", "key", "user_id"},
		Pagination:   true,
		PageSize:     pageSize,
		EmptyMessage: "No storage objects found",
	})
}

func storageListColumns() []string {
	return []string{"Collection", "Key", "Owner", "Version", "Permission", "Updated"}
}

func renderObjectDetail(cmd *cobra.Command, o console.StorageObject) {
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Collection: %s\n", o.Collection)
	_, _ = fmt.Fprintf(out, "Key:        %s\n", o.Key)
	_, _ = fmt.Fprintf(out, "Owner:      %s\n", o.UserID)
	_, _ = fmt.Fprintf(out, "Version:    %s\n", o.Version)
	_, _ = fmt.Fprintf(out, "Permission: %s\n", o.Permission())
	_, _ = fmt.Fprintf(out, "Updated:    %s\n", o.UpdatedAt.Format("2006-01-02 15:04:05"))
	_, _ = fmt.Fprintf(out, "Value:      %s\n", o.Value)
}
