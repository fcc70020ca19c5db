package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/incentiva/internal/core/ports/driving"
)

var (
	exportName   string
	exportList   bool
	exportShow   string
	exportDelete string
	exportLimit  int
	exportJSON   bool
)

var exportCmd = &cobra.Command{
	Use:   "export <out.db>",
	Short: "Save the filtered table to a SQLite snapshot",
	Long: `Writes the (optionally filtered) plan table to a SQLite database as a
named snapshot. The database can hold many snapshots; each records its
source file and filters. Use --list to show the snapshots already stored,
--show <id> to print a stored snapshot's rows and --delete <id> to remove
one.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportName, "name", "", "snapshot name (default: timestamp)")
	exportCmd.Flags().BoolVar(&exportList, "list", false, "list stored snapshots instead of exporting")
	exportCmd.Flags().StringVar(&exportShow, "show", "", "print the rows of a stored snapshot")
	exportCmd.Flags().StringVar(&exportDelete, "delete", "", "remove a stored snapshot")
	exportCmd.Flags().IntVarP(&exportLimit, "limit", "n", 0, "with --show, maximum number of rows (0 for all)")
	exportCmd.Flags().BoolVar(&exportJSON, "json", false, "output as JSON")
	exportCmd.MarkFlagsMutuallyExclusive("list", "show", "delete")
	addFilterFlags(exportCmd)
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if openExporter == nil {
		return errors.New("export service not configured")
	}

	exporter, closer, err := openExporter(args[0])
	if err != nil {
		return fmt.Errorf("opening %s: %w", args[0], err)
	}
	defer closer.Close()

	switch {
	case exportList:
		return listSnapshots(cmd, exporter)
	case exportShow != "":
		return showSnapshot(cmd, exporter, exportShow)
	case exportDelete != "":
		return deleteSnapshot(cmd, exporter, exportDelete)
	}

	sel, err := selectionFromFlags(cmd)
	if err != nil {
		return err
	}

	snap, err := exporter.Export(cmd.Context(), exportName, sel)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if exportJSON {
		return printJSON(cmd, snap)
	}

	cmd.Printf("Exported %s rows to %s\n", humanize.Comma(int64(snap.RowCount)), args[0])
	cmd.Printf("  Snapshot: %s (%s)\n", snap.Name, snap.ID)
	if filters := describeSelection(sel); filters != "" {
		cmd.Printf("  Filters:  %s\n", filters)
	}
	return nil
}

func listSnapshots(cmd *cobra.Command, exporter driving.ExportService) error {
	snaps, err := exporter.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing snapshots: %w", err)
	}

	if exportJSON {
		if snaps == nil {
			return printJSON(cmd, []any{})
		}
		return printJSON(cmd, snaps)
	}

	if len(snaps) == 0 {
		cmd.Println("No snapshots stored.")
		return nil
	}

	rows := make([][]string, 0, len(snaps))
	for i := range snaps {
		s := &snaps[i]
		rows = append(rows, []string{
			s.ID,
			s.Name,
			strconv.Itoa(s.RowCount),
			describeSelection(s.Selection()),
			humanize.Time(s.CreatedAt),
		})
	}
	cmd.Println(renderTable(cmd, []string{"ID", "Name", "Rows", "Filters", "Created"}, rows))
	return nil
}

func showSnapshot(cmd *cobra.Command, exporter driving.ExportService, id string) error {
	rows, err := exporter.Rows(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("snapshot %s: %w", id, err)
	}
	return printRows(cmd, rows, exportLimit, exportJSON)
}

func deleteSnapshot(cmd *cobra.Command, exporter driving.ExportService, id string) error {
	if err := exporter.Delete(cmd.Context(), id); err != nil {
		return fmt.Errorf("snapshot %s: %w", id, err)
	}
	cmd.Printf("Deleted snapshot %s\n", id)
	return nil
}
