package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/Iron-Ham/townreport/internal/navigator"
)

var viewsCmd = &cobra.Command{
	Use:   "views",
	Short: "List screen names and their menu keys",
	Long: `List every screen townreport can show. The name is what --start-view
and ui.start_view accept; the key switches to the screen from the menu bar.`,
	Args: cobra.NoArgs,
	RunE: runViews,
}

func init() {
	rootCmd.AddCommand(viewsCmd)
}

func runViews(cmd *cobra.Command, args []string) error {
	_, err := fmt.Fprintln(cmd.OutOrStdout(), viewsTable(navigator.DefaultRegistry()))
	return err
}

// viewsTable renders one row per view with its menu key, or "-" for views
// without a menu entry.
func viewsTable(reg *navigator.Registry) string {
	t := table.New().Headers("VIEW", "KEY")
	for _, v := range navigator.AllViews() {
		key := "-"
		if e, ok := reg.MenuEntry(v); ok {
			key = e.Key
		}
		t.Row(v.String(), key)
	}
	return t.Render()
}
