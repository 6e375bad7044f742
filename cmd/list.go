// list.go implements the "vaultmd list" command for vault enumerations.
//
// Mirrors the vault_list MCP tool: folders, recently modified notes, front
// matter properties, or notes under a folder, all rendered through the same
// budgeted list formatting.

package cmd

import (
	"fmt"
	"sort"

	"github.com/jpl-au/vaultmd/internal/log"
	"github.com/jpl-au/vaultmd/internal/respond"
	"github.com/jpl-au/vaultmd/internal/vault"
	"github.com/spf13/cobra"
)

var listLimit int

var listCmd = &cobra.Command{
	Use:       "list <folders|recent|properties|templates|notes> [folder]",
	Short:     "List vault contents",
	Long:      `List folders, recently modified notes, front matter properties, templates, or notes under a folder.`,
	Args:      cobra.RangeArgs(1, 2),
	ValidArgs: []string{"folders", "recent", "properties", "templates", "notes"},
	RunE:      runList,
}

func runList(c *cobra.Command, args []string) error {
	ctx := c.Context()
	kind := args[0]

	v, err := openVault()
	if err != nil {
		return err
	}

	var (
		title string
		items []string
	)

	switch kind {
	case "folders":
		title = "Folders"
		items, err = v.Folders(ctx)
	case "recent":
		title = "Recently modified"
		docs, rerr := v.Recent(ctx, listLimit)
		err = rerr
		for _, doc := range docs {
			items = append(items, fmt.Sprintf("%s (modified %s)", doc.Path, doc.ModifiedAt.Format("2006-01-02")))
		}
	case "properties":
		title = "Front matter properties"
		props, perr := v.Properties(ctx)
		err = perr
		for _, p := range props {
			items = append(items, fmt.Sprintf("%s (%d notes)", p.Key, p.Count))
		}
	case "templates":
		title = "Templates"
		docs, terr := v.Templates(ctx)
		err = terr
		for _, doc := range docs {
			items = append(items, fmt.Sprintf("%s (%s)", doc.Path, doc.Title()))
		}
	case "notes":
		folder := ""
		if len(args) == 2 {
			folder = args[1]
		}
		title = "Notes"
		if folder != "" {
			title = "Notes in " + folder
		}
		docs, lerr := v.List(ctx, vault.Filters{Folder: folder})
		err = lerr
		for _, doc := range docs {
			items = append(items, doc.Path)
		}
		sort.Strings(items)
	default:
		return fmt.Errorf("unknown list kind %q (valid: folders, recent, properties, templates, notes)", kind)
	}

	log.Event("cli:list", "list").Detail("kind", kind).Detail("count", len(items)).Write(err)

	if err != nil {
		return fmt.Errorf("list %s: %w", kind, err)
	}

	cfg := loadConfig()
	budget := respond.NewBudget(cfg.MaxCharacters(), cfg.TokenRatio())
	rendered := respond.ListResponse(title, items, budget)
	fmt.Fprint(Out(), rendered.Content)
	return nil
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 10, "How many notes to show for 'recent'")
	rootCmd.AddCommand(listCmd)
}
