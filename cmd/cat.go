// cat.go implements the "vaultmd cat" command for reading note contents.
//
// Design: terminal output gets glamour markdown rendering; pipe/redirect
// gets raw markdown. The --raw flag forces raw output on a terminal, which
// is useful for copying front matter verbatim.

package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/jpl-au/vaultmd/internal/log"
	"github.com/jpl-au/vaultmd/internal/vault"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var catRaw bool

var catCmd = &cobra.Command{
	Use:   "cat <path>",
	Short: "Read a note",
	Long:  `Output the contents of a note, front matter included, to stdout.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCat,
}

func runCat(c *cobra.Command, args []string) error {
	ctx := c.Context()
	p := vault.NormalisePath(args[0])

	v, err := openVault()
	if err != nil {
		return err
	}

	doc, err := v.Read(ctx, p)

	log.Event("cli:cat", "read").Path(p).Write(err)

	if err != nil {
		return fmt.Errorf("cat %q: %w", p, err)
	}

	text := noteText(doc)

	// Render with glamour if TTY and not --raw
	if !catRaw && term.IsTerminal(int(os.Stdout.Fd())) {
		if rendered, renderErr := glamour.Render(text, "dark"); renderErr == nil {
			fmt.Fprint(Out(), rendered)
			return nil
		}
	}

	fmt.Fprint(Out(), text)
	return nil
}

// noteText reconstructs the full on-disk text of a note.
func noteText(doc vault.Document) string {
	if len(doc.Frontmatter) == 0 {
		return doc.Body
	}
	fm, err := vault.RenderFrontmatter(doc.Frontmatter)
	if err != nil {
		return doc.Body
	}
	return fm + doc.Body
}

func init() {
	catCmd.Flags().BoolVar(&catRaw, "raw", false, "Output raw markdown without rendering")
	rootCmd.AddCommand(catCmd)
}
