// edit.go implements the "vaultmd edit" command for search/replace edits.
//
// Replaces the first occurrence of a string in a note body and prints a
// unified-style diff of the change.

package cmd

import (
	"fmt"

	"github.com/jpl-au/vaultmd/internal/edit"
	"github.com/jpl-au/vaultmd/internal/log"
	"github.com/jpl-au/vaultmd/internal/vault"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <path> <old> <new>",
	Short: "Edit a note via search/replace",
	Long:  `Replace the first occurrence of <old> with <new> in a note's body. Front matter is preserved verbatim.`,
	Args:  cobra.ExactArgs(3),
	RunE:  runEdit,
}

func runEdit(c *cobra.Command, args []string) error {
	ctx := c.Context()
	p := vault.NormalisePath(args[0])

	v, err := openVault()
	if err != nil {
		return err
	}

	result, err := edit.Run(ctx, v, p, args[1], args[2])

	log.Event("cli:edit", "edit").Path(p).Write(err)

	if err != nil {
		return fmt.Errorf("edit %q: %w", p, err)
	}

	fmt.Fprintf(Out(), "edited %s\n\n%s", result.Path, result.Diff)
	return nil
}

func init() {
	rootCmd.AddCommand(editCmd)
}
