// create.go implements the "vaultmd create" command.
//
// The body comes from --content or stdin, matching the write-from-pipe
// convention of Unix tools. Creation refuses to overwrite an existing note;
// use edit for changes.

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/vaultmd/internal/log"
	"github.com/jpl-au/vaultmd/internal/vault"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var createFlags struct {
	content     string
	title       string
	contentType string
	tags        []string
}

var createCmd = &cobra.Command{
	Use:   "create <path>",
	Short: "Create a new note",
	Long: `Create a new note at the given vault-relative path. Fails if the
path already exists. Body is read from --content, or from stdin when piped:

  echo "Pizza was excellent" | vaultmd create inbox/lupa --type Restaurant`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func runCreate(c *cobra.Command, args []string) error {
	ctx := c.Context()
	p := vault.NormalisePath(args[0])

	body := createFlags.content
	if body == "" && !term.IsTerminal(int(os.Stdin.Fd())) {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		body = string(data)
	}

	fm := map[string]any{}
	if createFlags.title != "" {
		fm["title"] = createFlags.title
	}
	if createFlags.contentType != "" {
		fm["type"] = createFlags.contentType
	}
	if len(createFlags.tags) > 0 {
		fm["tags"] = createFlags.tags
	}

	v, err := openVault()
	if err != nil {
		return err
	}

	err = v.Create(ctx, p, fm, body)

	log.Event("cli:create", "create").Path(p).Write(err)

	if err != nil {
		return fmt.Errorf("create %q: %w", p, err)
	}

	fmt.Fprintf(Out(), "created %s\n", p)
	return nil
}

func init() {
	f := createCmd.Flags()
	f.StringVar(&createFlags.content, "content", "", "Note body (default: stdin when piped)")
	f.StringVar(&createFlags.title, "title", "", "Front matter title")
	f.StringVarP(&createFlags.contentType, "type", "t", "", "Front matter type (e.g. Recipe, Meeting)")
	f.StringArrayVar(&createFlags.tags, "tag", nil, "Front matter tag (repeatable)")

	rootCmd.AddCommand(createCmd)
}
