// search.go implements the "vaultmd search" command.
//
// Design: the three entry modes map to one positional query argument plus
// --pattern and --natural flags, with the same precedence as the MCP tool:
// pattern over natural over query. Output is the same budgeted Markdown
// digest the MCP server returns, so behaviour is identical whether a human
// or an LLM drives the search.

package cmd

import (
	"fmt"
	"strings"

	"github.com/jpl-au/vaultmd/internal/duration"
	"github.com/jpl-au/vaultmd/internal/log"
	"github.com/jpl-au/vaultmd/internal/query"
	"github.com/jpl-au/vaultmd/internal/respond"
	"github.com/jpl-au/vaultmd/internal/search"
	"github.com/spf13/cobra"
)

var searchFlags struct {
	pattern       string
	natural       string
	strategy      string
	contentType   string
	tags          []string
	folder        string
	within        string
	includeNull   bool
	maxResults    int
	sortBy        string
	sortOrder     string
	format        string
	caseSensitive bool
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search notes",
	Long: `Search notes by free text, glob pattern, or natural language.

Quoted phrases match exactly; terms joined by OR match any term; three or
more plain terms must all appear. Examples:

  vaultmd search "sourdough starter"
  vaultmd search --pattern 'projects/*'
  vaultmd search --natural "restaurants I saved last month"
  vaultmd search --type Recipe --tag italian --within 2w pasta`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func runSearch(c *cobra.Command, args []string) error {
	ctx := c.Context()

	text := ""
	if len(args) == 1 {
		text = args[0]
	}

	var mode search.Mode
	var logged string
	switch {
	case searchFlags.pattern != "":
		mode = search.PatternMode{Glob: searchFlags.pattern}
		logged = "pattern:" + searchFlags.pattern
	case searchFlags.natural != "":
		mode = search.NaturalMode{Phrase: searchFlags.natural}
		logged = "natural:" + searchFlags.natural
	default:
		mode = search.QueryMode{
			Text:          text,
			Strategy:      query.Strategy(searchFlags.strategy),
			CaseSensitive: searchFlags.caseSensitive,
		}
		logged = "query:" + text
	}

	req := search.Request{
		Mode:              mode,
		ContentType:       searchFlags.contentType,
		Tags:              searchFlags.tags,
		Folder:            searchFlags.folder,
		IncludeNullValues: searchFlags.includeNull,
		SortBy:            search.SortBy(searchFlags.sortBy),
		SortOrder:         search.SortOrder(searchFlags.sortOrder),
	}
	if searchFlags.within != "" {
		days, err := duration.Days(searchFlags.within)
		if err != nil {
			return err
		}
		req.Days = days
	}
	// Changed() rather than a zero check: an explicit --max 0 must reach
	// the clamp, which records the adjustment to 1
	if c.Flags().Changed("max") {
		req.MaxResults = &searchFlags.maxResults
	}

	v, err := openVault()
	if err != nil {
		return err
	}

	engine := search.New(v)
	resp, err := engine.Search(ctx, req)

	l := log.Event("cli:search", "search").Query(logged)
	if resp != nil {
		l.Detail("total", resp.Total)
	}
	l.Write(err)

	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	cfg := loadConfig()
	format := searchFlags.format
	if format == "" {
		format = cfg.Format()
	}
	budget := respond.NewBudget(cfg.MaxCharacters(), cfg.TokenRatio())
	rendered := respond.SearchResponse(resp, respond.ParseFormat(format), budget)

	fmt.Fprint(Out(), rendered.Content)
	if !strings.HasSuffix(rendered.Content, "\n") {
		fmt.Fprintln(Out())
	}
	return nil
}

func init() {
	f := searchCmd.Flags()
	f.StringVarP(&searchFlags.pattern, "pattern", "p", "", "Glob pattern matched against note paths and names")
	f.StringVarP(&searchFlags.natural, "natural", "N", "", "Natural-language request; filters are inferred")
	f.StringVar(&searchFlags.strategy, "strategy", "", "Matching strategy: exact_phrase, all_terms, any_term, auto")
	f.StringVarP(&searchFlags.contentType, "type", "t", "", "Filter by front matter type")
	f.StringArrayVar(&searchFlags.tags, "tag", nil, "Filter by tag (repeatable; any listed tag matches)")
	f.StringVarP(&searchFlags.folder, "folder", "f", "", "Limit search to a folder prefix")
	f.StringVar(&searchFlags.within, "within", "", "Only notes modified within a window (e.g. 7d, 2w, 1m)")
	f.BoolVar(&searchFlags.includeNull, "include-null", false, "With --type, also include notes that have no type")
	f.IntVarP(&searchFlags.maxResults, "max", "n", 0, "Maximum results (1-100, default 25)")
	f.StringVar(&searchFlags.sortBy, "sort", "", "Sort key: relevance, modified, created, title")
	f.StringVar(&searchFlags.sortOrder, "order", "", "Sort order: asc or desc")
	f.StringVar(&searchFlags.format, "format", "", "Result verbosity: concise or detailed")
	f.BoolVar(&searchFlags.caseSensitive, "case-sensitive", false, "Match query case exactly")

	rootCmd.AddCommand(searchCmd)
}
