package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/borno/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search entries",
		Long:  "Search word, translation, meaning and source for matching text. Without a query, list every entry.",
		Run:   runSearch,
	}

	cmd.Flags().IntP("limit", "l", 0, "Max results (0 for all)")

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")
	query := strings.Join(args, " ")

	env := mustOpenApp(cmd)
	defer env.Close()

	var results []model.Entry
	var err error
	if strings.TrimSpace(query) == "" {
		results, err = env.entries.List(cmd.Context())
	} else {
		results, err = env.ctrl.SetQuery(cmd.Context(), query)
	}
	if err != nil {
		exitErr("search", err)
	}
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	if results == nil {
		results = []model.Entry{}
	}

	out := cmd.OutOrStdout()
	render(out, results, func(w io.Writer) { writeEntryLines(w, results) })
	if formatFlag == "text" && query != "" {
		fmt.Fprintf(out, "%d result(s) for %q\n", len(results), query)
	}
}
