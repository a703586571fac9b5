package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rcliao/borno/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show database statistics",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

type statsView struct {
	*store.Stats
	Entries   int    `json:"entries"`
	Favorites int    `json:"favorites"`
	History   int    `json:"history"`
	Provider  string `json:"enrich_provider"`
}

func runStats(cmd *cobra.Command, args []string) {
	env := mustOpenApp(cmd)
	defer env.Close()
	ctx := cmd.Context()

	st, err := env.slots.Stats(ctx, env.dbPath)
	if err != nil {
		exitErr("stats", err)
	}
	entries, err := env.entries.List(ctx)
	if err != nil {
		exitErr("stats", err)
	}
	favs, err := env.favorites.List(ctx)
	if err != nil {
		exitErr("stats", err)
	}
	records, err := env.history.List(ctx)
	if err != nil {
		exitErr("stats", err)
	}

	v := statsView{
		Stats:     st,
		Entries:   len(entries),
		Favorites: len(favs),
		History:   len(records),
		Provider:  env.cfg.Enrich.Provider,
	}
	render(cmd.OutOrStdout(), v, func(w io.Writer) {
		fmt.Fprintf(w, "database:  %s (%d bytes)\n", st.DBPath, st.DBSizeBytes)
		fmt.Fprintf(w, "entries:   %d\nfavorites: %d\nhistory:   %d\nenrich:    %s\n",
			v.Entries, v.Favorites, v.History, v.Provider)
		for _, s := range st.Slots {
			fmt.Fprintf(w, "slot %-10s v%d  %d bytes  %s\n", s.Name, s.Version, s.Bytes, s.UpdatedAt)
		}
	})
}
