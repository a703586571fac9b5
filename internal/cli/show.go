package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rcliao/borno/internal/app"
	"github.com/rcliao/borno/internal/model"
)

func init() {
	show := &cobra.Command{
		Use:   "show <id|word>",
		Short: "Show an entry and record it in history",
		Args:  cobra.ExactArgs(1),
		Run:   runShow,
	}
	show.Flags().Bool("say", false, "Read the word aloud")

	fav := &cobra.Command{
		Use:   "fav <id|word>",
		Short: "Toggle an entry as favorite",
		Args:  cobra.ExactArgs(1),
		Run:   runFav,
	}

	favs := &cobra.Command{
		Use:   "favs",
		Short: "List favorite entries",
		Run:   runFavs,
	}

	history := &cobra.Command{
		Use:   "history",
		Short: "List recently viewed entries",
		Run:   runHistory,
	}
	history.Flags().Bool("clear", false, "Clear the history")

	topics := &cobra.Command{
		Use:   "topics [id]",
		Short: "List study topics, or search one",
		Args:  cobra.MaximumNArgs(1),
		Run:   runTopics,
	}

	RootCmd.AddCommand(show, fav, favs, history, topics)
}

type shownEntry struct {
	model.Entry
	Favorite bool `json:"favorite"`
}

func runShow(cmd *cobra.Command, args []string) {
	say, _ := cmd.Flags().GetBool("say")

	env := mustOpenApp(cmd)
	defer env.Close()
	ctx := cmd.Context()

	all, err := env.entries.List(ctx)
	if err != nil {
		exitErr("show", err)
	}
	found, err := resolveEntry(all, args[0])
	if err != nil {
		exitErr("show", err)
	}
	e, err := env.ctrl.Select(ctx, found.ID)
	if err != nil {
		exitErr("show", err)
	}
	fav, err := env.ctrl.IsFavorite(ctx, e.ID)
	if err != nil {
		exitErr("show", err)
	}

	render(cmd.OutOrStdout(), shownEntry{Entry: e, Favorite: fav}, func(w io.Writer) {
		writeEntry(w, e)
		if fav {
			fmt.Fprintln(w, "  ★ favorite")
		}
	})
	if say {
		env.ctrl.Speak(e.Word, e.Language)
	}
}

func runFav(cmd *cobra.Command, args []string) {
	env := mustOpenApp(cmd)
	defer env.Close()
	ctx := cmd.Context()

	all, err := env.entries.List(ctx)
	if err != nil {
		exitErr("fav", err)
	}
	e, err := resolveEntry(all, args[0])
	if err != nil {
		exitErr("fav", err)
	}
	on, err := env.ctrl.ToggleFavorite(ctx, e.ID)
	if err != nil {
		exitErr("fav", err)
	}

	v := map[string]any{"id": e.ID, "word": e.Word, "favorite": on}
	render(cmd.OutOrStdout(), v, func(w io.Writer) {
		if on {
			fmt.Fprintf(w, "added %s to favorites\n", e.Word)
		} else {
			fmt.Fprintf(w, "removed %s from favorites\n", e.Word)
		}
	})
}

func runFavs(cmd *cobra.Command, args []string) {
	env := mustOpenApp(cmd)
	defer env.Close()

	favs, err := env.ctrl.Favorites(cmd.Context())
	if err != nil {
		exitErr("favs", err)
	}
	render(cmd.OutOrStdout(), favs, func(w io.Writer) { writeEntryLines(w, favs) })
}

func runHistory(cmd *cobra.Command, args []string) {
	clearAll, _ := cmd.Flags().GetBool("clear")

	env := mustOpenApp(cmd)
	defer env.Close()
	ctx := cmd.Context()

	if clearAll {
		if err := env.ctrl.ClearHistory(ctx); err != nil {
			exitErr("clear history", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), `{"ok":true}`)
		return
	}

	items, err := env.ctrl.History(ctx)
	if err != nil {
		exitErr("history", err)
	}
	views := historyViews(items)
	render(cmd.OutOrStdout(), views, func(w io.Writer) {
		if len(views) == 0 {
			fmt.Fprintln(w, "(no history)")
		}
		for _, v := range views {
			fmt.Fprintf(w, "%s\t%s\t%s\n", v.Timestamp, v.ID, v.Word)
		}
	})
}

func runTopics(cmd *cobra.Command, args []string) {
	if len(args) == 0 {
		topics := app.Topics()
		render(cmd.OutOrStdout(), topics, func(w io.Writer) {
			for _, t := range topics {
				fmt.Fprintf(w, "%-11s %s (%s) → %s\n", t.ID, t.Title, t.Label, t.Query)
			}
		})
		return
	}

	env := mustOpenApp(cmd)
	defer env.Close()

	results, err := env.ctrl.ApplyTopic(cmd.Context(), args[0])
	if err != nil {
		exitErr("topic", err)
	}
	if results == nil {
		results = []model.Entry{}
	}
	render(cmd.OutOrStdout(), results, func(w io.Writer) { writeEntryLines(w, results) })
}
