package cli

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/rcliao/borno/internal/app"
	"github.com/rcliao/borno/internal/model"
)

func init() {
	admin := &cobra.Command{
		Use:   "admin",
		Short: "Manage dictionary entries",
	}

	list := &cobra.Command{
		Use:   "list [filter]",
		Short: "List entries, optionally filtered by word",
		Args:  cobra.MaximumNArgs(1),
		Run:   runAdminList,
	}

	newCmd := &cobra.Command{
		Use:   "new <word>",
		Short: "Create an entry",
		Long: `Create an entry for word. Fields are set with --set field=value and
list fields with --list field=a|b|c. With --enrich, fields left empty are
filled by the configured enrichment provider before saving.`,
		Args: cobra.ExactArgs(1),
		Run:  runAdminNew,
	}
	addEditFlags(newCmd)

	edit := &cobra.Command{
		Use:   "edit <id|word>",
		Short: "Edit an entry",
		Args:  cobra.ExactArgs(1),
		Run:   runAdminEdit,
	}
	addEditFlags(edit)

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an entry",
		Args:  cobra.ExactArgs(1),
		Run:   runAdminRm,
	}

	generate := &cobra.Command{
		Use:   "generate <word>",
		Short: "Generate an entry with the enrichment provider",
		Args:  cobra.ExactArgs(1),
		Run:   runAdminGenerate,
	}
	generate.Flags().String("lang", "", "Language hint: bn or en (default: detected)")
	generate.Flags().Bool("save", false, "Save the generated entry")

	admin.AddCommand(list, newCmd, edit, rm, generate)
	RootCmd.AddCommand(admin)
}

func addEditFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayP("set", "s", nil, "Set a field: field=value (repeatable)")
	cmd.Flags().StringArray("list", nil, "Set a list field: field=a|b|c (repeatable)")
	cmd.Flags().Bool("enrich", false, "Fill empty fields with the enrichment provider")
	cmd.Flags().Bool("overwrite", false, "With --enrich, replace fields that are already set")
	cmd.Flags().String("lang", "", "Language of the entry: bn or en")
}

func runAdminList(cmd *cobra.Command, args []string) {
	filter := ""
	if len(args) == 1 {
		filter = args[0]
	}

	env := mustOpenApp(cmd)
	defer env.Close()

	entries, err := env.ctrl.OpenAdmin(cmd.Context(), filter)
	if err != nil {
		exitErr("admin list", err)
	}
	if entries == nil {
		entries = []model.Entry{}
	}
	render(cmd.OutOrStdout(), entries, func(w io.Writer) { writeEntryLines(w, entries) })
}

func runAdminNew(cmd *cobra.Command, args []string) {
	env := mustOpenApp(cmd)
	defer env.Close()

	if _, err := env.ctrl.OpenAdmin(cmd.Context(), ""); err != nil {
		exitErr("admin new", err)
	}
	env.ctrl.NewDraft(args[0])
	saveEdited(cmd, env.ctrl, "admin new")
}

func runAdminEdit(cmd *cobra.Command, args []string) {
	env := mustOpenApp(cmd)
	defer env.Close()
	ctx := cmd.Context()

	all, err := env.ctrl.OpenAdmin(ctx, "")
	if err != nil {
		exitErr("admin edit", err)
	}
	e, err := resolveEntry(all, args[0])
	if err != nil {
		exitErr("admin edit", err)
	}
	if _, err := env.ctrl.EditDraft(ctx, e.ID); err != nil {
		exitErr("admin edit", err)
	}
	saveEdited(cmd, env.ctrl, "admin edit")
}

// saveEdited applies the edit flags to the open draft, optionally enriches
// it, and saves it.
func saveEdited(cmd *cobra.Command, ctrl *app.Controller, op string) {
	sets, _ := cmd.Flags().GetStringArray("set")
	lists, _ := cmd.Flags().GetStringArray("list")
	doEnrich, _ := cmd.Flags().GetBool("enrich")
	overwrite, _ := cmd.Flags().GetBool("overwrite")
	lang, _ := cmd.Flags().GetString("lang")

	if err := applyEdits(ctrl, sets, lists, lang); err != nil {
		exitErr(op, err)
	}

	if doEnrich {
		o := <-ctrl.Enrich(cmd.Context(), app.EnrichOptions{Hint: model.Language(lang), Overwrite: overwrite})
		writeOutcome(os.Stderr, o)
		if o.Err != nil {
			exitErr(op, o.Err)
		}
	}

	saved, err := ctrl.SaveDraft(cmd.Context())
	if err != nil {
		exitErr(op, err)
	}
	render(cmd.OutOrStdout(), saved, func(w io.Writer) { writeEntry(w, saved) })
}

func applyEdits(ctrl *app.Controller, sets, lists []string, lang string) error {
	fields, err := parseAssignments(sets)
	if err != nil {
		return err
	}
	listFields, err := parseAssignments(lists)
	if err != nil {
		return err
	}
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		if err := ctrl.SetField(k, fields[k]); err != nil {
			return err
		}
	}
	for _, k := range slices.Sorted(maps.Keys(listFields)) {
		if err := ctrl.SetList(k, splitList(listFields[k])); err != nil {
			return err
		}
	}
	if lang != "" {
		return ctrl.SetLanguage(model.Language(lang))
	}
	return nil
}

func runAdminRm(cmd *cobra.Command, args []string) {
	env := mustOpenApp(cmd)
	defer env.Close()

	if err := env.ctrl.DeleteEntry(cmd.Context(), args[0]); err != nil {
		exitErr("admin rm", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"deleted":%q}`+"\n", args[0])
}

func runAdminGenerate(cmd *cobra.Command, args []string) {
	lang, _ := cmd.Flags().GetString("lang")
	save, _ := cmd.Flags().GetBool("save")

	env := mustOpenApp(cmd)
	defer env.Close()
	ctx := cmd.Context()

	if !save {
		e, err := env.gen.Generate(ctx, args[0], model.Language(lang))
		if err != nil {
			exitErr("generate", err)
		}
		render(cmd.OutOrStdout(), e, func(w io.Writer) { writeEntry(w, e) })
		return
	}

	if _, err := env.ctrl.OpenAdmin(ctx, ""); err != nil {
		exitErr("generate", err)
	}
	env.ctrl.NewDraft(args[0])
	o := <-env.ctrl.Enrich(ctx, app.EnrichOptions{Hint: model.Language(lang)})
	if o.Err != nil {
		exitErr("generate", o.Err)
	}
	saved, err := env.ctrl.SaveDraft(ctx)
	if err != nil {
		exitErr("generate", err)
	}
	render(cmd.OutOrStdout(), saved, func(w io.Writer) { writeEntry(w, saved) })
}
