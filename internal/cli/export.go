package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export entries as JSON",
		Long:  "Export every entry as a JSON array, in the format read by import.",
		Run:   runExport,
	}

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	env := mustOpenApp(cmd)
	defer env.Close()

	entries, err := env.entries.List(cmd.Context())
	if err != nil {
		exitErr("export", err)
	}

	render(cmd.OutOrStdout(), entries, nil)
}
