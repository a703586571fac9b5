package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/borno/internal/model"
	"github.com/rcliao/borno/internal/speech"
)

func init() {
	listen := &cobra.Command{
		Use:   "listen",
		Short: "Search by voice",
		Long:  "Capture one utterance with the configured stt_command and search for it.",
		Run:   runListen,
	}

	say := &cobra.Command{
		Use:   "say <text>",
		Short: "Read text aloud",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSay,
	}
	say.Flags().String("lang", "", "Language of the text: bn or en (default: detected)")

	RootCmd.AddCommand(listen, say)
}

func runListen(cmd *cobra.Command, args []string) {
	env := mustOpenApp(cmd)
	defer env.Close()

	text, results, err := env.ctrl.Listen(cmd.Context())
	if errors.Is(err, speech.ErrUnavailable) {
		fmt.Fprintf(os.Stderr, "info: %v\n", err)
		return
	}
	if err != nil {
		exitErr("listen", err)
	}
	if results == nil {
		results = []model.Entry{}
	}

	v := map[string]any{"transcript": text, "results": results}
	render(cmd.OutOrStdout(), v, func(w io.Writer) {
		fmt.Fprintf(w, "heard: %s\n", text)
		writeEntryLines(w, results)
	})
}

func runSay(cmd *cobra.Command, args []string) {
	langFlag, _ := cmd.Flags().GetString("lang")
	text := strings.Join(args, " ")

	lang := model.Language(langFlag)
	if !model.ValidLanguages[lang] {
		lang = model.DetectLanguage(text)
	}

	env := mustOpenApp(cmd)
	defer env.Close()

	// Speak runs in the background; Close waits for it.
	env.ctrl.Speak(text, lang)
}
