package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/rcliao/borno/internal/app"
	"github.com/rcliao/borno/internal/model"
	"github.com/rcliao/borno/internal/speech"
)

func init() {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive dictionary session",
		Long: `Start an interactive session. Any line not starting with ":" is a
search query; an empty line clears it. Type :help for commands.`,
		Run: runShell,
	}

	RootCmd.AddCommand(cmd)
}

func runShell(cmd *cobra.Command, args []string) {
	env := mustOpenApp(cmd)
	defer env.Close()

	if err := NewShell(env.ctrl, os.Stdin, cmd.OutOrStdout()).Run(cmd.Context()); err != nil {
		exitErr("shell", err)
	}
}

const shellHelp = `  <text>               search
  :open <n|id>         show result n (or entry id)
  :back                back to home
  :fav [n|id]          toggle favorite (default: shown entry)
  :favs                list favorites
  :history             recently viewed
  :clear-history       clear history
  :topics              study topics
  :topic <id>          search a topic
  :listen              search by voice
  :say [text]          read text (default: shown word) aloud
  :admin [filter]      list entries for editing
  :new <word>          start a new entry
  :edit <n|id>         edit an entry
  :set <field> <text>  set a field of the draft
  :list <field> a | b  set a list field of the draft
  :lang bn|en          set the draft language
  :enrich [overwrite]  fill the draft with the enrichment provider
  :draft               show the draft
  :save                save the draft
  :cancel              discard the draft
  :rm <n|id>           delete an entry
  :quit                leave
`

// Shell is a line-oriented front end over a Controller.
type Shell struct {
	ctrl *app.Controller
	in   io.Reader

	mu   sync.Mutex // guards out
	out  io.Writer
	last []model.Entry
	wg   sync.WaitGroup
}

// NewShell returns a Shell reading commands from in.
func NewShell(ctrl *app.Controller, in io.Reader, out io.Writer) *Shell {
	return &Shell{ctrl: ctrl, in: in, out: out}
}

func (s *Shell) printf(format string, a ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, format, a...)
}

func (s *Shell) write(fn func(w io.Writer)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.out)
}

func (s *Shell) prompt() {
	st := s.ctrl.State()
	switch st.View {
	case app.ViewHome:
		s.printf("borno> ")
	default:
		s.printf("borno(%s)> ", st.View)
	}
}

// Run reads commands until EOF or :quit. Pending enrichments are awaited
// before it returns.
func (s *Shell) Run(ctx context.Context) error {
	defer s.wg.Wait()

	sc := bufio.NewScanner(s.in)
	s.prompt()
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == ":quit" || line == ":q" {
			return nil
		}
		if err := s.exec(ctx, line); err != nil {
			s.report(err)
		}
		s.prompt()
	}
	s.printf("\n")
	return sc.Err()
}

func (s *Shell) report(err error) {
	if errors.Is(err, speech.ErrUnavailable) {
		s.printf("info: %v\n", err)
		return
	}
	s.printf("error: %v\n", err)
}

func (s *Shell) exec(ctx context.Context, line string) error {
	if !strings.HasPrefix(line, ":") {
		results, err := s.ctrl.SetQuery(ctx, line)
		if err != nil {
			return err
		}
		if line != "" {
			s.showList(results)
		}
		return nil
	}

	name, rest, _ := strings.Cut(line[1:], " ")
	rest = strings.TrimSpace(rest)

	switch name {
	case "help", "h":
		s.printf("%s", shellHelp)
	case "open":
		e, err := s.resolve(ctx, rest)
		if err != nil {
			return err
		}
		e, err = s.ctrl.Select(ctx, e.ID)
		if err != nil {
			return err
		}
		s.write(func(w io.Writer) { writeEntry(w, e) })
	case "back":
		s.ctrl.Back()
	case "fav":
		return s.toggleFavorite(ctx, rest)
	case "favs":
		favs, err := s.ctrl.Favorites(ctx)
		if err != nil {
			return err
		}
		s.showList(favs)
	case "history":
		items, err := s.ctrl.History(ctx)
		if err != nil {
			return err
		}
		entries := make([]model.Entry, len(items))
		for i, it := range items {
			entries[i] = it.Entry
		}
		s.showList(entries)
	case "clear-history":
		return s.ctrl.ClearHistory(ctx)
	case "topics":
		for _, t := range app.Topics() {
			s.printf("  %-11s %s (%s)\n", t.ID, t.Title, t.Label)
		}
	case "topic":
		results, err := s.ctrl.ApplyTopic(ctx, rest)
		if err != nil {
			return err
		}
		s.showList(results)
	case "listen":
		text, results, err := s.ctrl.Listen(ctx)
		if err != nil {
			return err
		}
		s.printf("heard: %s\n", text)
		s.showList(results)
	case "say":
		return s.say(rest)
	case "admin":
		entries, err := s.ctrl.OpenAdmin(ctx, rest)
		if err != nil {
			return err
		}
		s.showList(entries)
	case "new":
		if rest == "" {
			return errors.New("usage: :new <word>")
		}
		s.ctrl.NewDraft(rest)
	case "edit":
		e, err := s.resolve(ctx, rest)
		if err != nil {
			return err
		}
		_, err = s.ctrl.EditDraft(ctx, e.ID)
		return err
	case "set":
		field, value, _ := strings.Cut(rest, " ")
		return s.ctrl.SetField(field, strings.TrimSpace(value))
	case "list":
		field, value, _ := strings.Cut(rest, " ")
		return s.ctrl.SetList(field, splitList(value))
	case "lang":
		return s.ctrl.SetLanguage(model.Language(rest))
	case "enrich":
		s.enrich(ctx, rest == "overwrite")
	case "draft":
		d, ok := s.ctrl.Draft()
		if !ok {
			return app.ErrNoDraft
		}
		s.write(func(w io.Writer) { writeEntry(w, d) })
	case "save":
		saved, err := s.ctrl.SaveDraft(ctx)
		if err != nil {
			return err
		}
		s.printf("saved %s (%s)\n", saved.Word, saved.ID)
	case "cancel":
		s.ctrl.CancelDraft()
	case "rm":
		e, err := s.resolve(ctx, rest)
		if err != nil {
			return err
		}
		if err := s.ctrl.DeleteEntry(ctx, e.ID); err != nil {
			return err
		}
		s.printf("deleted %s\n", e.Word)
	default:
		return fmt.Errorf("unknown command :%s (try :help)", name)
	}
	return nil
}

func (s *Shell) showList(entries []model.Entry) {
	s.last = entries
	s.write(func(w io.Writer) {
		if len(entries) == 0 {
			fmt.Fprintln(w, "(no entries)")
			return
		}
		for i, e := range entries {
			fmt.Fprintf(w, "%2d. %s  %s\n", i+1, e.Word, e.Translation)
		}
	})
}

// resolve maps a list index from the last listing, or an id, to an entry.
func (s *Shell) resolve(ctx context.Context, arg string) (model.Entry, error) {
	if arg == "" {
		if cur := s.ctrl.State().Current; cur != nil {
			return *cur, nil
		}
		return model.Entry{}, errors.New("no entry selected")
	}
	if n, err := strconv.Atoi(arg); err == nil && n >= 1 && n <= len(s.last) {
		return s.last[n-1], nil
	}
	entries, err := s.ctrl.Entries(ctx)
	if err != nil {
		return model.Entry{}, err
	}
	return resolveEntry(entries, arg)
}

func (s *Shell) toggleFavorite(ctx context.Context, arg string) error {
	e, err := s.resolve(ctx, arg)
	if err != nil {
		return err
	}
	on, err := s.ctrl.ToggleFavorite(ctx, e.ID)
	if err != nil {
		return err
	}
	if on {
		s.printf("★ %s\n", e.Word)
	} else {
		s.printf("☆ %s\n", e.Word)
	}
	return nil
}

func (s *Shell) say(text string) error {
	lang := model.DetectLanguage(text)
	if text == "" {
		cur := s.ctrl.State().Current
		if cur == nil {
			return errors.New("nothing to say")
		}
		text, lang = cur.Word, cur.Language
	}
	s.ctrl.Speak(text, lang)
	return nil
}

func (s *Shell) enrich(ctx context.Context, overwrite bool) {
	d, ok := s.ctrl.Draft()
	if !ok {
		s.report(app.ErrNoDraft)
		return
	}
	s.printf("enriching %q...\n", d.Word)
	ch := s.ctrl.Enrich(ctx, app.EnrichOptions{Overwrite: overwrite})
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		o := <-ch
		s.write(func(w io.Writer) { writeOutcome(w, o) })
	}()
}
