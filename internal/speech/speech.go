// Package speech is the boundary to speech recognition and synthesis.
// Both directions are provided by external commands; without one configured
// the capability reports itself unavailable.
package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Recognizer turns one utterance into text.
type Recognizer interface {
	// Listen captures a single utterance in lang (e.g. "bn-BD") and returns
	// its transcript.
	Listen(ctx context.Context, lang string) (string, error)
}

// Speaker reads text aloud.
type Speaker interface {
	Speak(ctx context.Context, text, lang string) error
}

// ErrUnavailable is the sentinel every UnavailableError unwraps to.
var ErrUnavailable = errors.New("capability unavailable")

// UnavailableError reports that the runtime cannot provide speech input or
// output. It is informational: typing still works.
type UnavailableError struct {
	Capability string
	Reason     string
}

func (e *UnavailableError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s is not available", e.Capability)
	}
	return fmt.Sprintf("%s is not available: %s", e.Capability, e.Reason)
}

func (e *UnavailableError) Unwrap() error { return ErrUnavailable }

// Unavailable implements both interfaces by refusing.
type Unavailable struct{}

func (Unavailable) Listen(context.Context, string) (string, error) {
	return "", &UnavailableError{Capability: "speech input", Reason: "no stt_command configured"}
}

func (Unavailable) Speak(context.Context, string, string) error {
	return &UnavailableError{Capability: "speech output", Reason: "no tts_command configured"}
}

// Command runs an external program. The text to speak is written to its
// stdin; a transcript is read from its stdout. The language is passed in
// BORNO_SPEECH_LANG.
type Command struct {
	Argv []string
}

// ParseCommand splits a configured command line on whitespace.
func ParseCommand(line string) (Command, bool) {
	argv := strings.Fields(line)
	if len(argv) == 0 {
		return Command{}, false
	}
	return Command{Argv: argv}, true
}

func (c Command) cmd(ctx context.Context, lang string) (*exec.Cmd, error) {
	if len(c.Argv) == 0 {
		return nil, &UnavailableError{Capability: "speech", Reason: "empty command"}
	}
	path, err := exec.LookPath(c.Argv[0])
	if err != nil {
		return nil, &UnavailableError{Capability: "speech", Reason: err.Error()}
	}
	cmd := exec.CommandContext(ctx, path, c.Argv[1:]...)
	cmd.Env = append(os.Environ(), "BORNO_SPEECH_LANG="+lang)
	return cmd, nil
}

func (c Command) Listen(ctx context.Context, lang string) (string, error) {
	cmd, err := c.cmd(ctx, lang)
	if err != nil {
		return "", err
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("speech input: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(string(out)), nil
}

func (c Command) Speak(ctx context.Context, text, lang string) error {
	cmd, err := c.cmd(ctx, lang)
	if err != nil {
		return err
	}
	cmd.Stdin = strings.NewReader(text)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("speech output: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// NewRecognizer returns a Command recognizer for line, or Unavailable.
func NewRecognizer(line string) Recognizer {
	if c, ok := ParseCommand(line); ok {
		return c
	}
	return Unavailable{}
}

// NewSpeaker returns a Command speaker for line, or Unavailable.
func NewSpeaker(line string) Speaker {
	if c, ok := ParseCommand(line); ok {
		return c
	}
	return Unavailable{}
}

// SpeechLang maps an entry language to a speech locale.
func SpeechLang(lang string) string {
	switch lang {
	case "en":
		return "en-US"
	default:
		return "bn-BD"
	}
}
