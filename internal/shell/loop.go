package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/jbweber/virtsh/internal/completion"
)

// Prompt is printed before each line of input.
const Prompt = "# "

var _ readline.AutoCompleter = (*completion.Completer)(nil)

// lineReader is the part of *readline.Instance the loop uses.
type lineReader interface {
	Readline() (string, error)
	Close() error
}

// Run reads and executes lines until quit, exit, or end of input.
// History is loaded from and saved to the configured history file.
func (s *Shell) Run(ctx context.Context) error {
	cfg := &readline.Config{
		Prompt:          Prompt,
		HistoryFile:     s.historyFile,
		HistoryLimit:    s.historyLimit,
		AutoComplete:    s.completer,
		InterruptPrompt: "^C",
	}
	if s.stdin != nil {
		cfg.Stdin = s.stdin
		cfg.Stdout = s.stdout
		cfg.Stderr = s.stdout
		cfg.FuncIsTerminal = func() bool { return false }
		cfg.FuncMakeRaw = func() error { return nil }
		cfg.FuncExitRaw = func() error { return nil }
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize line editor: %w", err)
	}
	defer func() {
		_ = rl.Close()
	}()

	return s.loop(ctx, rl)
}

func (s *Shell) loop(ctx context.Context, rl lineReader) error {
	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				_, _ = fmt.Fprintln(s.out)
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		if s.Execute(ctx, line) {
			return nil
		}
		if strings.TrimSpace(line) == "quit" {
			return nil
		}
	}
}
