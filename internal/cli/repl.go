// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// repl.go - The repl command: every line typed is transformed at once.
//
// Command: repl [--cipher C] [cipher flags]
//
// Lines starting with ':' change the settings:
//   :cipher NAME          switch cipher (settings reset to the config defaults)
//   :dir encrypt|decrypt  switch direction
//   :key K                Playfair / Vigenère keyword
//   :rails N              Rail Fence rails
//   :order 2,0,1          Rail Fence order (empty clears it)
//   :alphabet A [P]       Chaocipher disks
//   :trace on|off         print every step
//   :show                 print the settings
//   :help                 list these commands
//   :quit                 leave (also "quit", "exit", Ctrl+D)
//
// With stdin not a terminal the lines are read as a script, without prompts.

package cli

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/cipherlab/internal/cipher"
	"github.com/jeranaias/cipherlab/internal/config"
	"github.com/jeranaias/cipherlab/internal/engine"
	"github.com/jeranaias/cipherlab/internal/ui/components"
	"github.com/jeranaias/cipherlab/internal/ui/styles"
	"github.com/jeranaias/cipherlab/internal/util"
)

// =============================================================================
// SESSION
// =============================================================================

// Session is the REPL state: the request every text line runs with.
type Session struct {
	cfg     *config.Config
	Request engine.Request
	Trace   bool
}

// Reply is the result of one REPL line.
type Reply struct {
	// Outcome is set when the line was text to transform.
	Outcome *engine.Outcome
	// Message is the answer to a command.
	Message string
	Quit    bool
}

var replCommands = []string{":cipher", ":dir", ":key", ":rails", ":order", ":alphabet", ":trace", ":show", ":help", ":quit"}

// NewSession starts a session on cipher name, with settings from p and cfg.
func NewSession(cfg *config.Config, p *ArgParser, name string) (*Session, error) {
	req, err := buildRequest(cfg, p, name, cipher.Encrypt)
	if err != nil {
		return nil, err
	}
	return &Session{cfg: cfg, Request: req}, nil
}

// Prompt is the prompt for the next line, e.g. "playfair encrypt> ".
func (s *Session) Prompt() string {
	return s.Request.Cipher + " " + s.Request.Direction.String() + "> "
}

// Exec runs one line. Errors leave the session unchanged.
func (s *Session) Exec(line string) (Reply, error) {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return Reply{}, nil
	case strings.EqualFold(line, "quit"), strings.EqualFold(line, "exit"):
		return Reply{Quit: true}, nil
	case !strings.HasPrefix(line, ":"):
		req := s.Request
		req.Text = line
		out, err := engine.Run(req)
		if err != nil {
			return Reply{}, err
		}
		return Reply{Outcome: out}, nil
	}

	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case ":quit", ":q", ":exit":
		return Reply{Quit: true}, nil

	case ":help", ":h", ":?":
		return Reply{Message: "commands: " + strings.Join(replCommands, " ")}, nil

	case ":show":
		return Reply{Message: s.describe()}, nil

	case ":cipher", ":c":
		if arg == "" {
			return Reply{}, ErrMissingArgument("cipher", ":cipher playfair")
		}
		req, err := buildRequest(s.cfg, NewArgParser(nil), arg, s.Request.Direction)
		if err != nil {
			return Reply{}, err
		}
		s.Request = req
		return Reply{Message: s.describe()}, nil

	case ":dir", ":d":
		dir, err := cipher.ParseDirection(arg)
		if err != nil {
			return Reply{}, NewValidationError("direction", arg, "must be encrypt or decrypt", ":dir decrypt")
		}
		s.Request.Direction = dir
		return Reply{Message: s.describe()}, nil

	case ":key", ":k":
		if s.Request.Cipher != engine.Playfair && s.Request.Cipher != engine.Vigenere {
			return Reply{}, NewValidationError("key", arg, s.Request.Cipher+" takes no keyword", ":cipher vigenere")
		}
		s.Request.Key = arg
		return Reply{Message: s.describe()}, nil

	case ":rails", ":r":
		if s.Request.Cipher != engine.RailFence {
			return Reply{}, NewValidationError("rails", arg, s.Request.Cipher+" has no rails", ":cipher railfence")
		}
		n, err := strconv.Atoi(arg)
		if err != nil {
			return Reply{}, NewValidationError("rails", arg, "must be an integer", ":rails 3")
		}
		s.Request.Rails = n
		return Reply{Message: s.describe()}, nil

	case ":order", ":o":
		if s.Request.Cipher != engine.RailFence {
			return Reply{}, NewValidationError("order", arg, s.Request.Cipher+" has no rails", ":cipher railfence")
		}
		order, err := engine.ParseOrder(arg)
		if err != nil {
			return Reply{}, NewValidationError("order", arg, err.Error(), ":order 2,0,1")
		}
		s.Request.Order = order
		return Reply{Message: s.describe()}, nil

	case ":alphabet", ":a":
		if s.Request.Cipher != engine.Chaocipher {
			return Reply{}, NewValidationError("alphabet", arg, s.Request.Cipher+" has no disks", ":cipher chaocipher")
		}
		fields := strings.Fields(arg)
		if len(fields) == 0 || len(fields) > 2 {
			return Reply{}, NewValidationError("alphabet", arg, "expected one or two disks", ":alphabet HXUCZVAMDSLKPEFJRIGTWOBNYQ PTLNBQDEOYSFAVZKGJRIHWXUMC")
		}
		s.Request.Alphabet, s.Request.PlainAlphabet = fields[0], ""
		if len(fields) == 2 {
			s.Request.PlainAlphabet = fields[1]
		}
		return Reply{Message: s.describe()}, nil

	case ":trace", ":t":
		on, err := ParseBoolString(arg)
		if err != nil {
			return Reply{}, NewValidationError("trace", arg, "must be on or off", ":trace on")
		}
		s.Trace = on
		return Reply{Message: s.describe()}, nil

	default:
		return Reply{}, &NotFoundError{Resource: "command", ID: cmd, Hint: Suggest(cmd, replCommands)}
	}
}

// describe summarises the settings, e.g. "railfence decrypt rails=3 trace=off".
func (s *Session) describe() string {
	parts := []string{s.Request.Cipher, s.Request.Direction.String()}
	if info := keyInfo(s.Request); info != "" {
		parts = append(parts, info)
	}
	trace := "off"
	if s.Trace {
		trace = "on"
	}
	return strings.Join(append(parts, "trace="+trace), " ")
}

// complete offers command and cipher names.
func complete(line string) []string {
	var out []string
	if rest, ok := strings.CutPrefix(line, ":cipher "); ok {
		for _, n := range engine.AllNames() {
			if strings.HasPrefix(n, strings.ToLower(rest)) {
				out = append(out, ":cipher "+n)
			}
		}
		return out
	}
	if strings.HasPrefix(line, ":") {
		for _, c := range replCommands {
			if strings.HasPrefix(c, line) {
				out = append(out, c)
			}
		}
	}
	return out
}

// =============================================================================
// LINE INPUT
// =============================================================================

// lineReader reads one line per call and returns io.EOF when done.
type lineReader interface {
	ReadLine(prompt string) (string, error)
	Close()
}

// linerReader provides history and line editing on a terminal.
type linerReader struct {
	line        *liner.State
	historyFile string
}

func newLinerReader() *linerReader {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	line.SetCompleter(complete)

	dir, err := config.ConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	r := &linerReader{line: line, historyFile: filepath.Join(dir, "repl_history")}

	if f, err := os.Open(r.historyFile); err == nil {
		_, _ = r.line.ReadHistory(f)
		f.Close()
	}
	return r
}

func (r *linerReader) ReadLine(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", io.EOF
		}
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves the history owner-only and restores the terminal.
func (r *linerReader) Close() {
	var buf bytes.Buffer
	if _, err := r.line.WriteHistory(&buf); err == nil {
		_ = util.AtomicWriteFileWithDir(r.historyFile, buf.Bytes(), 0600, 0700)
	}
	r.line.Close()
}

// scanReader reads a script from a pipe or file.
type scanReader struct {
	sc *bufio.Scanner
}

func (r *scanReader) ReadLine(string) (string, error) {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.sc.Text(), nil
}

func (r *scanReader) Close() {}

// =============================================================================
// COMMAND
// =============================================================================

// HandleREPL handles "repl".
func HandleREPL(s Streams, args Args) error {
	p := NewArgParser(args.Raw)
	sess, err := NewSession(config.Global(), p, p.FlagOrDefault("cipher", engine.Names()[0]))
	if err != nil {
		return err
	}

	var r lineReader
	interactive := stdinIsTTY() && s.In == os.Stdin
	if interactive {
		r = newLinerReader()
		if !args.Quiet {
			fmt.Fprintln(s.Out, TitleStyle.Render("cipherlab repl"))
			fmt.Fprintln(s.Out, DimStyle.Render(sess.describe()+"  (:help for commands, :quit to leave)"))
		}
	} else {
		r = &scanReader{sc: bufio.NewScanner(s.In)}
	}
	defer r.Close()

	return runREPL(s, sess, r, interactive)
}

// runREPL reads lines until quit or end of input. Command errors are
// printed and the loop goes on.
func runREPL(s Streams, sess *Session, r lineReader, prompt bool) error {
	theme := newTheme()
	for {
		p := ""
		if prompt {
			p = sess.Prompt()
		}
		line, err := r.ReadLine(p)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		reply, err := sess.Exec(line)
		if err != nil {
			fmt.Fprintf(s.Err, "%s %v\n", ErrorStyle.Render("[ERROR]"), err)
			continue
		}
		switch {
		case reply.Quit:
			return nil
		case reply.Message != "":
			fmt.Fprintln(s.Out, DimStyle.Render(reply.Message))
		case reply.Outcome != nil:
			printReplOutcome(s, theme, sess.Trace, reply.Outcome)
		}
	}
}

func printReplOutcome(s Streams, theme *styles.Theme, trace bool, out *engine.Outcome) {
	if trace {
		view := components.NewTraceView(theme, out)
		view.SetWidth(GetTerminalWidth())
		fmt.Fprintln(s.Out, view.RenderAll())
		return
	}
	fmt.Fprintln(s.Out, OutputStyle.Render(out.Output))
	for _, f := range out.Fallbacks {
		fmt.Fprintln(s.Out, WarningStyle.Render("note: "+f.String()))
	}
}
