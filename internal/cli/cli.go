// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command-line parsing and the top-level commands for cipherlab.

package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdHelp Command = iota
	CmdList
	CmdEncrypt
	CmdDecrypt
	CmdROT47
	CmdPlay
	CmdExplain
	CmdREPL
	CmdCrack
	CmdConfig
	CmdVersion
	CmdUnknown
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	JSON    bool // Output in JSON format

	// Name is the command word as typed, kept for error messages.
	Name string

	// Raw holds the arguments after the command word, global flags removed.
	Raw []string
}

// Streams are the standard streams a command reads and writes.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// DefaultStreams returns the process's standard streams.
func DefaultStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

const usageText = `cipherlab - classical ciphers, step by step

Encrypts and decrypts with Chaocipher, Rail Fence, Playfair, Vigenère and
ROT47, and shows every step of the transformation.

Usage:
  cipherlab list                                   List ciphers
  cipherlab encrypt <cipher> <text...> [flags]     Encrypt and print
  cipherlab decrypt <cipher> <text...> [flags]     Decrypt and print
  cipherlab rot47 <text...>                        Transform (self-inverse)
  cipherlab play <cipher> <encrypt|decrypt> <text...> [flags]
                                                   Step through a trace
  cipherlab explain <cipher>                       How a cipher works
  cipherlab repl [--cipher C]                      Live transform prompt
  cipherlab crack substitution <text...> [flags]   Break a substitution
  cipherlab crack permutation <text...> [flags]    Break a transposition
  cipherlab config [show|path|init|get|set|keys]   Configuration
  cipherlab version | help

Cipher flags:
  --key K              Playfair / Vigenère keyword
  --alphabet A         Chaocipher left disk
  --plain-alphabet P   Chaocipher right disk (default: --alphabet)
  --rails N            Rail Fence rail count
  --order 2,0,1        Rail Fence reading order
  --file F             Read the text from F ("-" for stdin)

Output flags:
  --trace              Print every step
  --format FMT         txt, json, md or html
  --output DIR         Write an export file to DIR instead of stdout
  --open               Open the export file afterwards

Crack flags:
  --seed N             Random seed
  --quadgrams F        "NGRAM COUNT" file for scoring
  --min N / --max N    Key length range (permutation)
  --top N              Candidates to print (permutation, default 5)

Global flags:
  --json               Output in JSON format
  -v, --verbose        Log progress to stderr
  -q, --quiet          Print only the result

Ciphers: chaocipher (chao), railfence (rail, rf), playfair (pf),
         vigenere (vig), rot47 (rot)

Examples:
  cipherlab encrypt playfair --key MONARQUIA hello
  cipherlab decrypt vigenere --key CHAVE RHLVZTH
  cipherlab encrypt railfence --rails 3 --trace THISISATEST
  cipherlab play chao encrypt WELLDONEISBETTERTHANWELLSAID
  cipherlab rot47 "Hello, World!"

Version: %s
`

// PrintUsage writes the usage text.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, Version)
}

// PrintVersion writes version information.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "cipherlab version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
}

// Parse parses os.Args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses argv (without the program name) into a command and its
// arguments. No arguments means help.
func ParseArgs(argv []string) (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdHelp, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	parsedArgs.Name = remaining[0]
	parsedArgs.Raw = remaining[1:]

	switch cmd {
	case "list", "ls", "ciphers":
		return CmdList, parsedArgs
	case "encrypt", "enc":
		return CmdEncrypt, parsedArgs
	case "decrypt", "dec":
		return CmdDecrypt, parsedArgs
	case "rot47":
		return CmdROT47, parsedArgs
	case "play":
		return CmdPlay, parsedArgs
	case "explain":
		return CmdExplain, parsedArgs
	case "repl":
		return CmdREPL, parsedArgs
	case "crack":
		return CmdCrack, parsedArgs
	case "config":
		return CmdConfig, parsedArgs
	case "version", "--version", "-V":
		return CmdVersion, parsedArgs
	case "help", "--help", "-h":
		return CmdHelp, parsedArgs
	default:
		return CmdUnknown, parsedArgs
	}
}

// parseGlobalFlags extracts global flags up to "--" and returns the rest.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	for i, arg := range args {
		if arg == "--" {
			remaining = append(remaining, args[i:]...)
			break
		}
		switch arg {
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--json":
			parsedArgs.JSON = true
		default:
			remaining = append(remaining, arg)
		}
	}

	return remaining, parsedArgs
}

// =============================================================================
// VERSION / HELP / UNKNOWN
// =============================================================================

// HandleVersion handles the "version" command with JSON output support.
func HandleVersion(s Streams, args Args) error {
	if args.JSON {
		return NewJSONResponse("version", VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		}).Print(s.Out)
	}
	PrintVersion(s.Out)
	return nil
}

// HandleHelp handles the "help" command.
func HandleHelp(s Streams, _ Args) error {
	PrintUsage(s.Out)
	return nil
}

// HandleUnknown reports an unknown command with the closest match.
func HandleUnknown(_ Streams, args Args) error {
	return &NotFoundError{
		Resource: "command",
		ID:       args.Name,
		Hint:     SuggestCommand(args.Name),
	}
}

// Dispatch runs cmd. It is the single entry point main uses.
func Dispatch(s Streams, cmd Command, args Args) error {
	switch cmd {
	case CmdList:
		return HandleList(s, args)
	case CmdEncrypt, CmdDecrypt, CmdROT47:
		return HandleRun(s, cmd, args)
	case CmdPlay:
		return HandlePlay(s, args)
	case CmdExplain:
		return HandleExplain(s, args)
	case CmdREPL:
		return HandleREPL(s, args)
	case CmdCrack:
		return HandleCrack(s, args)
	case CmdConfig:
		return HandleConfig(s, args)
	case CmdVersion:
		return HandleVersion(s, args)
	case CmdUnknown:
		return HandleUnknown(s, args)
	default:
		return HandleHelp(s, args)
	}
}
