package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/sable-lang/sable/format"
	"github.com/sable-lang/sable/lang/parser"
)

const (
	replHistoryFile = ".sable_history"
	promptMain      = "sable> "
	promptCont      = "   ... "
)

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactively parse statements and declarations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl()
		},
	}
}

func runRepl() error {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, replHistoryFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		code, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			return nil
		}

		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit", ":q":
				return nil
			default:
				fmt.Println("unknown command. Type :quit to exit.")
			}
			continue
		}

		printParsed(code)
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}
}

// readByParseProbe accumulates lines until the buffer parses to completion
// or fails somewhere other than end of input.
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.TrimSpace(src) == "" || strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if !probeIncomplete(src) {
			return src, true
		}
	}
}

// probeIncomplete reports whether the buffer fails only because more input
// is needed: a parse error at EOF, or an unterminated literal or comment.
func probeIncomplete(src string) bool {
	_, stmtErr := parser.NewParser("repl", src).ParseStmt()
	if stmtErr == nil {
		return false
	}
	_, declErr := parser.NewParser("repl", src).ParseDecl()
	if declErr == nil {
		return false
	}
	return errAtEOF(stmtErr) || errAtEOF(declErr)
}

func errAtEOF(err error) bool {
	var parseErr *parser.ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Got.Kind == parser.TokenEOF
	}
	var lexErr *parser.LexError
	if errors.As(err, &lexErr) {
		switch lexErr.Kind {
		case parser.LexUnterminatedString, parser.LexUnterminatedChar, parser.LexUnterminatedComment:
			return true
		}
	}
	return false
}

func printParsed(src string) {
	if stmt, err := parser.NewParser("repl", src).ParseStmt(); err == nil {
		fmt.Println(format.Stmt(stmt, 0))
		return
	}
	decl, err := parser.NewParser("repl", src).ParseDecl()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return
	}
	fmt.Println(format.Decl(decl, 0))
}
