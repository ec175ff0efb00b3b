package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/jcorbin/gocat/internal/fileinput"
	"github.com/jcorbin/gocat/internal/logio"
	"github.com/jcorbin/gocat/internal/parse"
)

const (
	historyFile = ".gocat_history"
	promptMain  = "cat> "
	promptCont  = "...  "
	banner      = "gocat REPL; Ctrl+D to exit, :help for commands."
	helpText    = `REPL commands:
  :help     show this help
  :words    list defined words
  :dump     dump user definitions and the stack
  :clear    drop the stack
  :reset    drop the stack and all definitions made in the REPL
  :quit     exit the REPL
`
)

func runREPL(ctx context.Context, sess *Session, log *logio.Logger, quiet bool) {
	if !quiet {
		fmt.Println(banner)
	}

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for lineNo := 1; ; lineNo++ {
		code, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			return
		}
		if strings.TrimSpace(code) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))

		if cmd, isCmd := replCommandName(code); isCmd {
			quit, err := runCommand(sess, cmd)
			log.ErrorIf(err)
			if quit {
				return
			}
			continue
		}

		name := fmt.Sprintf("<repl %v>", lineNo)
		if _, err := sess.Run(ctx, fileinput.Named(name, strings.NewReader(code))); err != nil {
			log.Printf("ERROR", "%v", err)
			continue
		}
		log.ErrorIf(sess.Show(sess.Stack()))
	}
}

// readByParseProbe reads lines until they form a complete program, or until
// they fail to parse for some other reason than ending too soon.
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
		if errors.Is(err, liner.ErrPromptAborted) {
			b.Reset()
			continue
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if _, isCmd := replCommandName(src); isCmd {
			return src, true
		}
		var perr parse.Error
		if _, err := parse.String(src); errors.As(err, &perr) && perr.Incomplete {
			continue
		}
		return src, true
	}
}

// replCommandName recognizes ":name" lines; ": name ..." starts a definition.
func replCommandName(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if len(line) < 2 || line[0] != ':' || strings.ContainsAny(line[1:2], " \t") {
		return "", false
	}
	return strings.ToLower(line[1:]), true
}

// runCommand runs a REPL command, writing to the session's output.
func runCommand(sess *Session, cmd string) (quit bool, err error) {
	quit = replCommand(sess, cmd, sess.out)
	return quit, sess.out.Flush()
}

func replCommand(sess *Session, cmd string, out io.Writer) (quit bool) {
	switch cmd {
	case "quit", "exit":
		return true
	case "help":
		fmt.Fprint(out, helpText)
	case "words":
		dumper{sess: sess, out: out}.dumpWords()
	case "dump":
		dumper{sess: sess, out: out}.dump()
	case "clear":
		sess.Clear()
	case "reset":
		sess.Reset()
	default:
		fmt.Fprintf(out, "unknown command :%v; type :help for a list\n", cmd)
	}
	return false
}
