package main

import (
	"context"
	"flag"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jcorbin/gocat/internal/fileinput"
	"github.com/jcorbin/gocat/internal/logio"
)

func main() {
	ctx := context.Background()
	log := logio.New(os.Stderr)

	var (
		evalStr    string
		configPath string
		teePath    string
		timeout    time.Duration
		trace      bool
		depthLimit int
		stepLimit  int
		each       bool
		quiet      bool
	)
	flag.StringVar(&evalStr, "e", "", "evaluate the given program and exit")
	flag.StringVar(&configPath, "config", "", "config file; defaults to the nearest "+configName)
	flag.StringVar(&teePath, "tee", "", "copy output into the given file")
	flag.DurationVar(&timeout, "timeout", 0, "specify a time limit for each evaluation")
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.IntVar(&depthLimit, "depth", 0, "limit call and quotation nesting")
	flag.IntVar(&stepLimit, "steps", 0, "limit evaluation steps")
	flag.BoolVar(&each, "each", false, "evaluate each file argument as an independent program")
	flag.BoolVar(&quiet, "q", false, "do not print the REPL banner")
	flag.Parse()

	cfg, err := loadConfig(configPath)
	if err != nil {
		log.ErrorIf(err)
		os.Exit(log.ExitCode())
	}

	opts := []Option{WithOutput(os.Stdout)}
	if cfg != nil {
		opts = append(opts, cfg.Options())
	}
	if teePath != "" {
		f, err := os.Create(teePath)
		if err != nil {
			log.ErrorIf(err)
			os.Exit(log.ExitCode())
		}
		defer f.Close()
		opts = append(opts, WithTee(f))
	}
	if trace {
		opts = append(opts, WithLogf(log.Leveledf("TRACE")))
	}
	if depthLimit != 0 {
		opts = append(opts, WithDepthLimit(depthLimit))
	}
	if stepLimit != 0 {
		opts = append(opts, WithStepLimit(stepLimit))
	}
	if timeout != 0 {
		opts = append(opts, WithTimeout(timeout))
	}

	interactive := evalStr == "" && flag.NArg() == 0 && isTerminal(os.Stdin)
	if interactive {
		opts = append(opts, WithPersistentStack(true))
	}
	sess := New(opts...)

	if cfg != nil {
		if err := loadPrelude(ctx, sess, cfg); err != nil {
			log.ErrorIf(err)
			os.Exit(log.ExitCode())
		}
		sess.Save()
	}

	switch {
	case interactive:
		runREPL(ctx, sess, log, quiet)

	case each:
		log.ErrorIf(runEach(ctx, sess, sess.out, flag.Args()...))
		log.ErrorIf(sess.out.Flush())

	default:
		var inputs []io.Reader
		for _, name := range flag.Args() {
			f, err := os.Open(name)
			if err != nil {
				log.ErrorIf(err)
				os.Exit(log.ExitCode())
			}
			inputs = append(inputs, f)
		}
		if evalStr != "" {
			inputs = append(inputs, fileinput.Named("<-e>", strings.NewReader(evalStr)))
		}
		if len(inputs) == 0 {
			inputs = append(inputs, fileinput.Named("<stdin>", os.Stdin))
		}
		stack, err := sess.Run(ctx, inputs...)
		if err == nil {
			err = sess.Show(stack)
		}
		log.ErrorIf(err)
	}

	os.Exit(log.ExitCode())
}

func loadConfig(path string) (*Config, error) {
	if path != "" {
		return LoadConfig(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return FindConfig(wd)
}

func loadPrelude(ctx context.Context, sess *Session, cfg *Config) error {
	if err := sess.Define(cfg.Words); err != nil {
		return err
	}
	var inputs []io.Reader
	for _, path := range cfg.PreludePaths() {
		f, err := os.Open(path)
		if err != nil {
			for _, r := range inputs {
				r.(io.Closer).Close()
			}
			return err
		}
		inputs = append(inputs, f)
	}
	if len(inputs) == 0 {
		return nil
	}
	_, err := sess.Run(ctx, inputs...)
	return err
}

// isTerminal reports whether f is a character device, like an interactive tty.
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
