package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/stylekit/internal/family"
	"github.com/alexisbeaulieu97/stylekit/internal/logger"
	"github.com/alexisbeaulieu97/stylekit/internal/settings"
)

// appContext bundles the settings and logger created before any subcommand runs.
type appContext struct {
	settings settings.Settings
	log      *logger.Logger
}

func (a *appContext) init(cmd *cobra.Command, flags *rootFlags) error {
	s, err := settings.Load(flags.configPath)
	if err != nil {
		return newCommandError("load settings", "reading stylekit settings", err, "Fix the settings file or unset STYLEKIT_* overrides, then retry.")
	}

	level := s.LogLevel
	if flags.verbose {
		level = "debug"
	}

	log, err := logger.New(logger.Options{
		Level:         level,
		HumanReadable: isTerminal(cmd.ErrOrStderr()),
		Writer:        cmd.ErrOrStderr(),
	})
	if err != nil {
		return newCommandError("create logger", fmt.Sprintf("log level %q", level), err, "Use one of trace, debug, info, warn or error.")
	}

	a.settings = s
	a.log = log
	if s.File != "" {
		log.WithFields(map[string]any{"file": s.File}).Debug("settings loaded")
	}
	return nil
}

// logger returns the command logger, a disabled one before init ran.
func (a *appContext) logger(component string) *logger.Logger {
	if a.log == nil {
		return logger.Nop()
	}
	return a.log.WithComponent(component)
}

// loadLibrary parses, validates and builds the family document at path.
func (a *appContext) loadLibrary(path string) (*family.Library, error) {
	fam, err := family.Load(path)
	if err != nil {
		return nil, err
	}
	return family.Build(fam, family.Options{Logger: a.logger("family").Zerolog()})
}

func isTerminal(w io.Writer) bool {
	if file, ok := w.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}

func newCommandError(operation, context string, cause error, suggestion string) error {
	return &commandError{operation: operation, context: context, cause: cause, suggestion: suggestion}
}

type commandError struct {
	operation  string
	context    string
	cause      error
	suggestion string
}

func (e *commandError) Error() string {
	return fmt.Sprintf("Failed to %s: %s\n\nError: %v\n\nSuggestion: %s", e.operation, e.context, e.cause, e.suggestion)
}

func (e *commandError) Unwrap() error {
	return e.cause
}
