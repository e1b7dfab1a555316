package main

import (
	"flag"
	"io"
	"os"

	"github.com/itsatony/go-mdmacro"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// readInput reads content from a file or stdin
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == InputSourceStdin {
		return io.ReadAll(stdin)
	}

	return os.ReadFile(path)
}

// writeOutput writes content to a file or stdout
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == FlagDefaultOutput {
		_, err := stdout.Write(data)
		return err
	}

	return os.WriteFile(path, data, FilePermissions)
}

// commonFlags are shared by every command that builds an engine
type commonFlags struct {
	configPath string
	verbose    bool
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, FlagConfig, "", "")
	fs.StringVar(&c.configPath, FlagConfigShort, "", "")
	fs.BoolVar(&c.verbose, FlagVerbose, false, "")
	fs.BoolVar(&c.verbose, FlagVerboseShort, false, "")
}

// loadConfig reads the config file, or returns the defaults when none is given
func (c *commonFlags) loadConfig() (*mdmacro.Config, error) {
	if c.configPath == "" {
		return mdmacro.DefaultConfig(), nil
	}
	return mdmacro.LoadConfig(c.configPath)
}

// newLogger logs to stderr in verbose mode and discards otherwise
func (c *commonFlags) newLogger(stderr io.Writer) *zap.Logger {
	if !c.verbose {
		return zap.NewNop()
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(stderr),
		zapcore.DebugLevel,
	)
	return zap.New(core)
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // Suppress default error messages
	return fs
}

// exitCodeFor maps a resolution or rendering error to an exit code
func exitCodeFor(err error) int {
	switch {
	case mdmacro.IsMalformedTagError(err):
		return ExitCodeMalformedTag
	case mdmacro.IsPageNotFound(err):
		return ExitCodeInputError
	default:
		return ExitCodeError
	}
}
