package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/itsatony/go-mdmacro"
)

// buildConfig holds parsed build command configuration
type buildConfig struct {
	commonFlags
	outDir string
	jobs   int
	quiet  bool
}

func runBuild(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseBuildFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidFlags, err)
		return ExitCodeUsageError
	}

	conf, err := cfg.loadConfig()
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgLoadConfigFailed, err)
		return ExitCodeInputError
	}

	logger := cfg.newLogger(stderr)
	defer logger.Sync() //nolint:errcheck

	renderer, cleanup, code := openPageRenderer(conf, logger, stderr)
	if renderer == nil {
		return code
	}
	defer cleanup()

	result, err := mdmacro.BuildSite(context.Background(), renderer, cfg.outDir, cfg.jobs)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgBuildFailed, err)
		return exitCodeFor(err)
	}

	if !cfg.quiet {
		fmt.Fprintf(stdout, BuildTextSummary+FmtNewline, len(result.Pages), cfg.outDir)
	}
	return ExitCodeSuccess
}

func parseBuildFlags(args []string) (*buildConfig, error) {
	fs := newFlagSet(CmdNameBuild)

	cfg := &buildConfig{}
	cfg.register(fs)
	fs.StringVar(&cfg.outDir, FlagOutDir, "", "")
	fs.StringVar(&cfg.outDir, FlagOutDirShort, "", "")
	fs.IntVar(&cfg.jobs, FlagJobs, mdmacro.DefaultBuildJobs, "")
	fs.IntVar(&cfg.jobs, FlagJobsShort, mdmacro.DefaultBuildJobs, "")
	fs.BoolVar(&cfg.quiet, FlagQuiet, false, "")
	fs.BoolVar(&cfg.quiet, FlagQuietShort, false, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.outDir == "" {
		return nil, errors.New(ErrMsgMissingOutDir)
	}
	if cfg.jobs <= 0 {
		return nil, errors.New(ErrMsgInvalidJobs)
	}

	return cfg, nil
}
