package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/itsatony/go-mdmacro"
	"go.uber.org/zap"
)

// renderConfig holds parsed render command configuration
type renderConfig struct {
	commonFlags
	page       string
	outputPath string
	format     string
}

// pageOutput is the JSON form of a rendered page
type pageOutput struct {
	Name     string            `json:"name"`
	Title    string            `json:"title"`
	Metavars map[string]string `json:"metavars"`
	HTML     string            `json:"html"`
	TOC      string            `json:"toc,omitempty"`
}

func runRender(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseRenderFlags(args)
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

	page, err := renderer.Render(context.Background(), cfg.page)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgRenderFailed, err)
		return exitCodeFor(err)
	}

	data := []byte(page.HTML)
	if cfg.format == OutputFormatJSON {
		data, err = json.MarshalIndent(pageOutput{
			Name:     page.Name,
			Title:    page.Title,
			Metavars: page.Metavars,
			HTML:     page.HTML,
			TOC:      page.TOC,
		}, "", "  ")
		if err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgRenderFailed, err)
			return ExitCodeError
		}
		data = append(data, '\n')
	}

	if err := writeOutput(cfg.outputPath, data, stdout); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWriteOutputFailed, err)
		return ExitCodeError
	}

	return ExitCodeSuccess
}

func parseRenderFlags(args []string) (*renderConfig, error) {
	fs := newFlagSet(CmdNameRender)

	cfg := &renderConfig{}
	cfg.register(fs)
	fs.StringVar(&cfg.page, FlagPage, "", "")
	fs.StringVar(&cfg.page, FlagPageShort, "", "")
	fs.StringVar(&cfg.outputPath, FlagOutput, FlagDefaultOutput, "")
	fs.StringVar(&cfg.outputPath, FlagOutputShort, FlagDefaultOutput, "")
	fs.StringVar(&cfg.format, FlagFormat, OutputFormatHTML, "")
	fs.StringVar(&cfg.format, FlagFormatShort, OutputFormatHTML, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.page == "" {
		return nil, errors.New(ErrMsgMissingPage)
	}
	if cfg.format != OutputFormatHTML && cfg.format != OutputFormatJSON {
		return nil, errors.New(ErrMsgInvalidFormat)
	}

	return cfg, nil
}

// openPageRenderer builds the engine and opens page storage. On failure the
// renderer is nil and the exit code says why.
func openPageRenderer(conf *mdmacro.Config, logger *zap.Logger, stderr io.Writer) (*mdmacro.PageRenderer, func(), int) {
	engine, err := conf.NewEngine(logger)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgEngineFailed, err)
		return nil, nil, ExitCodeError
	}

	storage, err := conf.OpenStorage()
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgStorageFailed, err)
		return nil, nil, ExitCodeInputError
	}

	cleanup := func() {
		if err := storage.Close(); err != nil {
			logger.Warn(mdmacro.LogMsgStorageCloseFailed, zap.Error(err))
		}
	}
	return mdmacro.NewPageRenderer(engine, storage), cleanup, ExitCodeSuccess
}
