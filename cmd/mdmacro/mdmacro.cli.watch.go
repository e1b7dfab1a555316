package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/itsatony/go-mdmacro"
	"go.uber.org/zap"
)

// watchConfig holds parsed watch command configuration
type watchConfig struct {
	commonFlags
	page       string
	outputPath string
}

func runWatch(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseWatchFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidFlags, err)
		return ExitCodeUsageError
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return watchPage(ctx, cfg, 0, stdout, stderr)
}

func parseWatchFlags(args []string) (*watchConfig, error) {
	fs := newFlagSet(CmdNameWatch)

	cfg := &watchConfig{}
	cfg.register(fs)
	fs.StringVar(&cfg.page, FlagPage, "", "")
	fs.StringVar(&cfg.page, FlagPageShort, "", "")
	fs.StringVar(&cfg.outputPath, FlagOutput, "", "")
	fs.StringVar(&cfg.outputPath, FlagOutputShort, "", "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.page == "" {
		return nil, errors.New(ErrMsgMissingPage)
	}
	if cfg.outputPath == "" || cfg.outputPath == FlagDefaultOutput {
		return nil, errors.New(ErrMsgMissingOutputFile)
	}

	return cfg, nil
}

// watchPage renders the page once, then again after every settled change
// under the watch directories, until ctx is done. A debounce of 0 keeps
// the watcher default.
func watchPage(ctx context.Context, cfg *watchConfig, debounce time.Duration, stdout, stderr io.Writer) int {
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

	renderOnce := func(ctx context.Context) error {
		page, err := renderer.Render(ctx, cfg.page)
		if err != nil {
			return err
		}
		if err := mdmacro.WritePage(cfg.outputPath, page.HTML); err != nil {
			return err
		}
		fmt.Fprintf(stdout, WatchTextWritten+FmtNewline, cfg.outputPath)
		return nil
	}

	if err := renderOnce(ctx); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgRenderFailed, err)
		return exitCodeFor(err)
	}

	// the output may live inside a watched directory; its own writes must
	// not trigger another render
	opts := []mdmacro.WatchOption{
		mdmacro.WithWatchLogger(logger),
		mdmacro.WithIgnorePaths(cfg.outputPath),
	}
	if debounce > 0 {
		opts = append(opts, mdmacro.WithDebounce(debounce))
	}

	// a failed re-render is logged and the previous output stays in place
	onChange := func(ctx context.Context) error {
		if err := renderOnce(ctx); err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgRenderFailed, err)
			return err
		}
		return nil
	}

	w, err := mdmacro.NewWatcher(conf.WatchDirs(), onChange, opts...)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWatchFailed, err)
		return ExitCodeError
	}
	if err := w.Start(ctx); err != nil {
		w.Stop()
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWatchFailed, err)
		return ExitCodeError
	}
	defer w.Stop()

	logger.Debug(mdmacro.LogMsgWatchStarted, zap.String(mdmacro.LogFieldPage, cfg.page))
	<-w.Done()
	return ExitCodeSuccess
}
