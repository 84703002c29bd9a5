package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/raphi011/imsctx/internal/config"
	"github.com/raphi011/imsctx/internal/ims"
	"github.com/raphi011/imsctx/internal/jsonpath"
	"github.com/raphi011/imsctx/internal/storage"
)

// storeOptions returns the store settings for the working directory.
func storeOptions(ctx context.Context) storage.Options {
	cfg := config.FromContext(ctx)
	return cfg.StoreOptions(config.WorkDirFromContext(ctx))
}

// openContexts opens the store for the working directory.
func openContexts(ctx context.Context) (*ims.ConfigContext, error) {
	cfg := config.FromContext(ctx)
	c, err := ims.NewConfigContext(ctx, storage.New(storeOptions(ctx)), cfg.Keys)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return c, nil
}

// isInteractive reports whether prompts can be shown: stdin and stderr
// must both be terminals.
func isInteractive() bool {
	return isTerminal(os.Stdin) && isTerminal(os.Stderr)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// splitNameAndPairs separates an optional leading context name from
// path=value pairs. An argument containing "=" starts the pairs.
func splitNameAndPairs(args []string) (string, []string) {
	if len(args) == 0 || strings.Contains(args[0], "=") {
		return "", args
	}
	return args[0], args[1:]
}

// readData builds context data from either --data or path=value pairs.
// "--data -" reads JSON from stdin.
func readData(data string, pairs []string, stdin io.Reader) (any, error) {
	switch {
	case data != "" && len(pairs) > 0:
		return nil, errors.New("use either --data or path=value pairs, not both")
	case data == "-":
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return jsonpath.ParseData(string(raw))
	case data != "":
		return jsonpath.ParseData(data)
	case len(pairs) > 0:
		return jsonpath.BuildPatch(pairs)
	default:
		return nil, errors.New("no data given: pass path=value pairs or --data")
	}
}
