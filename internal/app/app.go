// Package app wires configuration, the GraphQL client, the
// paged-search controller and the dropdown UI into a runnable picker.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gqlpick/internal/config"
	"gqlpick/internal/domain"
	"gqlpick/internal/eventbus"
	"gqlpick/internal/gql"
	"gqlpick/internal/logger"
	"gqlpick/internal/pagedsearch"
	"gqlpick/internal/respath"
	"gqlpick/internal/ui"
)

// CLIOptions are the command line overrides applied on top of the
// config file.
type CLIOptions struct {
	ConfigPath string
	Endpoint   string
	QueryFile  string
	PageSize   int
	LogPath    string
	LogLevel   string
}

// Run starts the picker and blocks until the user selects an item or
// quits. It returns the selected item's key, or "" when nothing was
// picked.
func Run(opts CLIOptions) (string, error) {
	if opts.LogPath != "" {
		if err := logger.InitFile(opts.LogPath, opts.LogLevel); err != nil {
			fmt.Fprintf(os.Stderr, "could not open log file: %v\n", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	bus := eventbus.New()
	defer bus.Close()

	cfg, err := loadConfig(opts, bus)
	if err != nil {
		return "", err
	}

	client, err := gql.NewClient(cfg.Endpoint,
		gql.WithHeaders(cfg.Headers),
		gql.WithBus(bus),
	)
	if err != nil {
		return "", err
	}
	defer client.Close()

	op := gql.Operation{Name: cfg.Query.OperationName, Query: cfg.Query.Document}
	handle := gql.Query[map[string]any](ctx, client, op, nil, gql.Options{
		Skip:        true, // the controller drives every execution
		CachePolicy: gql.CachePolicy(cfg.Query.CachePolicy),
	})
	defer handle.Close()

	ctrl, err := pagedsearch.New(handle, controllerConfig(cfg))
	if err != nil {
		return "", err
	}
	defer ctrl.Close()

	dropdown := ui.NewDropdown(ctx, ctrl, bus, ui.Options[map[string]any]{
		Title: "gqlpick",
		RenderItem: func(item map[string]any) string {
			return respath.String(item, cfg.Query.LabelPath)
		},
		ItemKey: func(item map[string]any) string {
			return respath.String(item, cfg.Query.KeyPath)
		},
		EmptyText:    cfg.UI.EmptyText,
		Placeholder:  cfg.UI.Placeholder,
		BottomOffset: cfg.UI.BottomOffset,
	})
	defer dropdown.Close()

	logger.Log.Infof("starting picker against %s", cfg.Endpoint)

	p := tea.NewProgram(dropdown, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return "", fmt.Errorf("running UI: %w", err)
	}

	item, ok := dropdown.Selected()
	if !ok {
		return "", nil
	}
	return respath.String(item, cfg.Query.KeyPath), nil
}

func loadConfig(opts CLIOptions, bus eventbus.EventBus) (*config.Config, error) {
	cfgService := config.NewConfigServiceWithBus(bus)

	var cfg *config.Config
	var err error
	if opts.ConfigPath != "" {
		cfg, err = cfgService.LoadFromPath(opts.ConfigPath)
	} else {
		cfg, err = cfgService.Load()
	}
	if err != nil {
		return nil, err
	}

	if opts.Endpoint != "" {
		cfg.Endpoint = opts.Endpoint
	}
	if opts.QueryFile != "" {
		doc, err := os.ReadFile(opts.QueryFile)
		if err != nil {
			return nil, fmt.Errorf("reading query file: %w", err)
		}
		cfg.Query.Document = string(doc)
		cfg.Query.File = ""
	}
	if opts.PageSize > 0 {
		cfg.Query.PageSize = opts.PageSize
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// controllerConfig builds the generic controller config from the
// config file's dot-paths.
func controllerConfig(cfg *config.Config) pagedsearch.Config[map[string]any, map[string]any] {
	itemsPath := cfg.Query.ItemsPath
	paginationPath := cfg.Query.PaginationPath

	return pagedsearch.Config[map[string]any, map[string]any]{
		GetItems: func(resp map[string]any) []map[string]any {
			return respath.Items(resp, itemsPath)
		},
		GetPagination: func(resp map[string]any) domain.PageInfo {
			return respath.PageInfo(resp, paginationPath)
		},
		SetItems: func(resp map[string]any, items []map[string]any) map[string]any {
			return respath.WithValue(resp, itemsPath, items)
		},
		DefaultPagination: domain.Pagination{Page: 1, PageSize: cfg.Query.PageSize},
		DebounceTime:      time.Duration(cfg.UI.DebounceMs) * time.Millisecond,
	}
}
