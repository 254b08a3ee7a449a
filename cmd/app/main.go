package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/torvik/membank/internal"
	"github.com/torvik/membank/internal/browse"
	"github.com/torvik/membank/internal/docservice"
	"github.com/torvik/membank/internal/index"
	"github.com/torvik/membank/internal/mcpserver"
	"github.com/torvik/membank/internal/scaffold"
	"github.com/torvik/membank/internal/search"
	"github.com/torvik/membank/internal/storage"
	pkgconfig "github.com/torvik/membank/pkg/config"
)

func main() {
	root := &cli.Command{
		Name:  "membank",
		Usage: "Memory bank toolkit: scaffold, index, search, and browse Markdown documentation",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("MEMBANK_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:    "bank",
				Aliases: []string{"b"},
				Usage:   "Path to the memory bank directory (overrides config)",
				Sources: cli.EnvVars("MEMBANK_PATH"),
			},
		},
		Commands: []*cli.Command{
			initCommand(),
			indexCommand(),
			searchCommand(),
			browseCommand(),
			serveCommand(),
			mcpCommand(),
		},
	}

	if err := root.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// loadConfig builds the effective config: defaults, then the config file if
// present, then the --bank flag override.
func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadIfExists(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if bank := cmd.String("bank"); bank != "" {
		cfg.Bank.Path = bank
	}
	return cfg, nil
}

func openStore(cmd *cli.Command) (*internal.Config, storage.Provider, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	store, err := storage.NewFS(cfg.Bank.Path)
	if err != nil {
		return nil, nil, err
	}
	return cfg, store, nil
}

func initCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Scaffold a new memory bank from a template",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "template", Usage: "Template directory (default: built-in memory bank template)"},
			&cli.StringFlag{Name: "dest", Usage: "Destination directory", Value: "./memory-bank"},
			&cli.BoolFlag{Name: "force", Usage: "Overwrite a non-empty destination"},
			&cli.StringFlag{Name: "name", Usage: "Project name (skips the prompt)"},
			&cli.StringFlag{Name: "description", Usage: "Project description (skips the prompt)"},
			&cli.StringFlag{Name: "architecture", Usage: "Architecture (skips the prompt)"},
			&cli.StringFlag{Name: "framework", Usage: "Framework (skips the prompt)"},
			&cli.StringFlag{Name: "language", Usage: "Primary language (skips the prompt)"},
		},
		Action: runInit,
	}
}

func runInit(_ context.Context, cmd *cli.Command) error {
	seed := scaffold.Answers{
		Name:         cmd.String("name"),
		Description:  cmd.String("description"),
		Architecture: cmd.String("architecture"),
		Framework:    cmd.String("framework"),
		Language:     cmd.String("language"),
	}
	answers, err := scaffold.Prompt(os.Stdin, os.Stdout, seed)
	if err != nil {
		return err
	}

	now := time.Now()
	err = scaffold.Run(scaffold.Options{
		Source:       cmd.String("template"),
		Dest:         cmd.String("dest"),
		Force:        cmd.Bool("force"),
		Placeholders: answers.Placeholders(now.Format("2006-01-02")),
		Project: scaffold.ProjectInfo{
			Name:         answers.Name,
			Description:  answers.Description,
			Architecture: answers.Architecture,
			Framework:    answers.Framework,
			Language:     answers.Language,
			ScaffoldedAt: now.UTC(),
		},
	})
	if err != nil {
		return err
	}

	fmt.Printf("Memory bank for %q scaffolded at %s\n", answers.Name, cmd.String("dest"))
	return nil
}

func indexCommand() *cli.Command {
	return &cli.Command{
		Name:   "index",
		Usage:  "Rebuild the JSON index file at the bank root",
		Action: runIndex,
	}
}

func runIndex(_ context.Context, cmd *cli.Command) error {
	_, store, err := openStore(cmd)
	if err != nil {
		return err
	}

	snap, err := index.BuildSnapshot(store)
	if err != nil {
		return err
	}
	if err := index.WriteSnapshot(store.Root(), snap); err != nil {
		return err
	}

	fmt.Printf("Indexed %d files across %d categories (%d tags) into %s\n",
		len(snap.Files), len(snap.Categories), len(snap.Tags), index.SnapshotFileName)
	return nil
}

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search every document for a keyword (case-insensitive)",
		ArgsUsage: "<keyword>",
		Action:    runSearch,
	}
}

func runSearch(_ context.Context, cmd *cli.Command) error {
	keyword := cmd.Args().First()
	if strings.TrimSpace(keyword) == "" {
		fmt.Fprintln(os.Stderr, "usage: membank search <keyword>")
		return fmt.Errorf("search: keyword is required")
	}

	_, store, err := openStore(cmd)
	if err != nil {
		return err
	}

	matches, err := search.Grep(store, keyword)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		fmt.Printf("No results for %q\n", keyword)
		return nil
	}

	fmt.Printf("Found %d matching lines for %q:\n\n", len(matches), keyword)
	for _, m := range matches {
		fmt.Printf("%s:%d\n  %s\n", m.Path, m.Line, m.Text)
	}
	return nil
}

func browseCommand() *cli.Command {
	return &cli.Command{
		Name:      "browse",
		Usage:     "Print the file tree of one category",
		ArgsUsage: "<category>",
		Action:    runBrowse,
	}
}

func runBrowse(_ context.Context, cmd *cli.Command) error {
	category := cmd.Args().First()

	_, store, err := openStore(cmd)
	if err != nil {
		return err
	}

	if category == "" {
		printCategories(store)
		fmt.Fprintln(os.Stderr, "usage: membank browse <category>")
		return fmt.Errorf("browse: category is required")
	}

	tree, err := browse.Tree(store, category)
	if err != nil {
		printCategories(store)
		return err
	}

	fmt.Print(tree)
	return nil
}

func printCategories(store storage.Provider) {
	cats, err := browse.Categories(store)
	if err != nil || len(cats) == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "Available categories: %s\n", strings.Join(cats, ", "))
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run the HTTP API with a live SQLite search cache",
		Action: runServe,
	}
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:   "mcp",
		Usage:  "Run the MCP server on stdio",
		Action: runMCP,
	}
}

func runMCP(_ context.Context, cmd *cli.Command) error {
	cfg, store, err := openStore(cmd)
	if err != nil {
		return err
	}

	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	// Keep MCP logs off stdout: stdio transport owns it.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	if err := index.Sync(db, store, logger); err != nil {
		logger.Warn("initial sync failed", slog.String("error", err.Error()))
	}

	svc := docservice.NewService(store, db)
	return mcpserver.New(svc).ServeStdio()
}
