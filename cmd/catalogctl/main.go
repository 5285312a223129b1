// Package main provides catalogctl, an operator CLI for the admission catalog.
//
// Usage:
//
//	catalogctl export -o catalog.xlsx
//	catalogctl import -f catalog.xlsx [-dry-run]
//	catalogctl search [-type all|courses|colleges] [-sort fees_low|...] [-location X] [-output text|json] "query"
//
// The store is Postgres when DATABASE_URL is set, otherwise the YAML seed
// named by CATALOG_SEED_FILE (rewritten in place by import).
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"direct-admission/internal/infra/adapter/persistence/memory"
	pgRepo "direct-admission/internal/infra/adapter/persistence/postgres"
	"direct-admission/internal/infra/db"
	"direct-admission/internal/infra/sheet"
	"direct-admission/internal/observability/logging"
	"direct-admission/internal/repository"
	catUC "direct-admission/internal/usecase/catalog"
	"direct-admission/internal/usecase/search"
	"direct-admission/pkg/config"
)

var errUsage = errors.New("usage: catalogctl <export|import|search> [flags]")

// store is an opened catalog repository. save flushes a file-backed store
// after an import and is a no-op for Postgres.
type store struct {
	repo  repository.CatalogRepository
	save  func(context.Context) error
	close func()
}

type opener func(ctx context.Context) (*store, error)

func main() {
	logger := logging.NewTextLogger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, openStore); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer, open opener) error {
	if len(args) == 0 {
		return errUsage
	}
	switch args[0] {
	case "export":
		return runExport(ctx, args[1:], open)
	case "import":
		return runImport(ctx, args[1:], stdout, open)
	case "search":
		return runSearch(ctx, args[1:], stdout, open)
	default:
		return fmt.Errorf("unknown command %q\n%w", args[0], errUsage)
	}
}

func runExport(ctx context.Context, args []string, open opener) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	out := fs.String("o", "", "Output .xlsx path (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *out == "" {
		return errors.New("export: -o is required")
	}

	svc, closeFn, err := loadService(ctx, open)
	if err != nil {
		return err
	}
	defer closeFn()

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := sheet.Write(f, svc.Snapshot()); err != nil {
		_ = f.Close()
		return fmt.Errorf("export: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	snap := svc.Snapshot()
	slog.Info("catalog exported",
		slog.String("path", *out),
		slog.Int("colleges", len(snap.Colleges)),
		slog.Int("courses", len(snap.Courses)),
		slog.Int("users", len(snap.Users)))
	return nil
}

func runImport(ctx context.Context, args []string, stdout io.Writer, open opener) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	in := fs.String("f", "", "Input .xlsx path (required)")
	dryRun := fs.Bool("dry-run", false, "Validate the workbook without writing")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return errors.New("import: -f is required")
	}

	f, err := os.Open(*in)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	sheets, err := sheet.Read(f)
	_ = f.Close()
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	st, err := open(ctx)
	if err != nil {
		return err
	}
	defer st.close()

	repo := st.repo
	if *dryRun {
		snap, err := repo.ReadAll(ctx)
		if err != nil {
			return fmt.Errorf("import: %w", err)
		}
		// 書き込みは一時的なメモリストアに閉じる
		repo = memory.NewCatalogRepo(snap)
	}
	svc := catUC.NewService(catUC.NewStore(repository.Snapshot{}), repo, catUC.Config{})
	if err := svc.Reload(ctx); err != nil {
		return err
	}

	summary, err := svc.Import(ctx, sheets)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	if !*dryRun {
		if err := st.save(ctx); err != nil {
			return fmt.Errorf("import: %w", err)
		}
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		DryRun  bool                `json:"dry_run"`
		Summary catUC.ImportSummary `json:"summary"`
	}{*dryRun, summary})
}

func runSearch(ctx context.Context, args []string, stdout io.Writer, open opener) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	resultType := fs.String("type", string(search.ResultAll), "Result type: all, courses or colleges")
	sortMode := fs.String("sort", string(search.DefaultSortMode), "Sort: fees_low, fees_high, alpha_asc or alpha_desc")
	location := fs.String("location", "", "Location or state filter")
	output := fs.String("output", "text", "Output format: text or json")
	if err := fs.Parse(args); err != nil {
		return err
	}

	svc, closeFn, err := loadService(ctx, open)
	if err != nil {
		return err
	}
	defer closeFn()

	searchSvc := &search.Service{Catalog: svc}
	res := searchSvc.Search(ctx, search.SearchQuery{
		Text:       strings.Join(fs.Args(), " "),
		Location:   *location,
		ResultType: search.ResultType(*resultType),
		SortMode:   search.SortMode(*sortMode),
	})

	if *output == "json" {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res.Items)
	}
	for _, it := range res.Items {
		if it.IsCourse() {
			fmt.Fprintf(stdout, "course   %-40s %-30s %10d\n", it.Course.CourseName, it.Course.CollegeName, it.Course.Fees)
			continue
		}
		fmt.Fprintf(stdout, "college  %-40s %s, %s\n", it.College.Name, it.College.Location, it.College.State)
	}
	fmt.Fprintf(stdout, "%d result(s)\n", len(res.Items))
	return nil
}

func loadService(ctx context.Context, open opener) (*catUC.Service, func(), error) {
	st, err := open(ctx)
	if err != nil {
		return nil, nil, err
	}
	svc := catUC.NewService(catUC.NewStore(repository.Snapshot{}), st.repo, catUC.Config{})
	if err := svc.Reload(ctx); err != nil {
		st.close()
		return nil, nil, err
	}
	return svc, st.close, nil
}

// openStore opens Postgres when DATABASE_URL is set, otherwise the seed file.
func openStore(ctx context.Context) (*store, error) {
	if dsn := config.GetEnvString("DATABASE_URL", ""); dsn != "" {
		database, err := db.Open(ctx, dsn, db.ConnectionConfigFromEnv())
		if err != nil {
			return nil, err
		}
		if err := db.MigrateUp(ctx, database); err != nil {
			_ = database.Close()
			return nil, err
		}
		return &store{
			repo:  pgRepo.NewCatalogRepo(database),
			save:  func(context.Context) error { return nil },
			close: func() { _ = database.Close() },
		}, nil
	}

	path := config.GetEnvString("CATALOG_SEED_FILE", "")
	if path == "" {
		return nil, errors.New("set DATABASE_URL or CATALOG_SEED_FILE")
	}
	snap, err := memory.LoadSeedFile(path)
	if err != nil {
		return nil, err
	}
	repo := memory.NewCatalogRepo(snap)
	return &store{
		repo:  repo,
		save:  func(ctx context.Context) error { return saveSeed(ctx, repo, path) },
		close: func() {},
	}, nil
}

func saveSeed(ctx context.Context, repo *memory.CatalogRepo, path string) error {
	snap, err := repo.ReadAll(ctx)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("save seed: %w", err)
	}
	if err := memory.DumpSeed(f, snap); err != nil {
		_ = f.Close()
		return fmt.Errorf("save seed: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("save seed: %w", err)
	}
	return os.Rename(tmp, path)
}
