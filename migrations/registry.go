// Package migrations exposes the delivery ledger and event archive schema to
// go-persistence-bun, one filesystem per SQL dialect.
package migrations

import (
	"context"
	"fmt"
	"io/fs"
	"slices"
	"sort"
	"strings"

	paywebhooks "github.com/goliatone/go-paywebhooks"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"

	DefaultSourceLabel = "go-paywebhooks"

	rootPath   = "data/sql/migrations"
	sqliteDir  = "sqlite"
	upSuffix   = ".up.sql"
	downSuffix = ".down.sql"
)

// FilesystemSpec is the migration directory for one dialect. Migrations lists
// the base names (without .up.sql) found there, in apply order.
type FilesystemSpec struct {
	Dialect    string
	Path       string
	FS         fs.FS
	Migrations []string
}

type Registration struct {
	SourceLabel       string
	ValidationTargets []string
	Filesystems       []FilesystemSpec
}

type RegisterFunc func(ctx context.Context, dialect string, sourceLabel string, fsys fs.FS) error

type Option func(*Registration)

func WithDialectSourceLabel(label string) Option {
	return func(r *Registration) {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			r.SourceLabel = trimmed
		}
	}
}

// WithValidationTargets limits registration to the named dialects.
func WithValidationTargets(targets ...string) Option {
	return func(r *Registration) {
		if next := normalizeDialects(targets); len(next) > 0 {
			r.ValidationTargets = next
		}
	}
}

func WithFilesystems(filesystems ...FilesystemSpec) Option {
	return func(r *Registration) {
		next := make([]FilesystemSpec, 0, len(filesystems))
		for _, spec := range filesystems {
			spec.Dialect = normalizeDialect(spec.Dialect)
			if spec.Dialect == "" || spec.FS == nil {
				continue
			}
			next = append(next, spec)
		}
		if len(next) > 0 {
			r.Filesystems = next
		}
	}
}

// Filesystems resolves the postgres and sqlite migration directories from the
// embedded schema, or from source when given. Both dialects must ship the same
// migrations, each with an up and a down file.
func Filesystems(source ...fs.FS) ([]FilesystemSpec, error) {
	root := paywebhooks.GetCoreMigrationsFS()
	if len(source) > 0 && source[0] != nil {
		root = source[0]
	}
	postgres, path, err := locateRoot(root)
	if err != nil {
		return nil, err
	}
	sqlite, err := fs.Sub(postgres, sqliteDir)
	if err != nil {
		return nil, fmt.Errorf("migrations: resolve sqlite filesystem: %w", err)
	}

	specs := []FilesystemSpec{
		{Dialect: DialectPostgres, Path: path, FS: postgres},
		{Dialect: DialectSQLite, Path: joinPath(path, sqliteDir), FS: sqlite},
	}
	for i := range specs {
		names, err := Inventory(specs[i].FS)
		if err != nil {
			return nil, fmt.Errorf("migrations: %s %q: %w", specs[i].Dialect, specs[i].Path, err)
		}
		specs[i].Migrations = names
	}
	if !slices.Equal(specs[0].Migrations, specs[1].Migrations) {
		return nil, fmt.Errorf(
			"migrations: dialects drifted: postgres %v sqlite %v",
			specs[0].Migrations,
			specs[1].Migrations,
		)
	}
	return specs, nil
}

// Inventory lists the migrations in fsys. Every up file needs a matching down
// file.
func Inventory(fsys fs.FS) ([]string, error) {
	ups, err := fs.Glob(fsys, "*"+upSuffix)
	if err != nil {
		return nil, err
	}
	if len(ups) == 0 {
		return nil, fmt.Errorf("no *%s files", upSuffix)
	}
	names := make([]string, 0, len(ups))
	for _, up := range ups {
		name := strings.TrimSuffix(up, upSuffix)
		if _, err := fs.Stat(fsys, name+downSuffix); err != nil {
			return nil, fmt.Errorf("migration %s has no %s file", name, downSuffix)
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Register hands each targeted dialect filesystem to registerFn, postgres
// first.
func Register(ctx context.Context, registerFn RegisterFunc, opts ...Option) (Registration, error) {
	reg := Registration{
		SourceLabel:       DefaultSourceLabel,
		ValidationTargets: []string{DialectPostgres, DialectSQLite},
	}
	if registerFn == nil {
		return reg, fmt.Errorf("migrations: register function is required")
	}
	filesystems, err := Filesystems()
	if err != nil {
		return reg, err
	}
	reg.Filesystems = filesystems
	for _, opt := range opts {
		if opt != nil {
			opt(&reg)
		}
	}

	for _, spec := range reg.Filesystems {
		if !slices.Contains(reg.ValidationTargets, spec.Dialect) {
			continue
		}
		if err := registerFn(ctx, spec.Dialect, reg.SourceLabel, spec.FS); err != nil {
			return reg, fmt.Errorf("migrations: register %s (%s): %w", spec.Dialect, spec.Path, err)
		}
	}
	return reg, nil
}

func locateRoot(root fs.FS) (fs.FS, string, error) {
	if _, err := fs.Stat(root, rootPath); err == nil {
		sub, subErr := fs.Sub(root, rootPath)
		if subErr != nil {
			return nil, "", fmt.Errorf("migrations: %w", subErr)
		}
		return sub, rootPath, nil
	}
	// Accept a filesystem already rooted at the migration directory.
	if matches, _ := fs.Glob(root, "*"+upSuffix); len(matches) > 0 {
		return root, ".", nil
	}
	return nil, "", fmt.Errorf("migrations: %s not found", rootPath)
}

func normalizeDialect(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func normalizeDialects(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		dialect := normalizeDialect(value)
		if dialect != "" && !slices.Contains(out, dialect) {
			out = append(out, dialect)
		}
	}
	return out
}

func joinPath(base string, child string) string {
	if base == "." {
		return child
	}
	return base + "/" + child
}
