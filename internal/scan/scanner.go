package scan

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"depthlint/internal/lint"
	"depthlint/internal/observability"
	"depthlint/internal/parser"

	"github.com/gobwas/glob"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Result aggregates one scan over the configured paths.
type Result struct {
	Files     int
	Findings  []lint.Finding
	Duration  time.Duration
	ScannedAt time.Time
}

// Scanner parses lintable files under the configured paths and runs the
// rule set over each. Files are processed in sorted path order so output
// is deterministic; within a file, findings follow document order.
type Scanner struct {
	parser       *parser.Parser
	rules        []lint.Rule
	excludeDirs  []glob.Glob
	excludeFiles []glob.Glob
}

func NewScanner(p *parser.Parser, rules []lint.Rule, excludeDirs, excludeFiles []string) (*Scanner, error) {
	s := &Scanner{parser: p, rules: rules}

	for _, pattern := range excludeDirs {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, err
		}
		s.excludeDirs = append(s.excludeDirs, g)
	}

	for _, pattern := range excludeFiles {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, err
		}
		s.excludeFiles = append(s.excludeFiles, g)
	}

	return s, nil
}

func (s *Scanner) Scan(ctx context.Context, paths []string) (*Result, error) {
	ctx, span := observability.Tracer().Start(ctx, "scanner.Scan")
	defer span.End()

	start := time.Now()

	files, err := s.collectFiles(paths)
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	result := &Result{ScannedAt: start}
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		findings, err := s.lintFile(ctx, path)
		if err != nil {
			observability.ParseErrorsTotal.Inc()
			slog.Warn("skipping file", "path", path, "error", err)
			continue
		}
		result.Files++
		result.Findings = append(result.Findings, findings...)
	}

	result.Duration = time.Since(start)

	observability.ScanDuration.Observe(result.Duration.Seconds())
	observability.FilesScannedTotal.Add(float64(result.Files))
	observability.FindingsTotal.Add(float64(len(result.Findings)))
	observability.CurrentFindings.Set(float64(len(result.Findings)))

	span.SetAttributes(
		attribute.Int("scan.files", result.Files),
		attribute.Int("scan.findings", len(result.Findings)),
	)

	return result, nil
}

// LintFile runs the rule set over a single file.
func (s *Scanner) LintFile(ctx context.Context, path string) ([]lint.Finding, error) {
	return s.lintFile(ctx, path)
}

func (s *Scanner) lintFile(ctx context.Context, path string) ([]lint.Finding, error) {
	_, span := observability.Tracer().Start(ctx, "scanner.lintFile",
		trace.WithAttributes(attribute.String("file.path", path)))
	defer span.End()

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	lang := parser.DetectLanguage(path)
	parseStart := time.Now()
	tree, err := s.parser.ParseFile(path, content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()
	observability.ParsingDuration.WithLabelValues(lang).Observe(time.Since(parseStart).Seconds())

	fileCtx := &parser.Context{Source: content, Path: path}
	return lint.Run(fileCtx, tree.RootNode(), s.rules), nil
}

func (s *Scanner) collectFiles(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if s.Lintable(root) && !seen[root] {
				seen[root] = true
				files = append(files, root)
			}
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if s.excludedDir(path) {
					return filepath.SkipDir
				}
				return nil
			}
			if s.Lintable(path) && !seen[path] {
				seen[path] = true
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

// Lintable reports whether the scanner would parse the given path.
func (s *Scanner) Lintable(path string) bool {
	if parser.DetectLanguage(path) == "" {
		return false
	}
	return !s.excludedFile(path)
}

func (s *Scanner) excludedDir(path string) bool {
	base := filepath.Base(path)
	for _, g := range s.excludeDirs {
		if g.Match(base) {
			return true
		}
	}
	return false
}

func (s *Scanner) excludedFile(path string) bool {
	base := filepath.Base(path)
	for _, g := range s.excludeFiles {
		if g.Match(base) {
			return true
		}
	}
	return false
}
