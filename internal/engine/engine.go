package engine

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/actiondirector/internal/analyzer"
	"github.com/ivlev/actiondirector/internal/config"
	"github.com/ivlev/actiondirector/internal/director"
)

// Report is the outcome of loading, validating and linting one asset file.
type Report struct {
	Path     string
	Asset    *director.Asset
	Faults   []director.NodeFault
	Findings []analyzer.Finding
	Elapsed  time.Duration
}

// OK reports whether the file produced no faults and no error findings.
func (r Report) OK() bool {
	if len(r.Faults) > 0 {
		return false
	}
	for _, f := range r.Findings {
		if f.Severity == analyzer.SeverityError {
			return false
		}
	}
	return true
}

// ValidateFiles runs every registered check over each file.
func ValidateFiles(ctx context.Context, cfg *config.Config, reg *director.Registry, paths []string) ([]Report, error) {
	checker, err := analyzer.NewChecker("all")
	if err != nil {
		return nil, err
	}
	return ValidateFilesWith(ctx, cfg, reg, checker, paths)
}

// ValidateFilesWith loads the files on cfg.Workers workers. Reports keep the
// order of paths. The first read or decode error cancels the batch.
func ValidateFilesWith(ctx context.Context, cfg *config.Config, reg *director.Registry, checker analyzer.Checker, paths []string) ([]Report, error) {
	workers := 1
	if cfg != nil && cfg.Workers > 0 {
		workers = cfg.Workers
	}

	reports := make([]Report, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			report, err := validateFile(path, reg, checker)
			if err != nil {
				return err
			}
			reports[i] = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func validateFile(path string, reg *director.Registry, checker analyzer.Checker) (Report, error) {
	start := time.Now()
	a, err := director.ReadAsset(path, reg)
	if err != nil {
		return Report{}, fmt.Errorf("validate %s: %w", path, err)
	}

	report := Report{
		Path:   path,
		Asset:  a,
		Faults: a.Faults(),
	}
	if checker != nil {
		report.Findings = checker.Check(a)
	}
	report.Elapsed = time.Since(start)
	return report, nil
}

// CollectFiles expands directories into the asset files they contain, in
// name order. Plain file arguments are kept as given.
func CollectFiles(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to read asset directory: %w", err)
		}
		var found []string
		for _, e := range entries {
			if !e.IsDir() && director.IsAssetFile(e.Name()) {
				found = append(found, filepath.Join(arg, e.Name()))
			}
		}
		sort.Strings(found)
		out = append(out, found...)
	}
	return out, nil
}

// PrintReports writes a human readable summary of a batch and returns the
// number of failing files.
func PrintReports(w io.Writer, reports []Report) int {
	failed := 0
	for _, r := range reports {
		mark := "[+]"
		if !r.OK() {
			mark = "[-]"
			failed++
		}
		fmt.Fprintf(w, "%s %s | length %.2fs | %d nodes | %s\n",
			mark, r.Path, r.Asset.Length(), len(r.Asset.Directables()), r.Elapsed.Round(time.Microsecond))
		for _, f := range r.Faults {
			fmt.Fprintf(w, "    [!] fault: %v\n", f)
		}
		for _, f := range r.Findings {
			fmt.Fprintf(w, "    %s\n", f)
		}
	}

	fmt.Fprintf(w, "%s\n", strings.Repeat("-", 29))
	fmt.Fprintf(w, "[*] Files: %d | Passed: %d | Failed: %d\n", len(reports), len(reports)-failed, failed)
	return failed
}
