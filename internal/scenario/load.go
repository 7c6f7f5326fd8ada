package scenario

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pdrpinto/gridsearch/internal/ctxlog"
)

var extensions = []string{".hcl", ".yaml", ".yml"}

// LoadFile reads the scenarios in a single .hcl, .yaml or .yml file.
func LoadFile(ctx context.Context, path string) ([]Scenario, error) {
	return loadFile(ctx, hclparse.NewParser(), path)
}

func loadFile(ctx context.Context, parser *hclparse.Parser, path string) ([]Scenario, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading scenario file", "path", path)

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return parseHCL(parser, src, path)
	case ".yaml", ".yml":
		scenarios, err := ParseYAML(src)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return scenarios, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// LoadPath loads a scenario file, or every scenario file found recursively
// under a directory, in lexical path order.
func LoadPath(ctx context.Context, path string) ([]Scenario, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return LoadFile(ctx, path)
	}

	files, err := findScenarioFiles(path)
	if err != nil {
		return nil, fmt.Errorf("failed to find scenario files in %s: %w", path, err)
	}
	if len(files) == 0 {
		ctxlog.FromContext(ctx).Warn("No scenario files found in path", "path", path)
		return nil, nil
	}

	parser := hclparse.NewParser()
	var all []Scenario
	for _, file := range files {
		scenarios, err := loadFile(ctx, parser, file)
		if err != nil {
			return nil, err
		}
		all = append(all, scenarios...)
	}
	return all, nil
}

// findScenarioFiles recursively collects files with a scenario extension.
func findScenarioFiles(rootPath string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(d.Name()))
		for _, want := range extensions {
			if ext == want {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
