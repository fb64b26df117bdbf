// Package discovery locates persisted service spec files under one or more
// roots and resolves each of them against the shared default layer.
package discovery

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/core-tools/hsu-svcctl/pkg/errors"
	"github.com/core-tools/hsu-svcctl/pkg/logging"
	"github.com/core-tools/hsu-svcctl/pkg/svcspec"
)

// SpecFileExtension marks the files the loader recognizes; everything else
// is silently skipped.
const SpecFileExtension = ".toml"

// Options configures a discovery pass
type Options struct {
	// Roots are scanned in order. Empty means the well-known spec directory.
	Roots []string

	// DefaultFile overrides the path of the process-wide default spec file.
	// Empty selects the well-known location.
	DefaultFile string
}

// DiscoveredSpec is one successfully resolved spec file
type DiscoveredSpec struct {
	Path string
	Spec *svcspec.ResolvedSpec
}

// Result carries the outcome of a discovery pass. Specs holds the resolved
// files in root order, then path order within a root. Failures holds the
// per-file errors for files that could not be decoded or resolved; one bad
// file does not abort the pass.
type Result struct {
	Specs    []DiscoveredSpec
	Failures *errors.ErrorCollection
}

// Discover walks the configured roots for spec files and resolves each one
// against the default layer, which is loaded once and shared read-only
// across all files.
//
// A nonexistent root is an IO error, with one tolerated special case: when
// the root list is exactly the well-known spec directory and that directory
// does not exist, the result is empty. Absence of optional local
// configuration is normal.
func Discover(options Options, logger logging.Logger) (*Result, error) {
	// Roots are cleaned so the tolerance check below does not treat a
	// trailing separator or a dot segment as a different directory. An empty
	// root stays empty and fails the existence check.
	roots := make([]string, 0, len(options.Roots))
	for _, root := range options.Roots {
		if root != "" {
			root = filepath.Clean(root)
		}
		roots = append(roots, root)
	}
	if len(roots) == 0 {
		roots = []string{svcspec.DefaultSpecConfigDir()}
	}
	missingDefaultRootTolerated := len(roots) == 1 && roots[0] == svcspec.DefaultSpecConfigDir()

	defaultLayer, err := svcspec.LoadDefaultLayer(options.DefaultFile)
	if err != nil {
		return nil, err
	}
	if defaultLayer != nil {
		logger.Debugf("Loaded default spec layer")
	}

	result := &Result{
		Failures: errors.NewErrorCollection(),
	}

	for _, root := range roots {
		if _, err := os.Stat(root); err != nil {
			if os.IsNotExist(err) && missingDefaultRootTolerated {
				logger.Debugf("Spec directory does not exist, path: %s", root)
				return result, nil
			}
			return nil, errors.NewIOError("failed to access discovery root", err).WithContext("root", root)
		}

		files, err := collectSpecFiles(root)
		if err != nil {
			return nil, err
		}

		for _, path := range files {
			spec, err := resolveSpecFile(path, defaultLayer)
			if err != nil {
				logger.Warnf("Skipping spec file, path: %s, error: %v", path, err)
				result.Failures.Add(err)
				continue
			}
			logger.Debugf("Resolved spec file, path: %s, ident: %s", path, spec.Ident.String())
			result.Specs = append(result.Specs, DiscoveredSpec{Path: path, Spec: spec})
		}
	}

	logger.Infof("Spec discovery complete, specs: %d, failures: %d", len(result.Specs), len(result.Failures.Errors))
	return result, nil
}

// collectSpecFiles walks one root and returns the matching file paths in
// lexical path order.
func collectSpecFiles(root string) ([]string, error) {
	var files []string
	walkErr := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return errors.NewIOError("failed to read discovery path", err).WithContext("path", path)
		}
		if entry.IsDir() {
			return nil
		}
		if filepath.Ext(path) != SpecFileExtension {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	// The ordering contract does not depend on traversal order
	sort.Strings(files)
	return files, nil
}

func resolveSpecFile(path string, defaultLayer *svcspec.Layer) (*svcspec.ResolvedSpec, error) {
	layer, err := svcspec.DecodeLayerFile(path)
	if err != nil {
		return nil, err
	}

	spec, err := svcspec.Resolve(nil, layer, defaultLayer)
	if err != nil {
		if domainErr, ok := err.(*errors.DomainError); ok {
			return nil, domainErr.WithContext("path", path)
		}
		return nil, err
	}
	return spec, nil
}
