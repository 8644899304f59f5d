package scan

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"grouper/internal/config"
	"grouper/internal/logging"
	"grouper/internal/paths"
)

// Scanner walks a project tree and produces the ordered scanned-file set.
type Scanner struct {
	root   string
	cfg    *config.ScanConfig
	logger *logging.Logger
}

// NewScanner creates a scanner rooted at the given project directory.
func NewScanner(root string, cfg *config.ScanConfig, logger *logging.Logger) *Scanner {
	return &Scanner{
		root:   root,
		cfg:    cfg,
		logger: logger,
	}
}

// Scan walks the project tree and returns scanned files in walk order.
// Walk order is lexical, so the result is deterministic for an unchanged tree.
func (s *Scanner) Scan(ctx context.Context) ([]ScannedFile, error) {
	excludes := make(map[string]bool, len(s.cfg.Exclude))
	for _, e := range s.cfg.Exclude {
		excludes[e] = true
	}

	var files []ScannedFile

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != s.root && (excludes[d.Name()] || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}

		if len(files) >= s.cfg.MaxFiles {
			s.logger.Warn("Reached max files limit during scan", map[string]interface{}{
				"maxFiles": s.cfg.MaxFiles,
			})
			return filepath.SkipAll
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.Size() > int64(s.cfg.MaxFileSizeBytes) {
			s.logger.Debug("Skipping file: too large", map[string]interface{}{
				"file": path,
				"size": info.Size(),
			})
			return nil
		}

		canonical, err := paths.Canonicalize(path, s.root)
		if err != nil {
			return nil
		}

		files = append(files, ScannedFile{
			Path:     canonical,
			Language: DetectLanguage(strings.ToLower(filepath.Ext(path))),
			Exists:   true,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Scan completed", map[string]interface{}{
		"files": len(files),
	})

	return files, nil
}

// Content reads the bytes of one scanned file on demand. Content is never
// pre-loaded in bulk, so memory stays bounded on large trees.
func (s *Scanner) Content(file string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.root, filepath.FromSlash(file)))
}

// Root returns the project root directory.
func (s *Scanner) Root() string {
	return s.root
}
