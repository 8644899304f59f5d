// Package export renders an analysis result as a portable manifest document.
package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/klauspost/compress/gzip"
	"gopkg.in/yaml.v3"

	"grouper/internal/analysis"
	grouperrors "grouper/internal/errors"
	"grouper/internal/logging"
	"grouper/internal/output"
)

// Format selects the manifest serialization.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Options controls one export.
type Options struct {
	Format   Format
	Compress bool
}

// Document is the exported manifest structure.
type Document struct {
	Generated string                `json:"generated"`
	RunID     string                `json:"runId"`
	Root      string                `json:"root"`
	Groups    []output.GroupView    `json:"groups"`
	Mappings  []output.MappingView  `json:"mappings"`
	Summary   analysis.Summary      `json:"summary"`
	Warnings  []grouperrors.Warning `json:"warnings,omitempty"`
}

// Exporter writes manifest documents.
type Exporter struct {
	logger *logging.Logger

	// now is swappable for deterministic test output.
	now func() time.Time
}

// NewExporter creates an exporter.
func NewExporter(logger *logging.Logger) *Exporter {
	return &Exporter{
		logger: logger,
		now:    time.Now,
	}
}

// Export writes the result to w in the requested format.
func (e *Exporter) Export(w io.Writer, result *analysis.Result, opts Options) error {
	if opts.Format == "" {
		opts.Format = FormatJSON
	}

	doc := Document{
		Generated: e.now().UTC().Format(time.RFC3339),
		RunID:     result.RunID,
		Root:      result.Root,
		Groups:    result.Manifest,
		Mappings:  result.Snapshot,
		Summary:   result.Summary,
		Warnings:  result.Warnings,
	}

	out := w
	var gz *gzip.Writer
	if opts.Compress {
		gz = gzip.NewWriter(w)
		out = gz
	}

	var err error
	switch opts.Format {
	case FormatJSON:
		err = e.writeJSON(out, doc)
	case FormatYAML:
		err = e.writeYAML(out, doc)
	default:
		return grouperrors.New(grouperrors.ConfigInvalid, "unsupported export format: "+string(opts.Format), nil)
	}
	if err != nil {
		return err
	}

	if gz != nil {
		if err := gz.Close(); err != nil {
			return grouperrors.New(grouperrors.StorageFailure, "failed to finish compressed export", err)
		}
	}

	e.logger.Debug("Export completed", map[string]interface{}{
		"format":     string(opts.Format),
		"compressed": opts.Compress,
		"groups":     len(doc.Groups),
	})
	return nil
}

func (e *Exporter) writeJSON(w io.Writer, doc Document) error {
	data, err := output.DeterministicEncodeIndented(doc)
	if err != nil {
		return grouperrors.New(grouperrors.InternalError, "failed to encode manifest", err)
	}
	if _, err := w.Write(data); err != nil {
		return grouperrors.New(grouperrors.StorageFailure, "failed to write manifest", err)
	}
	_, err = w.Write([]byte("\n"))
	return err
}

// writeYAML routes through the deterministic JSON encoding first so YAML
// output carries the same field names and key order as JSON output.
func (e *Exporter) writeYAML(w io.Writer, doc Document) error {
	data, err := output.DeterministicEncode(doc)
	if err != nil {
		return grouperrors.New(grouperrors.InternalError, "failed to encode manifest", err)
	}

	var generic interface{}
	if err := json.Unmarshal(data, &generic); err != nil {
		return grouperrors.New(grouperrors.InternalError, "failed to normalize manifest", err)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return grouperrors.New(grouperrors.InternalError, "failed to encode manifest", err)
	}
	return enc.Close()
}
