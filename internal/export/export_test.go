package export

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"gopkg.in/yaml.v3"

	"grouper/internal/analysis"
	"grouper/internal/logging"
	"grouper/internal/output"
)

func testExporter() *Exporter {
	e := NewExporter(logging.Discard())
	e.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return e
}

func testResult() *analysis.Result {
	return &analysis.Result{
		RunID: "run-1",
		Root:  "/tmp/project",
		Manifest: []output.GroupView{
			{Name: "util", Strategy: "directory", Files: []string{"util/helper.py"}, ImportanceTotal: 0.5},
		},
		Snapshot: []output.MappingView{
			{File: "util/helper.py", Group: "util", Reason: "grouped by containing directory", Confidence: 0.9},
		},
		Summary: analysis.Summary{
			TotalFiles: 1,
			Edges:      []output.EdgeView{},
			Cycles:     [][]string{},
		},
	}
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := testExporter().Export(&buf, testResult(), Options{Format: FormatJSON}); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if doc["runId"] != "run-1" {
		t.Errorf("unexpected runId: %v", doc["runId"])
	}
	if doc["generated"] != "2026-01-02T03:04:05Z" {
		t.Errorf("unexpected timestamp: %v", doc["generated"])
	}
	groups, ok := doc["groups"].([]interface{})
	if !ok || len(groups) != 1 {
		t.Errorf("unexpected groups: %v", doc["groups"])
	}
}

func TestExportYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := testExporter().Export(&buf, testResult(), Options{Format: FormatYAML}); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var doc map[string]interface{}
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("export is not valid YAML: %v", err)
	}
	if doc["runId"] != "run-1" {
		t.Errorf("expected JSON field names in YAML, got keys %v", doc)
	}
}

func TestExportCompressed(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{Format: FormatJSON, Compress: true}
	if err := testExporter().Export(&buf, testResult(), opts); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	gz, err := gzip.NewReader(&buf)
	if err != nil {
		t.Fatalf("export is not gzip: %v", err)
	}
	data, err := io.ReadAll(gz)
	if err != nil {
		t.Fatalf("failed to decompress: %v", err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decompressed export is not valid JSON: %v", err)
	}
	if doc["root"] != "/tmp/project" {
		t.Errorf("unexpected root: %v", doc["root"])
	}
}

func TestExportDefaultFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := testExporter().Export(&buf, testResult(), Options{}); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "{") {
		t.Errorf("expected JSON by default, got %q", buf.String()[:1])
	}
}

func TestExportUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := testExporter().Export(&buf, testResult(), Options{Format: "xml"}); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestExportDeterministic(t *testing.T) {
	var a, b bytes.Buffer
	e := testExporter()
	if err := e.Export(&a, testResult(), Options{Format: FormatJSON}); err != nil {
		t.Fatal(err)
	}
	if err := e.Export(&b, testResult(), Options{Format: FormatJSON}); err != nil {
		t.Fatal(err)
	}
	if a.String() != b.String() {
		t.Error("export output not deterministic")
	}
}
