package testsupport

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestFixtureHelpers(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "fields.yaml")
	dataPath := filepath.Join(dir, "data.json")
	if err := os.WriteFile(docPath, []byte("- key: title\n  type: text\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dataPath, []byte(`{"title":"x"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	doc := MustLoadDocument(t, docPath)
	data := MustLoadData(t, dataPath)
	e := MustEditor(t, data, doc.Fields)
	if diff := CompareGolden(data, e.Value()); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
}

func TestCaptureOutput(t *testing.T) {
	ret, written := CaptureOutput(t, func(w io.Writer) (string, error) {
		_, err := io.WriteString(w, "hi")
		return "hi", err
	})
	if ret != written {
		t.Fatalf("returned %q, wrote %q", ret, written)
	}
}

func TestObservedLogger(t *testing.T) {
	logger, logs := ObservedLogger(zapcore.WarnLevel)
	logger.Info("dropped")
	logger.Warn("kept")
	if logs.Len() != 1 {
		t.Fatalf("entries = %d, want 1", logs.Len())
	}
}
