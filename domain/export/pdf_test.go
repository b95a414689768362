package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/soocke/sshot-go/domain/geometry"
	"github.com/soocke/sshot-go/domain/regions"
)

func TestBundlePDF_WritesSavedCrops(t *testing.T) {
	dir := t.TempDir()
	store := regions.NewStore()
	store.Add(geometry.R(0, 0, 40, 20), 1)
	store.Add(geometry.R(900, 900, 950, 950), 2)
	store.Add(geometry.R(10, 10, 30, 60), 3)
	p := NewPipeline(OSFilesystem{}, dir, "shot", store, discardLogger())
	res := p.Export(testFrame(100, 100), store.Snapshot())

	out := filepath.Join(dir, PDFName("shot", 1, 3))
	if err := BundlePDF(out, "shot", res.Outcomes); err != nil {
		t.Fatalf("bundle: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
}

func TestBundlePDF_NothingSaved(t *testing.T) {
	out := filepath.Join(t.TempDir(), "empty.pdf")
	err := BundlePDF(out, "", []Outcome{{Status: StatusSkipped}})
	if err == nil {
		t.Fatalf("expected error for empty bundle")
	}
	if _, statErr := os.Stat(out); statErr == nil {
		t.Fatalf("no file should be written")
	}
}
