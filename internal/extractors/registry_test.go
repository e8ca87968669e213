package extractors

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRegistry_GetByExtension(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		filename string
		want     string // extractor name, "" for nil
	}{
		{"icmr_diabetes_2023.pdf", "pdf"},
		{"ICMR_DIABETES_2023.PDF", "pdf"},
		{"notes.txt", "text"},
		{"readme.md", "text"},
		{"chart.xlsx", ""},
		{"no_extension", ""},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			e := r.Get(tt.filename)
			if tt.want == "" {
				if e != nil {
					t.Errorf("expected no extractor, got %s", e.Name())
				}
				return
			}
			if e == nil {
				t.Fatalf("expected %s extractor, got nil", tt.want)
			}
			if e.Name() != tt.want {
				t.Errorf("expected %s extractor, got %s", tt.want, e.Name())
			}
		})
	}
}

func TestRegistry_Extensions(t *testing.T) {
	r := DefaultRegistry()

	exts := r.Extensions()
	want := []string{".md", ".pdf", ".txt"}
	if len(exts) != len(want) {
		t.Fatalf("expected %d extensions, got %v", len(want), exts)
	}
	for i, ext := range want {
		if exts[i] != ext {
			t.Errorf("expected extension %s at %d, got %s", ext, i, exts[i])
		}
	}
}

func TestRegistry_LaterRegistrationWins(t *testing.T) {
	r := NewRegistry()
	r.Register(NewTextExtractor())
	r.Register(&fakeExtractor{exts: []string{".txt"}, name: "override"})

	e := r.Get("notes.txt")
	if e == nil || e.Name() != "override" {
		t.Errorf("expected override extractor, got %v", e)
	}
}

func TestTextExtractor_Extract(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "guideline.txt")
	content := "limit sodium intake to 5g per day"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := NewTextExtractor().Extract(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != content {
		t.Errorf("expected %q, got %q", content, got)
	}
}

func TestTextExtractor_ExtractMissingFile(t *testing.T) {
	_, err := NewTextExtractor().Extract(filepath.Join(t.TempDir(), "absent.txt"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestPDFExtractor_ExtractInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.pdf")
	if err := os.WriteFile(path, []byte("not a pdf"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewPDFExtractor().Extract(path); err == nil {
		t.Error("expected error for invalid pdf content")
	}
}

type fakeExtractor struct {
	exts []string
	name string
}

func (f *fakeExtractor) Extract(string) (string, error) { return "", nil }
func (f *fakeExtractor) SupportedExtensions() []string  { return f.exts }
func (f *fakeExtractor) Name() string                   { return f.name }
