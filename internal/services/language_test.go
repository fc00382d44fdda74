package services

import "testing"

func TestFileExtension(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"main.go", "go"},
		{"script.PY", "py"},
		{"archive.tar.gz", "gz"},
		{"Makefile", ""},
		{".gitignore", "gitignore"},
	}
	for _, tt := range tests {
		if got := FileExtension(tt.filename); got != tt.want {
			t.Errorf("FileExtension(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"app.py", "Python"},
		{"index.js", "JavaScript"},
		{"component.tsx", "React TypeScript"},
		{"server.go", "Go"},
		{"notes.txt", "Unknown"},
		{"README", "Unknown"},
	}
	for _, tt := range tests {
		if got := DetectLanguage(tt.filename); got != tt.want {
			t.Errorf("DetectLanguage(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

func TestAllowedExtension(t *testing.T) {
	if !AllowedExtension("main.rs") {
		t.Error("expected .rs to be allowed")
	}
	if AllowedExtension("data.csv") {
		t.Error("expected .csv to be rejected")
	}
	if AllowedExtension("Makefile") {
		t.Error("expected extension-less filename to be rejected")
	}
}
