package docxdiff

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"
)

func TestOpenArchive(t *testing.T) {
	t.Run("valid package", func(t *testing.T) {
		data := createTestPackage("Hello")
		archive, err := OpenArchive(data, DefaultLimits())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !archive.HasPart(DocumentPartName) {
			t.Error("expected document part to be present")
		}
	})

	t.Run("not a zip", func(t *testing.T) {
		_, err := OpenArchive([]byte("definitely not a zip"), DefaultLimits())
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !IsArchiveError(err) {
			t.Errorf("expected ArchiveError, got %T", err)
		}
	})

	t.Run("entry count over limit", func(t *testing.T) {
		var buf bytes.Buffer
		w := zip.NewWriter(&buf)
		for _, name := range []string{"a.xml", "b.xml", "c.xml"} {
			fw, _ := w.Create(name)
			fw.Write([]byte("<x/>"))
		}
		w.Close()

		limits := DefaultLimits()
		limits.MaxEntries = 2
		_, err := OpenArchive(buf.Bytes(), limits)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !IsArchiveError(err) {
			t.Errorf("expected ArchiveError, got %T", err)
		}
		if !strings.Contains(err.Error(), "entries") {
			t.Errorf("expected entry count message, got %v", err)
		}
	})

	t.Run("compressed size over heuristic limit", func(t *testing.T) {
		var buf bytes.Buffer
		w := zip.NewWriter(&buf)
		fw, _ := w.Create("word/document.xml")
		// Random-ish payload compresses poorly enough to trip a tiny cap.
		payload := bytes.Repeat([]byte("incompressible-0123456789-"), 100)
		fw.Write(payload)
		w.Close()

		limits := DefaultLimits()
		limits.MaxTotalUnzippedBytes = 4
		_, err := OpenArchive(buf.Bytes(), limits)
		if err == nil {
			t.Fatal("expected error before decompression, got nil")
		}
		if !IsArchiveError(err) {
			t.Errorf("expected ArchiveError, got %T", err)
		}
	})
}

func TestReadPart(t *testing.T) {
	data := createTestPackage("Hello")

	t.Run("existing part", func(t *testing.T) {
		archive, err := OpenArchive(data, DefaultLimits())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		content, present, err := archive.ReadPart(DocumentPartName)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !present {
			t.Fatal("expected part to be present")
		}
		if !strings.Contains(string(content), "Hello") {
			t.Errorf("expected document content, got %s", content)
		}
	})

	t.Run("absent part", func(t *testing.T) {
		archive, err := OpenArchive(data, DefaultLimits())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, present, err := archive.ReadPart("word/styles.xml")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if present {
			t.Error("expected part to be absent")
		}
	})

	t.Run("entry inflates past per-entry cap", func(t *testing.T) {
		limits := DefaultLimits()
		limits.MaxEntrySize = 16
		archive, err := OpenArchive(data, limits)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, _, err = archive.ReadPart(DocumentPartName)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !IsArchiveError(err) {
			t.Errorf("expected ArchiveError, got %T", err)
		}
	})
}

func TestListParts(t *testing.T) {
	archive, err := OpenArchive(createTestPackage("x"), DefaultLimits())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	parts := archive.ListParts()
	if len(parts) != 3 {
		t.Errorf("expected 3 parts, got %d: %v", len(parts), parts)
	}
}
