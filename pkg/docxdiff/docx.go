package docxdiff

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
)

// DocumentPartName is the primary document part of a wordprocessing package.
const DocumentPartName = "word/document.xml"

// Archive wraps an opened compressed package and exposes limit-checked,
// named-part read access.
type Archive struct {
	reader *zip.Reader
	parts  map[string]*zip.File
	limits ResourceLimits
}

// OpenArchive opens a compressed package held in memory and validates it
// against the configured resource limits before anything is decompressed:
// the entry count against MaxEntries, and the running sum of compressed
// entry sizes against twice MaxTotalUnzippedBytes. The factor of two is a
// cheap pre-expansion heuristic, not a ceiling on actual inflated bytes;
// per-entry inflation is separately capped by MaxEntrySize on read.
func OpenArchive(data []byte, limits ResourceLimits) (*Archive, error) {
	zipReader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, NewArchiveError("open", "not a valid compressed package", err)
	}

	if len(zipReader.File) > limits.MaxEntries {
		return nil, NewArchiveError("open",
			fmt.Sprintf("package has %d entries, limit is %d", len(zipReader.File), limits.MaxEntries), nil)
	}

	var compressedTotal int64
	parts := make(map[string]*zip.File, len(zipReader.File))
	for _, file := range zipReader.File {
		compressedTotal += int64(file.CompressedSize64)
		if compressedTotal > 2*limits.MaxTotalUnzippedBytes {
			return nil, NewArchiveError("open",
				fmt.Sprintf("compressed entry sizes exceed %d bytes", 2*limits.MaxTotalUnzippedBytes), nil)
		}
		if _, dup := parts[file.Name]; dup {
			return nil, NewArchiveError("open",
				fmt.Sprintf("duplicate entry path '%s'", file.Name), nil)
		}
		parts[file.Name] = file
	}

	return &Archive{
		reader: zipReader,
		parts:  parts,
		limits: limits,
	}, nil
}

// HasPart reports whether the package contains an entry with the given path.
func (a *Archive) HasPart(path string) bool {
	_, ok := a.parts[path]
	return ok
}

// ReadPart decompresses and returns a named entry. The second return value
// is false when the entry is absent. An entry that inflates past
// MaxEntrySize raises an ArchiveError.
func (a *Archive) ReadPart(path string) ([]byte, bool, error) {
	file, ok := a.parts[path]
	if !ok {
		return nil, false, nil
	}

	rc, err := file.Open()
	if err != nil {
		return nil, true, NewArchiveError("read", fmt.Sprintf("failed to open entry '%s'", path), err)
	}
	defer rc.Close()

	content, err := io.ReadAll(io.LimitReader(rc, a.limits.MaxEntrySize+1))
	if err != nil {
		return nil, true, NewArchiveError("read", fmt.Sprintf("failed to read entry '%s'", path), err)
	}
	if int64(len(content)) > a.limits.MaxEntrySize {
		return nil, true, NewArchiveError("read",
			fmt.Sprintf("entry '%s' exceeds %d decompressed bytes", path, a.limits.MaxEntrySize), nil)
	}

	return content, true, nil
}

// ListParts returns the paths of all entries in the package.
func (a *Archive) ListParts() []string {
	paths := make([]string, 0, len(a.parts))
	for name := range a.parts {
		paths = append(paths, name)
	}
	return paths
}
