// Package docxdiff compares two Word documents (DOCX) and produces a third
// in which every textual difference is expressed as reviewer-style tracked
// insertions and deletions.
//
// Basic Usage:
//
//	base, _ := os.ReadFile("contract-v1.docx")
//	revised, _ := os.ReadFile("contract-v2.docx")
//
//	result, err := docxdiff.Diff(base, revised, "Jane Reviewer", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, warning := range result.Warnings {
//	    log.Println(warning)
//	}
//	os.WriteFile("redline.docx", result.Output, 0o644)
//
// The output package contains the rewritten document part plus the minimal
// companion parts a package reader requires; it is not a round-trip of the
// inputs' other parts.
package docxdiff

import (
	"os"
	"sync"
	"time"
)

// DefaultAuthor is stamped on revisions when the caller passes an empty
// author string.
const DefaultAuthor = "docxdiff"

// Result is the outcome of one diff invocation: the output package bytes,
// the non-fatal warnings accumulated along the way, and change statistics.
type Result struct {
	Output   []byte
	Warnings []string
	Stats    DiffStats
}

// Engine provides the main API for diffing documents.
// Use New() to create a new engine instance.
type Engine struct {
	opts *Options
}

// New creates a new diff engine with the global configuration.
func New() *Engine {
	return &Engine{opts: GetGlobalOptions()}
}

// NewWithOptions creates a new diff engine with custom options; nil fields
// fall back to defaults.
func NewWithOptions(opts *Options) *Engine {
	return &Engine{opts: NewOptionsWithDefaults(opts)}
}

// Options returns the engine's configuration.
func (e *Engine) Options() *Options {
	return e.opts
}

// loadedInput is one parsed input document plus its load error, filled by
// the concurrent loaders.
type loadedInput struct {
	doc *Node
	err error
}

// Diff compares a base and a revised package and returns a new package in
// which every textual difference between them appears as tracked markup
// attributed to author. Fatal conditions (corrupt or over-limit archives,
// a missing document part, an opted-in tracked-revisions policy violation)
// abort with no partial output; a malformed document part degrades to an
// empty body and a warning.
func (e *Engine) Diff(base, revised []byte, author string) (*Result, error) {
	if err := e.opts.Validate(); err != nil {
		return nil, err
	}
	if author == "" {
		author = DefaultAuthor
	}

	logger := GetLogger()
	warn := &warningCollector{}

	if e.opts.IncludeHeadersFooters {
		warn.Addf("includeHeadersFooters is not supported by the minimal output package; headers and footers were not compared")
	}

	// The two inputs are independent side-effect-free reads, so load them
	// concurrently. Both must complete before alignment begins.
	inputs := make([]loadedInput, 2)
	var wg sync.WaitGroup
	for i, data := range [][]byte{base, revised} {
		wg.Add(1)
		go func(i int, data []byte) {
			defer wg.Done()
			inputs[i].doc, inputs[i].err = e.loadDocument(i, data, warn)
		}(i, data)
	}
	wg.Wait()

	for _, in := range inputs {
		if in.err != nil {
			return nil, in.err
		}
	}
	baseDoc, revisedDoc := inputs[0].doc, inputs[1].doc

	if e.opts.ExistingTrackedRevisions == TrackedRevisionsFail && HasTrackedChanges(revisedDoc) {
		return nil, NewPolicyViolationError(string(TrackedRevisionsFail),
			"revised document already contains tracked changes")
	}

	baseDoc = StripRevisions(baseDoc)
	revisedDoc = StripRevisions(revisedDoc)

	basePs := CollectParagraphs(baseDoc, e.opts)
	revisedPs := CollectParagraphs(revisedDoc, e.opts)
	logger.WithFields(Fields{
		"base_paragraphs":    len(basePs),
		"revised_paragraphs": len(revisedPs),
	}).Debug("Paragraphs collected")

	ids := newRevisionIDSource()
	stamp := time.Now().UTC()
	bodyChildren, stats := AlignParagraphs(basePs, revisedPs, author, e.opts, ids, stamp, warn)

	body := NewNode("body").Append(bodyChildren...)
	// The body-level section properties of the revised document pass
	// through so the output keeps its page setup.
	if revisedBody := revisedDoc.First("body"); revisedBody != nil {
		if sect := revisedBody.First("sectPr"); sect != nil {
			body.Children = append(body.Children, sect)
		}
	}
	doc := NewNode("document").Append(body)

	output, err := AssemblePackage(doc)
	if err != nil {
		return nil, NewDocumentError("assemble", DocumentPartName, err)
	}

	logger.WithFields(Fields{
		"paragraphs": stats.ParagraphsTotal,
		"changed":    stats.ParagraphsChanged,
		"inserted":   stats.ParagraphsInserted,
		"deleted":    stats.ParagraphsDeleted,
		"warnings":   warn.Len(),
	}).Info("Diff complete")

	return &Result{
		Output:   output,
		Warnings: warn.List(),
		Stats:    stats,
	}, nil
}

// loadDocument opens one input package and parses its document part. A
// part that fails to parse is replaced with an empty document tree and a
// warning; a missing part is fatal.
func (e *Engine) loadDocument(index int, data []byte, warn *warningCollector) (*Node, error) {
	name := [2]string{"base", "revised"}[index]

	archive, err := OpenArchive(data, e.opts.Limits)
	if err != nil {
		return nil, err
	}

	content, present, err := archive.ReadPart(DocumentPartName)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, NewMissingPartError(DocumentPartName)
	}

	doc, err := ParsePart(content)
	if err != nil {
		warn.Addf("malformed part %s in %s document; used empty fallback", DocumentPartName, name)
		return NewNode("document").Append(NewNode("body")), nil
	}
	return doc, nil
}

// DefaultEngine is the global default engine instance.
// It uses the global configuration.
var DefaultEngine = New()

// Diff compares two packages using opts (nil means defaults). This is the
// module-level convenience over a one-shot Engine.
func Diff(base, revised []byte, author string, opts *Options) (*Result, error) {
	if opts == nil {
		return DefaultEngine.Diff(base, revised, author)
	}
	return NewWithOptions(opts).Diff(base, revised, author)
}

// DiffFiles is Diff over file paths.
func DiffFiles(basePath, revisedPath, author string, opts *Options) (*Result, error) {
	base, err := os.ReadFile(basePath)
	if err != nil {
		return nil, NewDocumentError("read", basePath, err)
	}
	revised, err := os.ReadFile(revisedPath)
	if err != nil {
		return nil, NewDocumentError("read", revisedPath, err)
	}
	return Diff(base, revised, author, opts)
}
