// Package extractor drives corpus extraction end to end: catalog
// checks, archive acquisition, the streaming TMX walk, sentence
// validation, buffering and quota-bounded aligned writes.
package extractor

import (
	"compress/gzip"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/valpere/opusfetch/internal"
	"github.com/valpere/opusfetch/internal/fetch"
	"github.com/valpere/opusfetch/internal/tmx"
)

// DefaultLineWriteLen is the number of buffered pairs that triggers a
// write to the output files.
const DefaultLineWriteLen = 300000

// Catalog answers which corpora and languages the remote catalog knows.
type Catalog interface {
	Corpora(ctx context.Context) ([]string, error)
	Languages(ctx context.Context, corpus, source string) ([]string, error)
}

// ArchiveSource resolves and fetches compressed TMX archives.
type ArchiveSource interface {
	ResolveDownloadURL(ctx context.Context, corpus, source, target string) (string, error)
	Download(ctx context.Context, url, dest string, progress fetch.ProgressFunc) error
}

// PairValidator decides whether a sentence is acceptable output for a
// language.
type PairValidator interface {
	IsValid(text, lang string) bool
}

type Config struct {
	Corpus     string
	AllCorpora bool
	SourceLang string
	TargetLang string
	DataDir    string

	// LineWriteLen is the flush chunk size; buffered pairs are written
	// whenever the buffer reaches a multiple of it.
	LineWriteLen int

	// MaxLines caps the total number of line pairs written across all
	// corpora of the run. Zero or negative means no limit.
	MaxLines int

	// KeepFormerOutputFiles appends to pre-existing output files
	// instead of deleting them before the run.
	KeepFormerOutputFiles bool

	// Progress, when set, receives archive download progress.
	Progress fetch.ProgressFunc
}

// Result is the outcome of one corpus's extraction.
type Result struct {
	Corpus       string
	LinesWritten int
	Status       string
	Err          error
}

type Extractor struct {
	catalog   Catalog
	archives  ArchiveSource
	validator PairValidator
	log       *slog.Logger
	cfg       Config
}

func New(catalog Catalog, archives ArchiveSource, validator PairValidator, log *slog.Logger, cfg Config) *Extractor {
	if log == nil {
		log = slog.Default()
	}
	if cfg.LineWriteLen <= 0 {
		cfg.LineWriteLen = DefaultLineWriteLen
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}
	return &Extractor{
		catalog:   catalog,
		archives:  archives,
		validator: validator,
		log:       log,
		cfg:       cfg,
	}
}

// Run extracts the configured corpus, or every corpus the catalog
// offers in all-corpora mode. Corpora are processed sequentially in
// catalog order; a failing corpus is reported in its Result and does
// not stop the remaining ones. The returned error covers only failures
// that prevent the run as a whole (unknown corpus, unreachable catalog,
// unremovable output files).
func (e *Extractor) Run(ctx context.Context) ([]Result, error) {
	if err := os.MkdirAll(e.cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	corpora := []string{e.cfg.Corpus}
	if e.cfg.AllCorpora {
		var err error
		corpora, err = e.catalog.Corpora(ctx)
		if err != nil {
			return nil, fmt.Errorf("list corpora: %w", err)
		}
		if len(corpora) == 0 {
			return nil, fmt.Errorf("catalog returned no corpora")
		}
	} else {
		known, err := e.catalog.Corpora(ctx)
		if err != nil {
			return nil, fmt.Errorf("list corpora: %w", err)
		}
		if !slices.Contains(known, e.cfg.Corpus) {
			return nil, fmt.Errorf("unknown corpus %q, must be one of: %s",
				e.cfg.Corpus, strings.Join(known, ", "))
		}
	}

	srcPath, tgtPath := e.outputPaths()
	if e.cfg.KeepFormerOutputFiles {
		e.log.Info("appending to existing output files", "source", srcPath, "target", tgtPath)
	} else {
		e.log.Info("deleting pre-existing output files", "source", srcPath, "target", tgtPath)
		for _, p := range []string{srcPath, tgtPath} {
			if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
				return nil, fmt.Errorf("remove former output file: %w", err)
			}
		}
	}

	total := newQuota(e.cfg.MaxLines)
	results := make([]Result, 0, len(corpora))

	for _, corpus := range corpora {
		if total.exhausted() {
			e.log.Info("quota exhausted, skipping corpus", "corpus", corpus)
			results = append(results, Result{Corpus: corpus, Status: internal.RunSkipped})
			continue
		}

		written, err := e.extractCorpus(ctx, corpus, total.sub(len(corpora)), srcPath, tgtPath)
		total.consume(written)

		res := Result{Corpus: corpus, LinesWritten: written, Status: internal.RunCompleted}
		if err != nil {
			res.Status = internal.RunFailed
			res.Err = err
			e.log.Error("corpus extraction failed", "corpus", corpus, "error", err)
		}
		results = append(results, res)
	}

	return results, nil
}

// OutputPaths returns the two aligned output files of the run: one per
// language, named after the corpus, or after "all" in all-corpora mode
// so a single aligned pair of files spans every corpus.
func (e *Extractor) OutputPaths() (source, target string) {
	return e.outputPaths()
}

func (e *Extractor) outputPaths() (string, string) {
	label := e.cfg.Corpus
	if e.cfg.AllCorpora {
		label = "all"
	}
	return filepath.Join(e.cfg.DataDir, fmt.Sprintf("%s_%s.txt", label, e.cfg.SourceLang)),
		filepath.Join(e.cfg.DataDir, fmt.Sprintf("%s_%s.txt", label, e.cfg.TargetLang))
}

// extractCorpus runs the per-corpus state machine: catalog check,
// archive acquisition, the streaming walk with validation and buffered
// writes, and the final flush of the sub-chunk remainder.
func (e *Extractor) extractCorpus(ctx context.Context, corpus string, q *quota, srcPath, tgtPath string) (int, error) {
	src, tgt := e.cfg.SourceLang, e.cfg.TargetLang

	languages, err := e.catalog.Languages(ctx, corpus, "")
	if err != nil {
		return 0, fmt.Errorf("list languages for %s: %w", corpus, err)
	}
	if !slices.Contains(languages, src) {
		return 0, fmt.Errorf("source language %q not in corpus %s, must be one of: %s",
			src, corpus, strings.Join(languages, ", "))
	}

	targets, err := e.catalog.Languages(ctx, corpus, src)
	if err != nil {
		return 0, fmt.Errorf("list target languages for %s: %w", corpus, err)
	}
	if !slices.Contains(targets, tgt) {
		return 0, fmt.Errorf("target language %q not paired with %q in corpus %s, must be one of: %s",
			tgt, src, corpus, strings.Join(targets, ", "))
	}

	archive := filepath.Join(e.cfg.DataDir, fmt.Sprintf("%s_%s-%s.tmx.gz", corpus, src, tgt))
	if err := e.ensureArchive(ctx, corpus, archive); err != nil {
		return 0, err
	}

	f, err := os.Open(archive)
	if err != nil {
		return 0, fmt.Errorf("open archive %s: %w", archive, err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return 0, fmt.Errorf("decompress %s: %w", archive, err)
	}
	defer zr.Close()

	w := newPairWriter(srcPath, tgtPath, e.cfg.LineWriteLen, q)

	var writeErr error
	err = tmx.Walk(zr, e.log, func(u tmx.Unit) bool {
		if q.exhausted() {
			return false
		}

		srcText, okSrc := u.Variants[src]
		tgtText, okTgt := u.Variants[tgt]
		if !okSrc || !okTgt {
			e.log.Debug("ignoring unit with missing language", "corpus", corpus, "tuid", u.ID)
			return true
		}
		if !e.validator.IsValid(srcText, src) || !e.validator.IsValid(tgtText, tgt) {
			e.log.Debug("dropping unit failing validation", "corpus", corpus, "tuid", u.ID)
			return true
		}

		if err := w.add(pair{source: srcText, target: tgtText}); err != nil {
			writeErr = err
			return false
		}
		return !q.exhausted()
	})
	if err != nil {
		return w.written, fmt.Errorf("stream %s: %w", archive, err)
	}
	if writeErr != nil {
		return w.written, writeErr
	}

	// Remainder smaller than the chunk size.
	if err := w.flush(); err != nil {
		return w.written, err
	}

	e.log.Info("corpus extracted", "corpus", corpus, "lines", w.written)
	return w.written, nil
}

// ensureArchive downloads the archive unless it is already on disk.
// Presence is the only cache check; an existing file is never fetched
// again.
func (e *Extractor) ensureArchive(ctx context.Context, corpus, archive string) error {
	if _, err := os.Stat(archive); err == nil {
		e.log.Info("using cached archive", "corpus", corpus, "path", archive)
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat archive %s: %w", archive, err)
	}

	url, err := e.archives.ResolveDownloadURL(ctx, corpus, e.cfg.SourceLang, e.cfg.TargetLang)
	if err != nil {
		return fmt.Errorf("resolve archive for %s: %w", corpus, err)
	}

	e.log.Info("fetching archive", "corpus", corpus, "url", url)
	if err := e.archives.Download(ctx, url, archive, e.cfg.Progress); err != nil {
		return fmt.Errorf("download archive for %s: %w", corpus, err)
	}
	return nil
}
