package extractor

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// pair holds the raw source and target sentences of one validated unit.
// Cleaning happens at write time.
type pair struct {
	source string
	target string
}

// pairWriter buffers validated pairs and appends them to the two
// aligned output files. Every flush writes one line per pair to each
// file in buffer order, so position N in the source file always aligns
// with position N in the target file.
type pairWriter struct {
	srcPath string
	tgtPath string
	chunk   int
	q       *quota
	buf     []pair
	written int
}

func newPairWriter(srcPath, tgtPath string, chunk int, q *quota) *pairWriter {
	if chunk <= 0 {
		chunk = DefaultLineWriteLen
	}
	return &pairWriter{srcPath: srcPath, tgtPath: tgtPath, chunk: chunk, q: q}
}

// add appends a pair and flushes when the buffer reaches a chunk
// boundary or already covers the remaining quota. The second condition
// guarantees a final partial flush right before quota exhaustion
// instead of waiting for the next chunk boundary.
func (w *pairWriter) add(p pair) error {
	w.buf = append(w.buf, p)
	if len(w.buf)%w.chunk == 0 || w.q.imminent(len(w.buf)) {
		return w.flush()
	}
	return nil
}

// flush writes buffered pairs in order, stopping once the quota is
// spent. The buffer is cleared on every exit path so memory stays
// bounded even when more pairs than quota remain.
func (w *pairWriter) flush() error {
	defer func() { w.buf = w.buf[:0] }()

	if len(w.buf) == 0 || w.q.exhausted() {
		return nil
	}

	sf, err := os.OpenFile(w.srcPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open %s: %w", w.srcPath, err)
	}
	defer sf.Close()

	tf, err := os.OpenFile(w.tgtPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open %s: %w", w.tgtPath, err)
	}
	defer tf.Close()

	for _, p := range w.buf {
		if !w.q.take() {
			break
		}
		if _, err := fmt.Fprintln(sf, cleanLine(p.source)); err != nil {
			return fmt.Errorf("write %s: %w", w.srcPath, err)
		}
		if _, err := fmt.Fprintln(tf, cleanLine(p.target)); err != nil {
			return fmt.Errorf("write %s: %w", w.tgtPath, err)
		}
		w.written++
	}
	return nil
}

// cleanLine NFC-normalizes a sentence, collapses embedded line breaks
// to spaces and trims surrounding whitespace.
func cleanLine(s string) string {
	s = norm.NFC.String(s)
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.TrimSpace(s)
}
