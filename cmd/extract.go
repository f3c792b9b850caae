/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/valpere/opusfetch/internal"
	"github.com/valpere/opusfetch/internal/extractor"
	"github.com/valpere/opusfetch/internal/fetch"
	"github.com/valpere/opusfetch/internal/opusapi"
	"github.com/valpere/opusfetch/internal/store"
	"github.com/valpere/opusfetch/internal/validator"
)

var (
	sourceLang string
	targetLang string
	corpus     string
	allCorpora bool

	lineWriteLen int
	maxLines     int
	keepFormer   bool

	dbPath   string
	noLedger bool
)

// archiveSource satisfies extractor.ArchiveSource by combining the
// catalog client's URL resolution with the streaming downloader.
type archiveSource struct {
	*opusapi.Client
	*fetch.Downloader
}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract aligned sentence pairs for a language pair",
	Long: `Extract aligned sentence pairs from one corpus, or from every corpus
the OPUS catalog offers for the language pair.

The compressed TMX archive is downloaded once and cached in the data
directory; re-runs reuse it. Sentences are validated (Latin script,
language identity, character composition) and written to two aligned
output files, one line per sentence, position N in the source file
matching position N in the target file.

Examples:
  opusfetch extract -s de -t en -c Books
  opusfetch extract -s de -t en --all-corpora -m 1000000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if allCorpora && cmd.Flags().Changed("corpus") {
			return fmt.Errorf("--corpus and --all-corpora are mutually exclusive")
		}

		logger := newLogger()
		checkLanguageCode(logger, sourceLang)
		checkLanguageCode(logger, targetLang)

		ctx := context.Background()

		client := opusapi.NewClient(viper.GetString("api-url"))
		ext := extractor.New(client, archiveSource{client, fetch.NewDownloader()}, validator.New(logger), logger, extractor.Config{
			Corpus:                corpus,
			AllCorpora:            allCorpora,
			SourceLang:            sourceLang,
			TargetLang:            targetLang,
			DataDir:               viper.GetString("data-dir"),
			LineWriteLen:          lineWriteLen,
			MaxLines:              maxLines,
			KeepFormerOutputFiles: keepFormer,
			Progress:              progressPrinter(),
		})

		results, err := ext.Run(ctx)
		if err != nil {
			return err
		}

		saveRuns(ctx, logger, results)

		var total, failed int
		for _, r := range results {
			total += r.LinesWritten
			if r.Err != nil {
				failed++
			}
		}

		srcPath, tgtPath := ext.OutputPaths()
		fmt.Printf("Extracted %d aligned line pairs to %s and %s\n", total, srcPath, tgtPath)
		if len(results) > 1 {
			fmt.Printf("Corpora processed: %d (%d failed)\n", len(results), failed)
		}

		if len(results) == 1 && results[0].Err != nil {
			return results[0].Err
		}
		if failed == len(results) {
			return fmt.Errorf("all corpora failed")
		}
		return nil
	},
}

// saveRuns records each corpus outcome in the ledger. Ledger trouble is
// never fatal to an extraction that already succeeded.
func saveRuns(ctx context.Context, logger *slog.Logger, results []extractor.Result) {
	if noLedger || dbPath == "" {
		return
	}

	db, err := store.New(dbPath)
	if err != nil {
		logger.Warn("failed to open run ledger", "path", dbPath, "error", err)
		return
	}
	defer db.Close()

	for _, r := range results {
		run := internal.ExtractionRun{
			ID:           uuid.New().String(),
			Corpus:       r.Corpus,
			SourceLang:   sourceLang,
			TargetLang:   targetLang,
			LinesWritten: r.LinesWritten,
			Status:       r.Status,
			Timestamp:    time.Now(),
		}
		if r.Err != nil {
			run.Error = r.Err.Error()
		}
		if err := db.SaveRun(ctx, run); err != nil {
			logger.Warn("failed to record run", "corpus", r.Corpus, "error", err)
		}
	}
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVarP(&sourceLang, "source", "s", "", "Source language code (required)")
	extractCmd.Flags().StringVarP(&targetLang, "target", "t", "en", "Target language code")
	extractCmd.Flags().StringVarP(&corpus, "corpus", "c", "ParaCrawl", "Corpus to extract from")
	extractCmd.Flags().BoolVar(&allCorpora, "all-corpora", false, "Extract from every corpus offering the language pair")

	extractCmd.Flags().IntVarP(&lineWriteLen, "line-write-len", "l", extractor.DefaultLineWriteLen, "Buffered pairs between writes to the output files")
	extractCmd.Flags().IntVarP(&maxLines, "max-lines", "m", 0, "Maximum aligned line pairs to write (0 = unlimited)")
	extractCmd.Flags().BoolVarP(&keepFormer, "keep-former-output-files", "k", false, "Append to pre-existing output files instead of deleting them")

	extractCmd.Flags().StringVar(&dbPath, "db", "./data/opusfetch.db", "Database path for the run ledger")
	extractCmd.Flags().BoolVar(&noLedger, "no-ledger", false, "Disable the run ledger")

	extractCmd.MarkFlagRequired("source")
}
