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
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"github.com/valpere/opusfetch/internal/fetch"
)

// newLogger builds a slog logger from the persistent log flags and
// installs it as the default.
func newLogger() *slog.Logger {
	var level slog.Level
	switch strings.ToLower(viper.GetString("log-level")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(viper.GetString("log-format"), "json") {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// checkLanguageCode warns about codes that do not parse as BCP 47 tags.
// OPUS uses a few non-standard variant codes, so this never fails hard.
func checkLanguageCode(log *slog.Logger, code string) {
	if _, err := language.Parse(code); err != nil {
		log.Warn("language code is not a standard tag", "code", code)
	}
}

// progressPrinter renders download progress as a single updating
// stderr line.
func progressPrinter() fetch.ProgressFunc {
	last := int64(-1)
	return func(received, total int64) {
		if total > 0 {
			pct := received * 100 / total
			if pct != last {
				last = pct
				fmt.Fprintf(os.Stderr, "\rfetching archive: %3d%%", pct)
			}
			if received == total {
				fmt.Fprintln(os.Stderr)
			}
			return
		}
		// Unknown size: report every mebibyte.
		if mib := received >> 20; mib != last {
			last = mib
			fmt.Fprintf(os.Stderr, "\rfetching archive: %d MiB", mib)
		}
	}
}
