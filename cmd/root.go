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
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/valpere/opusfetch/internal/opusapi"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "opusfetch",
	Short: "Extract aligned sentence pairs from OPUS corpora",
	Long: `A CLI application that downloads compressed TMX translation-memory
archives from the OPUS catalog and extracts aligned sentence pairs into
two line-aligned plain-text files, one per language, suitable for
training translation models.

Use "opusfetch extract --help" for extraction options.`,
	Version: version,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("api-url", opusapi.DefaultBaseURL, "OPUS catalog API base URL")
	rootCmd.PersistentFlags().String("data-dir", "data", "Directory for archives and output files")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text or json")

	viper.BindPFlag("api-url", rootCmd.PersistentFlags().Lookup("api-url"))
	viper.BindPFlag("data-dir", rootCmd.PersistentFlags().Lookup("data-dir"))
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log-format", rootCmd.PersistentFlags().Lookup("log-format"))

	// OPUSFETCH_API_URL, OPUSFETCH_DATA_DIR, ... override flag defaults.
	viper.SetEnvPrefix("opusfetch")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}
