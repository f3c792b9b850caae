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

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/valpere/opusfetch/internal/opusapi"
)

var (
	langCorpus string
	langSource string
)

var corporaCmd = &cobra.Command{
	Use:   "corpora",
	Short: "List corpora known to the OPUS catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := opusapi.NewClient(viper.GetString("api-url"))

		corpora, err := client.Corpora(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list corpora: %w", err)
		}

		for _, name := range corpora {
			fmt.Println(name)
		}
		return nil
	},
}

var corporaLanguagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List languages available for a corpus",
	Long: `List the language codes a corpus offers. With --source, list only the
codes that pair with the given source language.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := opusapi.NewClient(viper.GetString("api-url"))

		languages, err := client.Languages(context.Background(), langCorpus, langSource)
		if err != nil {
			return fmt.Errorf("failed to list languages for %s: %w", langCorpus, err)
		}

		for _, code := range languages {
			fmt.Println(code)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(corporaCmd)
	corporaCmd.AddCommand(corporaLanguagesCmd)

	corporaLanguagesCmd.Flags().StringVarP(&langCorpus, "corpus", "c", "ParaCrawl", "Corpus to query")
	corporaLanguagesCmd.Flags().StringVarP(&langSource, "source", "s", "", "Source language to pair with")
}
