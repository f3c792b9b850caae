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
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/valpere/opusfetch/internal/store"
)

var runsDBPath string

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Manage the extraction run ledger",
	Long:  `List and clear the SQLite ledger of past extraction runs.`,
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded extraction runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.New(runsDBPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		runs, err := db.ListRuns(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list runs: %w", err)
		}

		if len(runs) == 0 {
			fmt.Println("No recorded extraction runs.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CORPUS\tPAIR\tLINES\tSTATUS\tCREATED\tERROR")
		for _, r := range runs {
			errText := r.Error
			if len(errText) > 60 {
				errText = errText[:57] + "..."
			}
			fmt.Fprintf(w, "%s\t%s-%s\t%d\t%s\t%s\t%s\n",
				r.Corpus, r.SourceLang, r.TargetLang, r.LinesWritten,
				r.Status, r.Timestamp.Format("2006-01-02 15:04"), errText)
		}
		return w.Flush()
	},
}

var runsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded extraction runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.New(runsDBPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		if err := db.ClearRuns(context.Background()); err != nil {
			return fmt.Errorf("failed to clear runs: %w", err)
		}

		fmt.Println("Run ledger cleared.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsClearCmd)

	runsCmd.PersistentFlags().StringVar(&runsDBPath, "db", "./data/opusfetch.db", "Database path for the run ledger")
}
