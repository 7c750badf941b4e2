// Package cmd - catalog commands
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tourcost/adapters/hcl"
	"tourcost/adapters/storage"
)

var pushDSN string

// catalogCmd groups catalog maintenance commands
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Validate and publish rate catalogs",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// catalogValidateCmd parses a catalog file and reports what it holds
var catalogValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Parse a catalog file and report its contents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := hcl.LoadFile(args[0])
		if err != nil {
			return err
		}

		rates := 0
		for _, t := range doc.Tables {
			rates += len(t.Details)
		}
		fmt.Printf("%s: %d services, %d rate tables, %d rates\n",
			args[0], len(doc.Services), len(doc.Tables), rates)
		return nil
	},
}

// catalogPushCmd writes a catalog file's rate tables to Postgres
var catalogPushCmd = &cobra.Command{
	Use:   "push [file]",
	Short: "Publish a catalog file's rate tables to the database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		doc, err := hcl.LoadFile(args[0])
		if err != nil {
			return err
		}

		store, err := storage.Open(pushDSN)
		if err != nil {
			return fmt.Errorf("opening rate store: %w", err)
		}

		for _, table := range doc.Tables {
			if err := store.SaveTable(ctx, table); err != nil {
				return fmt.Errorf("saving table %s: %w", table.ID, err)
			}
		}

		fmt.Printf("published %d rate tables\n", len(doc.Tables))
		return nil
	},
}

func init() {
	catalogPushCmd.Flags().StringVar(&pushDSN, "dsn", "", "Postgres DSN (required)")
	catalogPushCmd.MarkFlagRequired("dsn")

	catalogCmd.AddCommand(catalogValidateCmd)
	catalogCmd.AddCommand(catalogPushCmd)
}
