package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/erazemk/camorent/internal/db"
	"github.com/erazemk/camorent/internal/model"
	"github.com/erazemk/camorent/internal/store"
)

// sampleRows is how many rows per table the check command prints.
const sampleRows = 3

func newCheckCommand(flags *overrides) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Print row counts and sample rows from the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}

			database, err := db.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer database.Close()

			if err := db.EnsureSchema(database); err != nil {
				return fmt.Errorf("ensuring database schema: %w", err)
			}
			return check(cmd.Context(), cmd.OutOrStdout(), database)
		},
	}
}

func check(ctx context.Context, out io.Writer, database *sql.DB) error {
	counts := make([][]string, 0, len(db.Tables))
	for _, table := range db.Tables {
		n, err := store.CountRows(ctx, database, table)
		if err != nil {
			return err
		}
		counts = append(counts, []string{table, strconv.Itoa(n)})
	}
	fmt.Fprintln(out, renderTable("Tables", []string{"Table", "Rows"}, counts, []columnAlignment{alignLeft, alignRight}))

	users, err := store.ListUsers(ctx, database, sampleRows)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{u.ID, u.Email, u.Name, formatTime(u.CreatedAt)})
	}
	fmt.Fprintln(out, renderTable("users", []string{"ID", "Email", "Name", "Created"}, rows, nil))

	skus, err := store.ListSKUs(ctx, database, model.SKUFilter{})
	if err != nil {
		return err
	}
	rows = nil
	for _, s := range skus[:min(len(skus), sampleRows)] {
		rows = append(rows, []string{s.ID, s.Name, s.Category, s.PricePerDay.String(), strconv.FormatBool(s.IsActive)})
	}
	fmt.Fprintln(out, renderTable("skus", []string{"ID", "Name", "Category", "Per day", "Active"}, rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft}))

	items, err := store.ListInventory(ctx, database, model.InventoryFilter{})
	if err != nil {
		return err
	}
	rows = nil
	for _, it := range items[:min(len(items), sampleRows)] {
		rows = append(rows, []string{it.ID, it.SKUID, it.Barcode, it.Condition, it.Status})
	}
	fmt.Fprintln(out, renderTable("inventory", []string{"ID", "SKU", "Barcode", "Condition", "Status"}, rows, nil))

	return nil
}

func formatTime(t time.Time) string {
	return t.Local().Format(time.DateTime)
}
