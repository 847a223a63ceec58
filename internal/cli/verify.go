package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmartlab/martgen/internal/db"
	"github.com/dmartlab/martgen/internal/warehouse"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify warehouse integrity after a load",
	Long: `Verify the loaded warehouse: row counts per table, a join-based
check that every fact row resolves to its customer, product and date
dimension rows, and a check that total_amount matches
quantity*unit_price - discount_amount on every fact row.`,
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection, 2)
	if err != nil {
		return fmt.Errorf("failed to connect to warehouse: %w", err)
	}
	defer pool.Close()

	report, err := warehouse.Verify(ctx, pool)
	if err != nil {
		return err
	}

	cmd.Println("Row counts:")
	for _, table := range []string{"date_dimension", "customers", "products", "sales_transactions"} {
		cmd.Printf("  %-20s %d\n", table, report.Counts[table])
	}
	cmd.Printf("Dangling fact references: %d\n", report.DanglingFacts)
	cmd.Printf("Amount invariant violations: %d\n", report.AmountViolations)

	if len(report.Samples) > 0 {
		cmd.Println("Sample transactions:")
		for _, s := range report.Samples {
			cmd.Printf("  %s bought %s on %s for $%.2f\n",
				s.Customer, s.Product, s.DateValue, s.Total)
		}
	}

	if !report.Ok() {
		return fmt.Errorf("warehouse verification failed: %d dangling references, %d amount violations",
			report.DanglingFacts, report.AmountViolations)
	}

	cmd.Println("Warehouse verification passed")
	return nil
}
