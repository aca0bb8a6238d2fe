package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"meezy.GO/config"
	"meezy.GO/service/backend"
)

var statsCmd = &cobra.Command{
	Use:   "stats:daily",
	Short: "Print today's sales totals from the commerce backend",
	Run: func(cmd *cobra.Command, args []string) {
		client := backend.NewClient(config.AppConfig.BackendURL)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		daily, err := client.DailyStats(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "stats: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Date:         %s\n", daily.Date)
		fmt.Printf("Orders:       %d\n", daily.TotalOrders)
		fmt.Printf("Total sales:  %.2f\n", daily.TotalSales)
		fmt.Printf("Cash sales:   %.2f\n", daily.CashSales)
		fmt.Printf("POS sales:    %.2f\n", daily.PosSales)
		if len(daily.PaymentBreakdown) > 0 {
			fmt.Println("Breakdown:")
			for method, bucket := range daily.PaymentBreakdown {
				fmt.Printf("  %-8s %3d orders  %10.2f\n", method, bucket.Count, bucket.Amount)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
