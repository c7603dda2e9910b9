package cli

import (
	"context"
	"fmt"
	"log"
)

// Earnings prints the earnings summary and, when a period argument is
// given (e.g. "2026-08"), the payout history for that period.
func (a *App) Earnings(ctx context.Context, args []string) error {
	summary, err := a.earningsService.Summary(ctx)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Printf("Total: %.2f %s  Pending: %.2f  Paid out: %.2f  This month: %.2f\n",
		summary.Total, summary.Currency, summary.Pending, summary.PaidOut, summary.ThisMonth)

	period := ""
	if len(args) > 0 {
		period = args[0]
	}

	entries, err := a.earningsService.History(ctx, period)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	for _, e := range entries {
		fmt.Printf("%s  %-30s %.2f %s  [%s]\n", e.ID, e.JobTitle, e.Amount, e.Currency, e.Status)
	}
	return nil
}
