package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/LeonIngman/LTH-Game-sub001/internal/application/ledger/queries"
)

// NewLedgerCommand creates the ledger command with subcommands
func NewLedgerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Financial ledger operations",
		Long: `View and analyze the cash movements of a game session.

Every processed day posts its revenue and costs to the ledger. Use these
commands to view transaction history and generate financial reports.

Examples:
  lthgame ledger list --limit 20
  lthgame ledger list --category COSTS_OF_GOODS
  lthgame ledger report profit-loss --from-day 1 --to-day 5
  lthgame ledger report cash-flow --group-by day`,
	}

	// Add subcommands
	cmd.AddCommand(newLedgerListCommand())
	cmd.AddCommand(newLedgerReportCommand())

	return cmd
}

// newLedgerListCommand creates the ledger list subcommand
func newLedgerListCommand() *cobra.Command {
	var (
		fromDay  int
		toDay    int
		category string
		txType   string
		limit    int
		offset   int
		orderBy  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		Long: `List ledger transactions with optional filtering.

Categories:
  COSTS_OF_GOODS  - Raw material purchases and production
  LOGISTICS       - Supplier shipments
  OPERATIONS      - Holding costs
  PENALTIES       - Overstock penalties
  REVENUE         - Net revenue from delivered customer orders
  ADJUSTMENTS     - Costs written off at zero cash

Transaction Types:
  MATERIAL_PURCHASE, SUPPLIER_TRANSPORT, PRODUCTION, HOLDING,
  OVERSTOCK, SALES_REVENUE, UNCOVERED_COST_WRITE_OFF`,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, levelID, err := resolveSession()
			if err != nil {
				return err
			}

			query := &queries.GetTransactionsQuery{
				UserID:  user,
				LevelID: levelID,
				FromDay: fromDay,
				ToDay:   toDay,
				Limit:   limit,
				Offset:  offset,
				OrderBy: orderBy,
			}
			if category != "" {
				query.Category = &category
			}
			if txType != "" {
				query.TransactionType = &txType
			}

			return withEngine(func(ctx context.Context, e *engine) error {
				resp, err := e.send(ctx, query)
				if err != nil {
					return fmt.Errorf("failed to query transactions: %w", err)
				}
				response := resp.(*queries.GetTransactionsResponse)

				if jsonOutput {
					return printJSON(cmd.OutOrStdout(), response)
				}
				displayTransactionList(cmd.OutOrStdout(), response)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&fromDay, "from-day", 0, "First day to include")
	cmd.Flags().IntVar(&toDay, "to-day", 0, "Last day to include")
	cmd.Flags().StringVar(&category, "category", "", "Filter by category")
	cmd.Flags().StringVar(&txType, "type", "", "Filter by transaction type")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of transactions to return")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of transactions to skip")
	cmd.Flags().StringVar(&orderBy, "order-by", "day ASC", "Sort order (day ASC or day DESC)")

	return cmd
}

// newLedgerReportCommand creates the ledger report command group
func newLedgerReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate financial reports",
		Long: `Generate profit & loss and cash flow reports over a range of days.

Examples:
  lthgame ledger report profit-loss --from-day 1 --to-day 10
  lthgame ledger report cash-flow --group-by day`,
	}

	cmd.AddCommand(newLedgerProfitLossCommand())
	cmd.AddCommand(newLedgerCashFlowCommand())

	return cmd
}

// newLedgerProfitLossCommand creates the profit & loss report subcommand
func newLedgerProfitLossCommand() *cobra.Command {
	var fromDay, toDay int

	cmd := &cobra.Command{
		Use:   "profit-loss",
		Short: "Generate profit & loss statement",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, levelID, err := resolveSession()
			if err != nil {
				return err
			}

			return withEngine(func(ctx context.Context, e *engine) error {
				resp, err := e.send(ctx, &queries.GetProfitLossQuery{
					UserID:  user,
					LevelID: levelID,
					FromDay: fromDay,
					ToDay:   toDay,
				})
				if err != nil {
					return fmt.Errorf("failed to generate P&L report: %w", err)
				}
				response := resp.(*queries.GetProfitLossResponse)

				if jsonOutput {
					return printJSON(cmd.OutOrStdout(), response)
				}
				displayProfitLoss(cmd.OutOrStdout(), sessionLabel(user, levelID), response)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&fromDay, "from-day", 0, "First day to include")
	cmd.Flags().IntVar(&toDay, "to-day", 0, "Last day to include")

	return cmd
}

// newLedgerCashFlowCommand creates the cash flow report subcommand
func newLedgerCashFlowCommand() *cobra.Command {
	var (
		fromDay int
		toDay   int
		groupBy string
	)

	cmd := &cobra.Command{
		Use:   "cash-flow",
		Short: "Generate cash flow statement",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, levelID, err := resolveSession()
			if err != nil {
				return err
			}

			return withEngine(func(ctx context.Context, e *engine) error {
				resp, err := e.send(ctx, &queries.GetCashFlowQuery{
					UserID:  user,
					LevelID: levelID,
					FromDay: fromDay,
					ToDay:   toDay,
					GroupBy: groupBy,
				})
				if err != nil {
					return fmt.Errorf("failed to generate cash flow report: %w", err)
				}
				response := resp.(*queries.GetCashFlowResponse)

				if jsonOutput {
					return printJSON(cmd.OutOrStdout(), response)
				}
				displayCashFlow(cmd.OutOrStdout(), sessionLabel(user, levelID), response)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&fromDay, "from-day", 0, "First day to include")
	cmd.Flags().IntVar(&toDay, "to-day", 0, "Last day to include")
	cmd.Flags().StringVar(&groupBy, "group-by", "category", "Group by (category or day)")

	return cmd
}

// displayTransactionList formats and displays transaction list
func displayTransactionList(out io.Writer, response *queries.GetTransactionsResponse) {
	if len(response.Transactions) == 0 {
		fmt.Fprintln(out, "No transactions found")
		return
	}

	fmt.Fprintf(out, "\nTRANSACTIONS (Showing %d of %d total)\n", len(response.Transactions), response.Total)
	fmt.Fprintln(out, "─────────────────────────────────────────────────────────────────────────────")

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Day\tType\tCategory\tAmount\tBalance")
	fmt.Fprintln(w, "───\t────\t────────\t──────\t───────")

	for _, tx := range response.Transactions {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			tx.Day,
			tx.Type,
			tx.Category,
			formatSigned(tx.Amount),
			formatMoney(tx.BalanceAfter),
		)
	}

	w.Flush()
	fmt.Fprintln(out, "─────────────────────────────────────────────────────────────────────────────")
	fmt.Fprintf(out, "Total: %d transactions\n\n", response.Total)
}

// displayProfitLoss formats and displays P&L report
func displayProfitLoss(out io.Writer, session string, response *queries.GetProfitLossResponse) {
	fmt.Fprintf(out, "\nPROFIT & LOSS STATEMENT (%s)\n", session)
	fmt.Fprintf(out, "Period: %s\n", response.Period)
	fmt.Fprintln(out, "─────────────────────────────────────────────────────────────────────────────")

	fmt.Fprintln(out, "\nREVENUE")
	for _, category := range sortedKeys(response.RevenueBreakdown) {
		fmt.Fprintf(out, "  %-25s %s\n", category+":", formatMoney(response.RevenueBreakdown[category]))
	}
	fmt.Fprintln(out, "                          ─────────────")
	fmt.Fprintf(out, "  %-25s %s\n", "Total Revenue:", formatMoney(response.TotalRevenue))

	fmt.Fprintln(out, "\nEXPENSES")
	for _, category := range sortedKeys(response.ExpenseBreakdown) {
		fmt.Fprintf(out, "  %-25s %s\n", category+":", formatMoney(-response.ExpenseBreakdown[category]))
	}
	fmt.Fprintln(out, "                          ─────────────")
	fmt.Fprintf(out, "  %-25s %s\n", "Total Expenses:", formatMoney(-response.TotalExpenses))

	fmt.Fprintln(out, "\n═════════════════════════════════════════════════════════════════════════════")
	fmt.Fprintf(out, "  %-25s %s\n\n", "NET PROFIT:", formatSigned(response.NetProfit))
}

// displayCashFlow formats and displays cash flow report
func displayCashFlow(out io.Writer, session string, response *queries.GetCashFlowResponse) {
	fmt.Fprintf(out, "\nCASH FLOW STATEMENT (%s)\n", session)
	fmt.Fprintf(out, "Period: %s\n", response.Period)
	fmt.Fprintln(out, "─────────────────────────────────────────────────────────────────────────────")

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Group\tInflow\tOutflow\tNet\tTransactions")

	totalIn, totalOut := 0.0, 0.0
	for _, g := range response.Groups {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
			g.Key,
			formatMoney(g.TotalInflow),
			formatMoney(g.TotalOutflow),
			formatSigned(g.NetFlow),
			g.Transactions,
		)
		totalIn += g.TotalInflow
		totalOut += g.TotalOutflow
	}
	w.Flush()

	fmt.Fprintln(out, "═════════════════════════════════════════════════════════════════════════════")
	fmt.Fprintf(out, "  Net cash flow: %s\n\n", formatSigned(totalIn-totalOut))
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
