package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	gameCommands "github.com/LeonIngman/LTH-Game-sub001/internal/application/game/commands"
	gameQueries "github.com/LeonIngman/LTH-Game-sub001/internal/application/game/queries"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/game"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/inventory"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
)

// NewGameCommand creates the game command with subcommands
func NewGameCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Play a level",
		Long: `Start a level and advance it one day at a time.

Each day takes any number of supplier orders (--buy supplier:material:quantity),
a production quantity (--produce) and any number of customer orders
(--sell customer:quantity). Costs must be covered by the cash on hand.

Examples:
  lthgame game start --user team-7 --level 0
  lthgame game advance --buy bakery:bun:20 --produce 10 --sell campus-diner:10
  lthgame game advance --buy meat-market:patty:50 --delivery express --dry-run
  lthgame game status --tree`,
	}

	cmd.AddCommand(newGameStartCommand())
	cmd.AddCommand(newGameStatusCommand())
	cmd.AddCommand(newGameAdvanceCommand())

	return cmd
}

func newGameStartCommand() *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a level, or resume the session in progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, levelID, err := resolveSession()
			if err != nil {
				return err
			}

			return withEngine(func(ctx context.Context, e *engine) error {
				resp, err := e.send(ctx, &gameCommands.StartGameCommand{UserID: user, LevelID: levelID, Reset: reset})
				if err != nil {
					return err
				}
				result := resp.(*gameCommands.StartGameResponse)

				out := cmd.OutOrStdout()
				if jsonOutput {
					return printJSON(out, result.Session.State)
				}
				if result.Created {
					fmt.Fprintf(out, "✓ Started level %d for %s\n", levelID, user)
				} else {
					fmt.Fprintf(out, "✓ Resumed level %d for %s on day %d\n", levelID, user, result.Session.State.Day)
				}
				displayState(out, result.Session.State)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "Discard the session in progress and start over")

	return cmd
}

func newGameStatusCommand() *cobra.Command {
	var tree bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current game state",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, levelID, err := resolveSession()
			if err != nil {
				return err
			}

			return withEngine(func(ctx context.Context, e *engine) error {
				resp, err := e.send(ctx, &gameQueries.GetSessionQuery{UserID: user, LevelID: levelID})
				if err != nil {
					return err
				}
				session := resp.(*game.Session)

				out := cmd.OutOrStdout()
				if jsonOutput {
					return printJSON(out, session.State)
				}
				displayState(out, session.State)
				if tree {
					cfg, err := e.catalog.Get(session.Key.LevelID)
					if err != nil {
						return err
					}
					fmt.Fprintln(out)
					fmt.Fprint(out, NewTreeFormatter(false).FormatTree(BuildSupplyChainTree(cfg, &session.State)))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&tree, "tree", false, "Render stock against the supply chain")

	return cmd
}

func newGameAdvanceCommand() *cobra.Command {
	var (
		buys     []string
		sells    []string
		produce  int
		delivery string
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "advance",
		Short: "Process one day",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, levelID, err := resolveSession()
			if err != nil {
				return err
			}
			action, err := parseAction(buys, sells, produce, delivery)
			if err != nil {
				return err
			}

			return withEngine(func(ctx context.Context, e *engine) error {
				out := cmd.OutOrStdout()

				if dryRun {
					resp, err := e.send(ctx, &gameQueries.ValidateActionQuery{UserID: user, LevelID: levelID, Action: action})
					if err != nil {
						return err
					}
					result := resp.(*game.AffordabilityResult)
					if jsonOutput {
						return printJSON(out, result)
					}
					displayAffordability(out, result)
					return nil
				}

				resp, err := e.send(ctx, &gameCommands.ProcessDayCommand{UserID: user, LevelID: levelID, Action: action})
				if err != nil {
					return err
				}
				result := resp.(*gameCommands.ProcessDayResponse)

				if jsonOutput {
					return printJSON(out, result)
				}
				displayDay(out, result.DailyResult)
				for _, warning := range result.Warnings {
					fmt.Fprintf(out, "  ⚠ %s\n", warning)
				}
				if result.GameOver && result.Result != nil {
					displayGameResult(out, *result.Result)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringArrayVar(&buys, "buy", nil, "Supplier order as supplier:material:quantity (repeatable)")
	cmd.Flags().StringArrayVar(&sells, "sell", nil, "Customer order as customer:quantity (repeatable)")
	cmd.Flags().IntVar(&produce, "produce", 0, "Meals to produce")
	cmd.Flags().StringVar(&delivery, "delivery", "", "Delivery option id for supplier orders")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Only check whether the day is affordable")

	return cmd
}

// parseAction builds a day's action from command line flags
func parseAction(buys, sells []string, produce int, delivery string) (game.GameAction, error) {
	action := game.GameAction{
		Production:       produce,
		DeliveryOptionID: delivery,
		SupplierOrders:   []game.SupplierOrderRequest{},
		CustomerOrders:   []game.CustomerOrderRequest{},
	}

	for _, raw := range buys {
		parts := strings.Split(raw, ":")
		if len(parts) != 3 {
			return action, fmt.Errorf("invalid --buy %q: expected supplier:material:quantity", raw)
		}
		material, err := inventory.ParseMaterial(parts[1])
		if err != nil {
			return action, fmt.Errorf("invalid --buy %q: %w", raw, err)
		}
		qty, err := strconv.Atoi(parts[2])
		if err != nil {
			return action, fmt.Errorf("invalid --buy %q: quantity must be an integer", raw)
		}
		action.SupplierOrders = append(action.SupplierOrders, game.SupplierOrderRequest{
			SupplierID: parts[0],
			Material:   material,
			Quantity:   qty,
		})
	}

	for _, raw := range sells {
		parts := strings.Split(raw, ":")
		if len(parts) != 2 {
			return action, fmt.Errorf("invalid --sell %q: expected customer:quantity", raw)
		}
		qty, err := strconv.Atoi(parts[1])
		if err != nil {
			return action, fmt.Errorf("invalid --sell %q: quantity must be an integer", raw)
		}
		action.CustomerOrders = append(action.CustomerOrders, game.CustomerOrderRequest{CustomerID: parts[0], Quantity: qty})
	}

	return action, nil
}

func displayState(out io.Writer, state game.GameState) {
	fmt.Fprintln(out, "─────────────────────────────────────────────────────────────────────────────")
	status := fmt.Sprintf("Day %d", state.Day)
	if state.GameOver {
		status = "Game over"
	}
	fmt.Fprintf(out, "%s   Cash: %s   Profit: %s   Score: %d\n",
		status, formatMoney(state.Cash), formatSigned(state.CumulativeProfit), state.Score)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nMaterial\tOn Hand\tValue")
	for _, m := range inventory.All() {
		fmt.Fprintf(w, "%s\t%d\t%s\n", m, state.Inventory.Get(m), formatMoney(state.InventoryValue.Get(m)))
	}
	w.Flush()

	if len(state.PendingSupplierOrders) > 0 || len(state.PendingCustomerOrders) > 0 {
		fmt.Fprintln(out, "\nIN TRANSIT")
		for _, o := range state.PendingSupplierOrders {
			fmt.Fprintf(out, "  %-8s %d %s from %s, arrives in %d day(s)\n", o.ID, o.Quantity, o.Material, o.SupplierID, o.DaysRemaining)
		}
		for _, o := range state.PendingCustomerOrders {
			fmt.Fprintf(out, "  %-8s %d meals to %s, delivered in %d day(s)\n", o.ID, o.Quantity, o.CustomerID, o.DaysRemaining)
		}
	}
}

func displayDay(out io.Writer, r game.DailyResult) {
	fmt.Fprintf(out, "\nDAY %d\n", r.Day)
	fmt.Fprintln(out, "─────────────────────────────────────────────────────────────────────────────")
	fmt.Fprintf(out, "  Produced:        %d meals\n", r.Production)
	fmt.Fprintf(out, "  Sold:            %d meals (%d delivered)\n", r.UnitsSold, r.UnitsDelivered)
	fmt.Fprintf(out, "  Revenue:         %s\n", formatMoney(r.Revenue))
	fmt.Fprintf(out, "  Purchases:       %s\n", formatMoney(r.Costs.Purchases))
	fmt.Fprintf(out, "  Transport:       %s\n", formatMoney(r.Costs.Transport))
	fmt.Fprintf(out, "  Production:      %s\n", formatMoney(r.Costs.Production))
	fmt.Fprintf(out, "  Holding:         %s\n", formatMoney(r.Costs.Holding))
	if r.Costs.Overstock > 0 {
		fmt.Fprintf(out, "  Overstock:       %s\n", formatMoney(r.Costs.Overstock))
	}
	fmt.Fprintf(out, "  Profit:          %s\n", formatSigned(r.Profit))
	fmt.Fprintf(out, "  Cash:            %s\n", formatMoney(r.Cash))
	fmt.Fprintf(out, "  Score:           %d\n", r.Score)
}

func displayAffordability(out io.Writer, r *game.AffordabilityResult) {
	verdict := "✓ Affordable"
	if !r.Valid {
		verdict = "✗ Not affordable"
	}
	fmt.Fprintln(out, verdict)
	fmt.Fprintf(out, "  Total cost:      %s\n", formatMoney(r.TotalCost))
	fmt.Fprintf(out, "  Available cash:  %s\n", formatMoney(r.AvailableCash))
	if !r.Valid {
		fmt.Fprintf(out, "  Shortfall:       %s (largest cost: %s)\n", formatMoney(r.Shortfall), r.Dominant)
	}
	if r.Message != "" {
		fmt.Fprintf(out, "  %s\n", r.Message)
	}
}

func displayGameResult(out io.Writer, r game.GameResult) {
	fmt.Fprintln(out, "\nGAME OVER")
	fmt.Fprintln(out, "═════════════════════════════════════════════════════════════════════════════")
	fmt.Fprintf(out, "  Final score:       %d / %d\n", r.Score, r.MaxScore)
	fmt.Fprintf(out, "  Cumulative profit: %s (target %s)\n", formatSigned(r.CumulativeProfit), formatMoney(r.TargetProfit))
	fmt.Fprintf(out, "  Inventory value:   %s\n", formatMoney(r.InventoryValue))
	fmt.Fprintf(out, "  Final cash:        %s\n", formatMoney(r.FinalCash))
	fmt.Fprintf(out, "  Days played:       %d / %d\n", r.DaysPlayed, r.DaysToComplete)
}

// sessionLabel names a session for display
func sessionLabel(user string, levelID int) string {
	key, err := shared.NewSessionKey(user, levelID)
	if err != nil {
		return fmt.Sprintf("%s/%d", user, levelID)
	}
	return key.String()
}
