package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	gameQueries "github.com/LeonIngman/LTH-Game-sub001/internal/application/game/queries"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/inventory"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/level"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
)

// NewLevelCommand creates the level command with subcommands
func NewLevelCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "level",
		Short: "Browse level definitions",
		Long: `Browse the levels available to play.

Examples:
  lthgame level list
  lthgame level show 2
  lthgame level show 2 --tree`,
	}

	cmd.AddCommand(newLevelListCommand())
	cmd.AddCommand(newLevelShowCommand())

	return cmd
}

func newLevelListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List levels",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(func(ctx context.Context, e *engine) error {
				resp, err := e.send(ctx, &gameQueries.ListLevelsQuery{})
				if err != nil {
					return err
				}
				result := resp.(*gameQueries.ListLevelsResponse)

				out := cmd.OutOrStdout()
				if jsonOutput {
					return printJSON(out, result.Levels)
				}

				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tName\tDays\tInitial Cash\tMax Score")
				for _, l := range result.Levels {
					fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%d\n", l.ID, l.Name, l.DaysToComplete, formatMoney(l.InitialCash), l.MaxScore)
				}
				return w.Flush()
			})
		},
	}
}

func newLevelShowCommand() *cobra.Command {
	var tree bool

	cmd := &cobra.Command{
		Use:   "show <level-id>",
		Short: "Show a level's suppliers, customers and costs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			levelID, err := parseLevelArg(args[0])
			if err != nil {
				return err
			}

			return withEngine(func(ctx context.Context, e *engine) error {
				resp, err := e.send(ctx, &gameQueries.GetLevelQuery{LevelID: levelID})
				if err != nil {
					return err
				}
				cfg := resp.(*level.Config)

				out := cmd.OutOrStdout()
				if jsonOutput {
					return printJSON(out, cfg)
				}
				if tree {
					fmt.Fprint(out, NewTreeFormatter(false).FormatTree(BuildSupplyChainTree(cfg, nil)))
					return nil
				}
				displayLevel(out, cfg)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&tree, "tree", false, "Render the supply chain as a tree")

	return cmd
}

func displayLevel(out io.Writer, cfg *level.Config) {
	fmt.Fprintf(out, "\nLEVEL %d: %s\n", cfg.ID.Int(), cfg.Name)
	if cfg.Description != "" {
		fmt.Fprintf(out, "%s\n", cfg.Description)
	}
	fmt.Fprintln(out, "─────────────────────────────────────────────────────────────────────────────")
	fmt.Fprintf(out, "Days:             %d\n", cfg.DaysToComplete)
	fmt.Fprintf(out, "Initial cash:     %s\n", formatMoney(cfg.InitialCash))
	fmt.Fprintf(out, "Production cost:  %s per meal\n", formatMoney(cfg.ProductionCostPerUnit))
	fmt.Fprintf(out, "Target profit:    %s (max score %d)\n", formatMoney(cfg.Scoring.TargetProfit), cfg.Scoring.MaxScore)
	fmt.Fprintf(out, "Tier policy:      %s\n", cfg.TierPolicy)

	fmt.Fprintln(out, "\nSUPPLIERS")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMaterial\tBase Price\tTiers\tCapacity\tLead Time")
	for _, s := range cfg.Suppliers {
		for _, m := range inventory.RawMaterials() {
			offer, ok := s.Offer(m)
			if !ok {
				continue
			}
			capacity := "unlimited"
			if offer.Capacity > 0 {
				capacity = strconv.Itoa(offer.Capacity)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%d\n", s.ID, m, formatMoney(offer.BasePrice), len(offer.PriceTiers), capacity, s.LeadTime)
		}
	}
	w.Flush()

	fmt.Fprintln(out, "\nCUSTOMERS")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPrice\tLead Time\tMinimum\tRequirement")
	for _, c := range cfg.Customers {
		requirement := "unlimited"
		if c.TotalRequirement > 0 {
			requirement = strconv.Itoa(c.TotalRequirement)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", c.ID, formatMoney(c.PricePerUnit), c.LeadTime, c.MinimumDelivery, requirement)
	}
	w.Flush()

	if len(cfg.DeliveryOptions) > 0 {
		fmt.Fprintln(out, "\nDELIVERY OPTIONS")
		for _, o := range cfg.DeliveryOptions {
			fmt.Fprintf(out, "  %-12s lead time %+d days, transport x%.2f\n", o.ID, o.LeadTimeDelta, o.CostMultiplier)
		}
	}
	fmt.Fprintln(out)
}

func parseLevelArg(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid level id %q", raw)
	}
	if _, err := shared.NewLevelID(id); err != nil {
		return 0, err
	}
	return id, nil
}
