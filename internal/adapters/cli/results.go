package cli

import (
	"context"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	gameQueries "github.com/LeonIngman/LTH-Game-sub001/internal/application/game/queries"
)

// NewResultsCommand creates the results command with subcommands
func NewResultsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "results",
		Short: "Completed level attempts",
	}

	cmd.AddCommand(newResultsListCommand())

	return cmd
}

func newResultsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List a user's completed attempts and best scores",
		Long: `List completed attempts, newest first. Pass --level to restrict to one level.

Example:
  lthgame results list --user team-7 --level 1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := resolveUser()
			if err != nil {
				return err
			}
			query := &gameQueries.ListPerformancesQuery{UserID: user}
			if levelFlag != unsetLevel {
				levelID := levelFlag
				query.LevelID = &levelID
			}

			return withEngine(func(ctx context.Context, e *engine) error {
				resp, err := e.send(ctx, query)
				if err != nil {
					return err
				}
				result := resp.(*gameQueries.ListPerformancesResponse)

				out := cmd.OutOrStdout()
				if jsonOutput {
					return printJSON(out, result)
				}
				if len(result.Performances) == 0 {
					fmt.Fprintln(out, "No completed attempts")
					return nil
				}

				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "Completed\tLevel\tScore\tProfit\tDays")
				for _, p := range result.Performances {
					fmt.Fprintf(w, "%s\t%d\t%d/%d\t%s\t%d\n",
						p.CompletedAt.Format("2006-01-02 15:04"),
						p.Result.LevelID.Int(),
						p.Result.Score,
						p.Result.MaxScore,
						formatSigned(p.Result.CumulativeProfit),
						p.Result.DaysPlayed,
					)
				}
				w.Flush()

				levels := make([]int, 0, len(result.BestScore))
				for id := range result.BestScore {
					levels = append(levels, id)
				}
				sort.Ints(levels)
				fmt.Fprintln(out, "\nBEST SCORES")
				for _, id := range levels {
					fmt.Fprintf(out, "  Level %d: %d\n", id, result.BestScore[id])
				}
				return nil
			})
		},
	}
}
