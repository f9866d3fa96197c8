package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	cl "immotycoon/internal/cli"
	"immotycoon/internal/config"

	"github.com/spf13/cobra"
)

func main() {
	cfg := config.LoadCLIFromEnv()
	apiBase := cfg.APIBaseURL

	root := &cobra.Command{
		Use:          "immo",
		Short:        "ImmoTycoon CLI game client",
		SilenceUsage: true,
	}

	root.AddCommand(
		newDashCmd(&apiBase),
		newMarketCmd(&apiBase),
		newPortfolioCmd(&apiBase),
		newBuyCmd(&apiBase),
		newRenovateCmd(&apiBase),
		newTenantsCmd(&apiBase),
		newSellCmd(&apiBase),
		newUpgradesCmd(&apiBase),
		newAdvanceCmd(&apiBase),
		newNewGameCmd(&apiBase),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newClient(apiBase *string) *cl.Client {
	return cl.NewClient(strings.TrimRight(strings.TrimSpace(*apiBase), "/"))
}

func cmdContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), 30*time.Second)
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func newDashCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "dash",
		Short: "Show cash, clock, income and the event log",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).State(ctx)
			if err != nil {
				return err
			}
			renderDashboard(out.State)
			return nil
		},
	}
}

func newMarketCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "market",
		Short: "List properties for sale",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).State(ctx)
			if err != nil {
				return err
			}
			renderMarket(out.State)
			return nil
		},
	}
}

func newPortfolioCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "portfolio",
		Short: "List owned properties",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).State(ctx)
			if err != nil {
				return err
			}
			renderPortfolio(out.State)
			return nil
		},
	}
}

func newBuyCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "buy <property-id>",
		Short: "Buy a property off the market",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).BuyProperty(ctx, id)
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Bought property %d. Cash: %s", id, comma(out.State.Cash)))
			return nil
		},
	}
}

func newRenovateCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "renovate <property-id>",
		Short: "Renovate an owned property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).RenovateProperty(ctx, id)
			if err != nil {
				return err
			}
			for _, p := range out.State.Portfolio {
				if p.ID == id {
					printSuccess(fmt.Sprintf("Renovation started. %s is now at %d%%. Cash: %s", p.Name, p.Condition, comma(out.State.Cash)))
					return nil
				}
			}
			printSuccess("Renovation started.")
			return nil
		},
	}
}

func newTenantsCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tenants <property-id>",
		Short: "Generate tenant offers for a property and pick one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			client := newClient(apiBase)
			out, err := client.TenantCandidates(ctx, id)
			if err != nil {
				return err
			}
			renderCandidates(out.Candidates)

			choice, err := promptOptional("Tenant id to accept (empty cancels)")
			if err != nil {
				return err
			}
			if choice == "" {
				if err := client.CancelTenantSelection(ctx, id); err != nil {
					return err
				}
				printInfo("Selection cancelled.")
				return nil
			}
			tenantID, err := strconv.Atoi(choice)
			if err != nil {
				return fmt.Errorf("invalid tenant id %q", choice)
			}
			res, err := client.AssignTenant(ctx, id, tenantID)
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Tenant moved in. Monthly income: %s", comma(res.State.MonthlyIncome)))
			return nil
		},
	}
}

func newSellCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sell <property-id>",
		Short: "Sell a portfolio property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).SellProperty(ctx, id)
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Sold for %s. Cash: %s", comma(out.SalePrice), comma(out.State.Cash)))
			return nil
		},
	}
}

func newUpgradesCmd(apiBase *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upgrades",
		Short: "List upgrades",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).State(ctx)
			if err != nil {
				return err
			}
			renderUpgrades(out.State)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "buy <upgrade-id>",
		Short: "Buy an upgrade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).BuyUpgrade(ctx, strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Upgrade purchased. Cash: %s", comma(out.State.Cash)))
			return nil
		},
	})
	return cmd
}

func newAdvanceCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "advance",
		Short: "Advance the game by one month",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).AdvanceMonth(ctx)
			if err != nil {
				return err
			}
			renderMonthSummary(out)
			return nil
		},
	}
}

func newNewGameCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Start a new game (wipes the save)",
		RunE: func(cmd *cobra.Command, args []string) error {
			confirm, err := promptChoice("Wipe the current save and start over?", []string{"yes", "no"}, "no")
			if err != nil {
				return err
			}
			if confirm != "yes" {
				printInfo("Aborted.")
				return nil
			}
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).NewGame(ctx)
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("New game started with %s cash.", comma(out.State.Cash)))
			return nil
		},
	}
}
