package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	cl "immotycoon/internal/cli"
	"immotycoon/internal/game"

	"github.com/fatih/color"
)

var (
	stdinReader = bufio.NewReader(os.Stdin)
	accent      = color.New(color.FgCyan, color.Bold)
	success     = color.New(color.FgGreen, color.Bold)
	warn        = color.New(color.FgYellow, color.Bold)
	danger      = color.New(color.FgRed, color.Bold)
	neutral     = color.New(color.FgHiWhite)
)

func printSuccess(msg string) {
	success.Println(msg)
}

func printWarn(msg string) {
	warn.Println(msg)
}

func printInfo(msg string) {
	neutral.Println(msg)
}

func promptOptional(label string) (string, error) {
	fmt.Printf("%s: ", label)
	text, err := stdinReader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func promptChoice(label string, options []string, defaultValue string) (string, error) {
	normalized := make(map[string]struct{}, len(options))
	for _, opt := range options {
		normalized[strings.ToLower(strings.TrimSpace(opt))] = struct{}{}
	}
	for {
		fmt.Printf("%s (%s) [%s]: ", label, strings.Join(options, "/"), defaultValue)
		text, err := stdinReader.ReadString('\n')
		if err != nil {
			return "", err
		}
		text = strings.ToLower(strings.TrimSpace(text))
		if text == "" {
			text = strings.ToLower(strings.TrimSpace(defaultValue))
		}
		if _, ok := normalized[text]; ok {
			return text, nil
		}
		printWarn("Invalid option. Please pick one of the listed values.")
	}
}

func renderDashboard(st game.State) {
	accent.Printf("\n== IMMOTYCOON (Day %d, Week %d) ==\n", st.Day, st.Week)
	fmt.Printf("Cash:            %s\n", comma(st.Cash))
	fmt.Printf("Monthly income:  %s\n", comma(st.MonthlyIncome))
	fmt.Printf("Portfolio:       %d properties\n", len(st.Portfolio))
	fmt.Printf("On the market:   %d properties\n", len(st.Market))

	fmt.Println()
	accent.Println("Event log")
	if len(st.EventLog) == 0 {
		printInfo("Nothing has happened yet.")
	}
	for _, ev := range st.EventLog {
		line := fmt.Sprintf("#%-4d %s", ev.ID, ev.Message)
		switch ev.Category {
		case game.EventPositive:
			success.Println(line)
		case game.EventNegative:
			danger.Println(line)
		default:
			neutral.Println(line)
		}
	}
	fmt.Println()
}

func renderMarket(st game.State) {
	accent.Println("\nFor sale")
	if len(st.Market) == 0 {
		printInfo("The market is empty.")
		return
	}
	fmt.Printf("%-5s %-24s %10s %6s %10s %8s\n", "ID", "NAME", "PRICE", "COND", "RENOV", "RENT")
	for _, p := range st.Market {
		fmt.Printf("%-5d %-24s %10s %5d%% %10s %8s\n",
			p.ID, truncate(p.Name, 24), comma(p.PurchasePrice), p.Condition, comma(p.RenovationCost), comma(p.PotentialRent))
	}
	fmt.Println()
}

func renderPortfolio(st game.State) {
	accent.Println("\nPortfolio")
	if len(st.Portfolio) == 0 {
		printInfo("You own nothing yet. Try `immo market`.")
		return
	}
	fmt.Printf("%-5s %-24s %-11s %6s %10s %8s %-22s\n", "ID", "NAME", "STATUS", "COND", "INVESTED", "RENT", "TENANT")
	for _, p := range st.Portfolio {
		tenant := "-"
		rent := comma(p.PotentialRent)
		if p.Tenant != nil {
			tenant = fmt.Sprintf("%s (%d%%)", p.Tenant.Name, p.Tenant.RentOfferPct)
			rent = comma(game.EffectiveRent(p, false, 0))
		}
		fmt.Printf("%-5d %-24s %-11s %5d%% %10s %8s %-22s\n",
			p.ID, truncate(p.Name, 24), string(p.Status), p.Condition, comma(p.Invested), rent, truncate(tenant, 22))
	}
	fmt.Println()
}

func renderCandidates(candidates []game.Tenant) {
	accent.Println("\nTenant offers")
	fmt.Printf("%-6s %-24s %-13s %7s %5s %9s\n", "ID", "NAME", "CATEGORY", "OFFER", "RISK", "MIN COND")
	for _, t := range candidates {
		fmt.Printf("%-6d %-24s %-13s %6d%% %5d %8d%%\n",
			t.ID, truncate(t.Name, 24), string(t.Category), t.RentOfferPct, t.Risk, t.MinCondition)
	}
	fmt.Println()
}

func renderUpgrades(st game.State) {
	accent.Println("\nUpgrades")
	fmt.Printf("%-22s %-28s %10s %-9s\n", "ID", "EFFECT", "PRICE", "OWNED")
	for _, u := range st.Upgrades {
		owned := "no"
		if u.Purchased {
			owned = "yes"
		}
		fmt.Printf("%-22s %-28s %10s %-9s\n", string(u.ID), truncate(u.Description, 28), comma(u.Price), owned)
	}
	fmt.Println()
}

func renderMonthSummary(out cl.AdvanceResponse) {
	accent.Printf("\n== Month advanced (Day %d, Week %d) ==\n", out.Summary.Day, out.Summary.Week)
	if out.Summary.Income > 0 {
		success.Printf("Rent collected: +%s\n", comma(out.Summary.Income))
	} else {
		printInfo("No rental income this month.")
	}
	if out.Summary.AutoRenovatedID != 0 {
		printInfo(fmt.Sprintf("Construction manager worked on property %d.", out.Summary.AutoRenovatedID))
	}
	if ev := out.Summary.Event; ev != nil {
		switch ev.Category {
		case game.EventPositive:
			success.Println(ev.Message)
		case game.EventNegative:
			danger.Println(ev.Message)
		default:
			neutral.Println(ev.Message)
		}
	}
	fmt.Printf("Cash: %s\n\n", comma(out.State.Cash))
}

func comma(v int64) string {
	s := strconv.FormatInt(v, 10)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	if len(s) > 3 {
		var b strings.Builder
		pre := len(s) % 3
		if pre > 0 {
			b.WriteString(s[:pre])
			if len(s) > pre {
				b.WriteByte(',')
			}
		}
		for i := pre; i < len(s); i += 3 {
			b.WriteString(s[i : i+3])
			if i+3 < len(s) {
				b.WriteByte(',')
			}
		}
		s = b.String()
	}
	if neg {
		return "-" + s
	}
	return s
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
