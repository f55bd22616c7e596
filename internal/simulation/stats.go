package simulation

import (
	"fmt"
	"sort"

	"github.com/pokerlab/equitysim/pkg/models"
	"github.com/pterm/pterm"
)

// handEquity pairs a hand label with its equity at one table size.
type handEquity struct {
	label  string
	equity float64
}

// TopHands returns the n highest-equity hands for the given table size,
// sorted descending. Hands missing the table-size entry are skipped.
func TopHands(artifact *models.Artifact, numPlayers, n int) []string {
	key := fmt.Sprintf("players_%d", numPlayers)
	ranked := make([]handEquity, 0, len(artifact.Hands))
	for label, cells := range artifact.Hands {
		cell, ok := cells[key]
		if !ok {
			continue
		}
		ranked = append(ranked, handEquity{label: label, equity: cell.Equity})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].equity != ranked[j].equity {
			return ranked[i].equity > ranked[j].equity
		}
		return ranked[i].label < ranked[j].label
	})
	if n > len(ranked) {
		n = len(ranked)
	}
	labels := make([]string, n)
	for i := 0; i < n; i++ {
		labels[i] = ranked[i].label
	}
	return labels
}

// PrintSummary renders summary statistics for a generated artifact: the
// top hands heads-up and 6-max, pocket aces by table size, and the
// suited-vs-offsuit premium comparison.
func PrintSummary(artifact *models.Artifact) {
	pterm.DefaultSection.Println("Summary Statistics")

	printTopHands(artifact, 2, 10)
	printTopHands(artifact, 6, 10)
	printPocketAces(artifact)
	printSuitedVsOffsuit(artifact)
}

func printTopHands(artifact *models.Artifact, numPlayers, n int) {
	key := fmt.Sprintf("players_%d", numPlayers)
	rows := pterm.TableData{{"Rank", "Hand", "Equity"}}
	for i, label := range TopHands(artifact, numPlayers, n) {
		equity := artifact.Hands[label][key].Equity
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			label,
			fmt.Sprintf("%.2f%%", equity*100),
		})
	}
	pterm.Printf("Top %d Hands (%d players):\n", n, numPlayers)
	pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	pterm.Println()
}

func printPocketAces(artifact *models.Artifact) {
	cells, ok := artifact.Hands["AA"]
	if !ok {
		return
	}
	rows := pterm.TableData{{"Players", "Equity", "Win Rate", "Tie Rate"}}
	for n := models.MinPlayers; n <= models.MaxPlayers; n++ {
		cell, ok := cells[fmt.Sprintf("players_%d", n)]
		if !ok {
			continue
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", n),
			fmt.Sprintf("%.2f%%", cell.Equity*100),
			fmt.Sprintf("%.2f%%", cell.WinRate*100),
			fmt.Sprintf("%.2f%%", cell.TieRate*100),
		})
	}
	pterm.Println("Pocket Aces (AA) by Table Size:")
	pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	pterm.Println()
}

func printSuitedVsOffsuit(artifact *models.Artifact) {
	pairs := [][2]string{{"AKs", "AKo"}, {"AQs", "AQo"}, {"KQs", "KQo"}}
	rows := pterm.TableData{{"Hands", "Suited", "Offsuit", "Advantage"}}
	for _, pair := range pairs {
		suited, okS := artifact.Hands[pair[0]]
		offsuit, okO := artifact.Hands[pair[1]]
		if !okS || !okO {
			continue
		}
		s := suited["players_6"].Equity
		o := offsuit["players_6"].Equity
		rows = append(rows, []string{
			pair[0][:2],
			fmt.Sprintf("%.2f%%", s*100),
			fmt.Sprintf("%.2f%%", o*100),
			fmt.Sprintf("%+.2f%%", (s-o)*100),
		})
	}
	pterm.Println("Suited vs Offsuit (6 players):")
	pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	pterm.Println()
}
