package utils

import (
	"fmt"
	"sort"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/elC0mpa/gcp-bill-doctor/model"
	"github.com/jedib0t/go-pretty/v6/text"
)

const (
	ColorRank1 = "#d73027"
	ColorRank2 = "#f46d43"
	ColorRank3 = "#fee08b"
	ColorRank4 = "#abdda4"
	ColorRank5 = "#66c2a5"
	ColorRank6 = "#1a9850"
)

var chartStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("#F4D060"))

// DrawCostChart renders day/month cost rows as a bar chart, bars in
// chronological order, the most expensive periods in the hottest colors.
func DrawCostChart(billingAccountID string, rows []model.CostRow) {
	fmt.Printf("\n%s\n", text.FgHiWhite.Sprint(" 💰 GCP COST TREND"))
	fmt.Printf(" Billing Account: %s\n", text.FgBlue.Sprint(billingAccountID))
	fmt.Println(text.FgHiBlue.Sprint(" ------------------------------------------------"))

	ordered := make([]model.CostRow, len(rows))
	copy(ordered, rows)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Key < ordered[j].Key
	})

	bc := barchart.New(130, 20)
	indexedColors := assignRankedColors(ordered)

	for idx, row := range ordered {
		bc.Push(barchart.BarData{
			Label: fmt.Sprintf("%s: %.2f %s", row.Key, row.Cost, row.Currency),
			Values: []barchart.BarValue{
				{
					Value: row.Cost,
					Style: lipgloss.NewStyle().Foreground(lipgloss.Color(indexedColors[idx])),
				},
			},
		})
	}

	fmt.Println()
	bc.Draw()
	fmt.Println(lipgloss.JoinHorizontal(lipgloss.Top, chartStyle.Render(bc.View())))
}

func assignRankedColors(rows []model.CostRow) []string {
	palette := []string{ColorRank1, ColorRank2, ColorRank3, ColorRank4, ColorRank5, ColorRank6}

	type costWithIndex struct {
		index int
		value float64
	}

	costsToSort := make([]costWithIndex, len(rows))
	for i, row := range rows {
		costsToSort[i] = costWithIndex{index: i, value: row.Cost}
	}

	sort.Slice(costsToSort, func(i, j int) bool {
		return costsToSort[i].value > costsToSort[j].value
	})

	resultColors := make([]string, len(rows))
	for i := range resultColors {
		resultColors[i] = ColorRank6
	}
	for rank, sortedCost := range costsToSort {
		if rank < len(palette) {
			resultColors[sortedCost.index] = palette[rank]
		}
	}

	return resultColors
}
