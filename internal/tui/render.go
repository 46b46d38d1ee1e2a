// Package tui renders wallet views for the terminal and drives the
// interactive mode.
package tui

import (
	"fmt"
	"strings"

	"github.com/STTM-NSU/wallet-client/internal/view"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	warning   = lipgloss.AdaptiveColor{Light: "#D7263D", Dark: "#FF5F87"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(0, 2).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true)

	placeholderStyle = lipgloss.NewStyle().
				Foreground(subtle).
				Italic(true)

	gainStyle = lipgloss.NewStyle().Foreground(special)
	lossStyle = lipgloss.NewStyle().Foreground(warning)

	errorStyle = lipgloss.NewStyle().
			Foreground(warning).
			Bold(true)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(highlight)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return cellStyle.Bold(true)
			}
			return cellStyle
		}).
		Headers(headers...)
}

func field(label, value string) string {
	return labelStyle.Render(label+":") + " " + value
}

func RenderWalletList(v view.WalletList) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("WALLETS (%d)", v.Count)))
	b.WriteString("\n")

	if v.Placeholder != "" {
		b.WriteString(placeholderStyle.Render(v.Placeholder))
		return b.String()
	}

	t := newTable("ID", "ASSETS", "TOTAL")
	for _, row := range v.Rows {
		t.Row(row.ID, fmt.Sprintf("%d", row.AssetCount), row.Total)
	}
	b.WriteString(t.String())
	return b.String()
}

func RenderWallet(v view.Wallet) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("WALLET"))
	b.WriteString("\n")
	b.WriteString(field("ID", v.ID) + "\n")
	b.WriteString(field("Total", v.Total) + "\n")
	b.WriteString(field("Created", v.Created) + "\n")

	if v.Placeholder != "" {
		b.WriteString(placeholderStyle.Render(v.Placeholder))
		return b.String()
	}

	t := newTable("SYMBOL", "QUANTITY", "PRICE", "VALUE")
	for _, a := range v.Assets {
		t.Row(a.Symbol, a.Quantity, a.Price, a.Value)
	}
	b.WriteString(t.String())
	return b.String()
}

func RenderSimulation(v view.Simulation) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("PROFIT SIMULATION"))
	b.WriteString("\n")
	b.WriteString(field("Total", v.Total))

	if v.Best != nil {
		b.WriteString("\n" + field("Best", v.Best.Asset+" "+performance(*v.Best)))
	}
	if v.Worst != nil {
		b.WriteString("\n" + field("Worst", v.Worst.Asset+" "+performance(*v.Worst)))
	}
	return b.String()
}

func performance(p view.Performer) string {
	return performanceStyle(p).Render(p.Performance)
}

func performanceStyle(p view.Performer) lipgloss.Style {
	if p.Loss {
		return lossStyle
	}
	return gainStyle
}

func RenderError(err error) string {
	return errorStyle.Render("error:") + " " + err.Error()
}
