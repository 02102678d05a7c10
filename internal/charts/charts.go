// Package charts renders account history images for the bot.
package charts

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/alvropena/kakeiboo/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// BalanceHistory renders the running balance over the given transactions
// as a PNG. Input order does not matter. Returns nil bytes when there
// are fewer than two points to draw a line through.
func (g *Generator) BalanceHistory(transactions []model.Transaction, symbol string) ([]byte, error) {
	if len(transactions) < 2 {
		return nil, nil
	}
	if symbol == "" {
		symbol = "$"
	}

	sorted := make([]model.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	xValues := make([]time.Time, len(sorted))
	balanceValues := make([]float64, len(sorted))
	var runningCents int64
	for i, t := range sorted {
		runningCents += t.Cents()
		xValues[i] = t.Date
		balanceValues[i] = float64(runningCents) / 100
	}

	graph := chart.Chart{
		Width:  1200,
		Height: 600,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   50,
				Right:  50,
				Bottom: 50,
			},
			FillColor: chart.ColorWhite,
		},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("01-02"),
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%s%.2f", symbol, v.(float64))
			},
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Balance",
				XValues: xValues,
				YValues: balanceValues,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 2,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf.Bytes(), nil
}
