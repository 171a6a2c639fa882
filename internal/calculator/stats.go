package calculator

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Purchase is a completed cart line reduced to what statistics need.
type Purchase struct {
	Name  string
	Day   time.Time
	Total decimal.Decimal
}

// Consumption is a ledger entry reduced to what statistics need.
type Consumption struct {
	Name     string
	Day      time.Time
	Quantity float64
	Calories float64
}

// DayTotals aggregates one calendar day.
type DayTotals struct {
	Day      time.Time
	Spending decimal.Decimal
	Quantity float64
	Calories float64
}

// FoodTotals aggregates one food over a window.
type FoodTotals struct {
	Name     string
	Quantity float64
	Calories float64
	Spending decimal.Decimal
}

// WindowStart returns the first day of a window of days days ending on today.
func WindowStart(today time.Time, days int) time.Time {
	if days < 1 {
		days = 1
	}
	return today.AddDate(0, 0, -(days - 1))
}

// DailySeries returns one zero-filled row per day of the window ending on
// today, oldest first. Rows outside the window are ignored.
func DailySeries(today time.Time, days int, purchases []Purchase, consumption []Consumption) []DayTotals {
	if days < 1 {
		days = 1
	}
	start := WindowStart(today, days)

	series := make([]DayTotals, days)
	index := make(map[time.Time]int, days)
	for i := range series {
		day := start.AddDate(0, 0, i)
		series[i] = DayTotals{Day: day, Spending: decimal.Zero}
		index[day] = i
	}

	for _, p := range purchases {
		if i, ok := index[p.Day]; ok {
			series[i].Spending = series[i].Spending.Add(p.Total)
		}
	}
	for _, c := range consumption {
		if i, ok := index[c.Day]; ok {
			series[i].Quantity += c.Quantity
			series[i].Calories += c.Calories
		}
	}
	return series
}

// FoodSummary totals consumption per food name and attaches the spend on
// lines with the same name. Foods that were bought but never eaten in the
// window are not listed. Rows are ordered by name.
func FoodSummary(purchases []Purchase, consumption []Consumption) []FoodTotals {
	byName := make(map[string]*FoodTotals)
	for _, c := range consumption {
		t, ok := byName[c.Name]
		if !ok {
			t = &FoodTotals{Name: c.Name, Spending: decimal.Zero}
			byName[c.Name] = t
		}
		t.Quantity += c.Quantity
		t.Calories += c.Calories
	}
	for _, p := range purchases {
		if t, ok := byName[p.Name]; ok {
			t.Spending = t.Spending.Add(p.Total)
		}
	}

	out := make([]FoodTotals, 0, len(byName))
	for _, t := range byName {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
