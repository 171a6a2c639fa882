package api

import "github.com/shopspring/decimal"

type DayStats struct {
	Date     string          `json:"date"`
	Spending decimal.Decimal `json:"spending"`
	Quantity float64         `json:"quantity"`
	Calories float64         `json:"calories"`
}

type FoodStats struct {
	Name     string          `json:"name"`
	Quantity float64         `json:"quantity"`
	Calories float64         `json:"calories"`
	Spending decimal.Decimal `json:"spending"`
}

// DailyStatsRequest selects the last Days days; 0 means 7.
type DailyStatsRequest struct {
	Days int `json:"days,omitempty"`
}

type DailyStatsResponse struct {
	Days []*DayStats `json:"days"`
}

// FoodStatsRequest selects the last Days days; 0 means 30.
type FoodStatsRequest struct {
	Days int `json:"days,omitempty"`
}

type FoodStatsResponse struct {
	Foods []*FoodStats `json:"foods"`
}
