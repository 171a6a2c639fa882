package api

type PlanEntry struct {
	ID       string  `json:"id"`
	FoodID   string  `json:"foodId"`
	FoodName string  `json:"foodName,omitempty"`
	Unit     string  `json:"unit,omitempty"`
	Quantity float64 `json:"quantity"`
	Weekday  string  `json:"weekday"`
	Eaten    bool    `json:"eaten"`
	// Calories is quantity times the food's current calories per unit.
	Calories float64 `json:"calories,omitempty"`
}

// ConsumptionEntry is one row of the consumption ledger.
type ConsumptionEntry struct {
	ID         string  `json:"id"`
	FoodID     string  `json:"foodId"`
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity"`
	Calories   float64 `json:"calories"`
	ConsumedOn string  `json:"consumedOn"`
}

// AddPlanEntryRequest plans either one food (FoodID and Quantity) or a
// whole dish (DishID, one entry per ingredient).
type AddPlanEntryRequest struct {
	FoodID   string  `json:"foodId,omitempty"`
	DishID   string  `json:"dishId,omitempty"`
	Quantity float64 `json:"quantity,omitempty"`
	Weekday  string  `json:"weekday"`
}

type AddPlanEntryResponse struct {
	Entries []*PlanEntry `json:"entries"`
}

type ListPlanRequest struct{}

type ListPlanResponse struct {
	Entries []*PlanEntry `json:"entries"`
}

type DeletePlanEntryRequest struct {
	EntryID string `json:"entryId"`
}

type DeletePlanEntryResponse struct{}

type MarkEatenRequest struct {
	EntryID string `json:"entryId"`
	Eaten   bool   `json:"eaten"`
	// Date is the consumption day; empty means today. Ignored for undo.
	Date string `json:"date,omitempty"`
}

type MarkEatenResponse struct {
	Entry             *PlanEntry        `json:"entry"`
	Consumption       *ConsumptionEntry `json:"consumption,omitempty"`
	InsufficientStock bool              `json:"insufficientStock"`
	Shortfall         float64           `json:"shortfall,omitempty"`
}
