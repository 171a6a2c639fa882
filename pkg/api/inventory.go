package api

// Batch is a dated quantity of one food.
type Batch struct {
	ID         string  `json:"id"`
	FoodID     string  `json:"foodId"`
	FoodName   string  `json:"foodName,omitempty"`
	Unit       string  `json:"unit,omitempty"`
	Quantity   float64 `json:"quantity"`
	AcquiredOn string  `json:"acquiredOn"`
	ExpiresOn  string  `json:"expiresOn,omitempty"`
}

type AddToInventoryRequest struct {
	FoodID   string  `json:"foodId"`
	Quantity float64 `json:"quantity"`
	// Date is the acquisition day; empty means today.
	Date string `json:"date,omitempty"`
}

type AddToInventoryResponse struct {
	Batch  *Batch `json:"batch"`
	Merged bool   `json:"merged"`
}

type ListInventoryRequest struct{}

type ListInventoryResponse struct {
	Batches []*Batch `json:"batches"`
}

type DeleteBatchRequest struct {
	BatchID string `json:"batchId"`
}

type DeleteBatchResponse struct{}
