package model

// BalanceResponse represents response for GET /accounts/balance
type BalanceResponse struct {
	Address string `json:"address"`
	Balance string `json:"balance"`
}

// MinimumBalanceResponse represents response for GET /minimum-balance.
// Lamports is the smallest native balance an activated account must keep.
type MinimumBalanceResponse struct {
	Lamports uint64 `json:"lamports"`
}
