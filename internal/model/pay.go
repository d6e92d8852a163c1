package model

// PayRequest represents request for POST /accounts/pay
type PayRequest struct {
	FromIndex int    `json:"fromIndex"`
	ToAddress string `json:"toAddress" binding:"required"`
	Amount    string `json:"amount" binding:"required"`
	Memo      string `json:"memo"`
}

// PayResponse represents response for POST /accounts/pay
type PayResponse struct {
	TxID string `json:"txId"`
	Memo string `json:"memo"`
}
