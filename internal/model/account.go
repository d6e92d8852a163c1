package model

// AccountInfo describes one managed account.
type AccountInfo struct {
	Index   int    `json:"index"`
	Address string `json:"address"`
}

// CreateAccountResponse represents response for POST /accounts
type CreateAccountResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Index   int    `json:"index"`
	Address string `json:"address"`
}

// ListAccountsResponse represents response for GET /accounts
type ListAccountsResponse struct {
	Count    int           `json:"count"`
	Accounts []AccountInfo `json:"accounts"`
}

// ImportAccountRequest represents request for POST /accounts/import
type ImportAccountRequest struct {
	Record     string `json:"record" binding:"required"`
	Passphrase string `json:"passphrase" binding:"required"`
}

// ExportAccountRequest represents request for POST /accounts/export
type ExportAccountRequest struct {
	Index      int    `json:"index"`
	Passphrase string `json:"passphrase" binding:"required"`
}

// ExportAccountResponse represents response for POST /accounts/export.
// QR is a base64-encoded PNG of the backup record.
type ExportAccountResponse struct {
	Address string `json:"address"`
	Record  string `json:"record"`
	QR      string `json:"qr"`
}

// DeleteAccountRequest represents request for POST /accounts/delete
type DeleteAccountRequest struct {
	Index int `json:"index"`
}

// DeleteAccountResponse represents response for POST /accounts/delete
type DeleteAccountResponse struct {
	Deleted bool `json:"deleted"`
}

// ActivateRequest represents request for POST /accounts/activate
type ActivateRequest struct {
	Index int `json:"index"`
}

// ActivateResponse represents response for POST /accounts/activate
type ActivateResponse struct {
	Activated bool `json:"activated"`
}
