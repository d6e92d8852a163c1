package handler

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/skip2/go-qrcode"

	"github.com/clearmint/walletsdk/internal/model"
	"github.com/clearmint/walletsdk/wallet"
)

// WalletHandler exposes one wallet client over HTTP.
type WalletHandler struct {
	client *wallet.Client
	log    zerolog.Logger
}

// NewWalletHandler creates a new WalletHandler around an existing client.
func NewWalletHandler(client *wallet.Client, log zerolog.Logger) *WalletHandler {
	return &WalletHandler{client: client, log: log}
}

// CreateAccount handles POST /accounts
// @Summary      Create account
// @Description  Generates a new account, persists it encrypted, and returns its address
// @Tags         accounts
// @Produce      json
// @Success      200  {object}  model.CreateAccountResponse
// @Failure      500  {object}  model.ErrorResponse
// @Router       /accounts [post]
func (h *WalletHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	account, err := h.client.AddAccount()
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, model.CreateAccountResponse{
		Success: true,
		Message: "Account created successfully",
		Index:   h.client.AccountCount() - 1,
		Address: account.Address(),
	})
}

// ListAccounts handles GET /accounts
// @Summary      List accounts
// @Description  Lists all managed accounts in index order
// @Tags         accounts
// @Produce      json
// @Success      200  {object}  model.ListAccountsResponse
// @Router       /accounts [get]
func (h *WalletHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	handles := h.client.Accounts()
	accounts := make([]model.AccountInfo, 0, len(handles))
	for i, acc := range handles {
		accounts = append(accounts, model.AccountInfo{Index: i, Address: acc.Address()})
	}
	h.writeJSON(w, http.StatusOK, model.ListAccountsResponse{Count: len(handles), Accounts: accounts})
}

// ImportAccount handles POST /accounts/import
// @Summary      Import account
// @Description  Restores an account from an exported backup record
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        request  body      model.ImportAccountRequest  true  "Backup record and its passphrase"
// @Success      200      {object}  model.CreateAccountResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /accounts/import [post]
func (h *WalletHandler) ImportAccount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.ImportAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	passphrase := []byte(req.Passphrase)
	defer clear(passphrase)

	account, err := h.client.ImportAccount(req.Record, passphrase)
	if err != nil {
		h.writeError(w, err)
		return
	}

	index := -1
	for i, acc := range h.client.Accounts() {
		if acc.Address() == account.Address() {
			index = i
			break
		}
	}
	h.writeJSON(w, http.StatusOK, model.CreateAccountResponse{
		Success: true,
		Message: "Account imported successfully",
		Index:   index,
		Address: account.Address(),
	})
}

// ExportAccount handles POST /accounts/export
// @Summary      Export account
// @Description  Exports an account as a passphrase-protected backup record with a QR code
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        request  body      model.ExportAccountRequest  true  "Account index and export passphrase"
// @Success      200      {object}  model.ExportAccountResponse
// @Failure      404      {object}  model.ErrorResponse
// @Router       /accounts/export [post]
func (h *WalletHandler) ExportAccount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.ExportAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}
	if req.Passphrase == "" {
		h.writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "passphrase is required"})
		return
	}

	account := h.client.GetAccount(req.Index)
	if account == nil {
		h.writeJSON(w, http.StatusNotFound, model.ErrorResponse{Error: "no account at index " + strconv.Itoa(req.Index)})
		return
	}

	passphrase := []byte(req.Passphrase)
	defer clear(passphrase)

	record, err := account.Export(passphrase)
	if err != nil {
		h.writeError(w, err)
		return
	}

	png, err := qrcode.Encode(record, qrcode.Medium, 256)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, model.ExportAccountResponse{
		Address: account.Address(),
		Record:  record,
		QR:      base64.StdEncoding.EncodeToString(png),
	})
}

// DeleteAccount handles POST /accounts/delete
// @Summary      Delete account
// @Description  Deletes the account at the given index; its handle becomes inert
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        request  body      model.DeleteAccountRequest  true  "Account index"
// @Success      200      {object}  model.DeleteAccountResponse
// @Router       /accounts/delete [post]
func (h *WalletHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.DeleteAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	deleted, err := h.client.DeleteAccount(req.Index)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, model.DeleteAccountResponse{Deleted: deleted})
}

// ClearAccounts handles POST /accounts/clear
// @Summary      Delete all accounts
// @Description  Deletes every account in the configured store scope
// @Tags         accounts
// @Produce      json
// @Success      200  {object}  model.DeleteAccountResponse
// @Router       /accounts/clear [post]
func (h *WalletHandler) ClearAccounts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	if err := h.client.ClearAllAccounts(); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, model.DeleteAccountResponse{Deleted: true})
}

// Activate handles POST /accounts/activate
// @Summary      Activate account
// @Description  Opts the account in to the configured asset; a no-op if already activated
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        request  body      model.ActivateRequest  true  "Account index"
// @Success      200      {object}  model.ActivateResponse
// @Failure      402      {object}  model.ErrorResponse
// @Router       /accounts/activate [post]
func (h *WalletHandler) Activate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.ActivateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	account := h.client.GetAccount(req.Index)
	if account == nil {
		h.writeJSON(w, http.StatusNotFound, model.ErrorResponse{Error: "no account at index " + strconv.Itoa(req.Index)})
		return
	}
	if err := account.Activate(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, model.ActivateResponse{Activated: true})
}

// Balance handles GET /accounts/balance?index=N
// @Summary      Get account balance
// @Description  Gets the asset balance of the account at the given index
// @Tags         accounts
// @Produce      json
// @Param        index  query     int  false  "Account index (default 0)"
// @Success      200    {object}  model.BalanceResponse
// @Failure      409    {object}  model.ErrorResponse
// @Router       /accounts/balance [get]
func (h *WalletHandler) Balance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	index := 0
	if s := r.URL.Query().Get("index"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			h.writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "invalid index: " + s})
			return
		}
		index = n
	}

	account := h.client.GetAccount(index)
	if account == nil {
		h.writeJSON(w, http.StatusNotFound, model.ErrorResponse{Error: "no account at index " + strconv.Itoa(index)})
		return
	}

	balance, err := account.Balance(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, model.BalanceResponse{Address: account.Address(), Balance: balance})
}

// Pay handles POST /accounts/pay
// @Summary      Send payment
// @Description  Builds, signs, and submits a payment from the account at fromIndex
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        request  body      model.PayRequest  true  "Payment data"
// @Success      200      {object}  model.PayResponse
// @Failure      402      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Router       /accounts/pay [post]
func (h *WalletHandler) Pay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.PayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	account := h.client.GetAccount(req.FromIndex)
	if account == nil {
		h.writeJSON(w, http.StatusNotFound, model.ErrorResponse{Error: "no account at index " + strconv.Itoa(req.FromIndex)})
		return
	}

	tx, err := account.BuildTransaction(r.Context(), req.ToAddress, req.Amount, req.Memo)
	if err != nil {
		h.writeError(w, err)
		return
	}
	id, err := account.Send(r.Context(), tx)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, model.PayResponse{TxID: string(id), Memo: tx.Memo()})
}

// MinimumBalance handles GET /minimum-balance
// @Summary      Minimum balance
// @Description  Returns the smallest native balance an activated account must keep
// @Tags         accounts
// @Produce      json
// @Success      200  {object}  model.MinimumBalanceResponse
// @Router       /minimum-balance [get]
func (h *WalletHandler) MinimumBalance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	lamports, err := h.client.MinimumBalance(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, model.MinimumBalanceResponse{Lamports: lamports})
}

func (h *WalletHandler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps a wallet fault to an HTTP status and a stable error code.
func (h *WalletHandler) writeError(w http.ResponseWriter, err error) {
	status, code := classifyError(err)
	if status >= http.StatusInternalServerError {
		h.log.Error().Err(err).Msg("request failed")
	}
	h.writeJSON(w, status, model.ErrorResponse{Error: err.Error(), Code: code})
}

func classifyError(err error) (int, string) {
	var (
		illegalAmount  *wallet.IllegalAmountError
		invalidAddress *wallet.InvalidAddressError
		corrupted      *wallet.CorruptedDataError
		crypto         *wallet.CryptoError
		notFound       *wallet.AccountNotFoundError
		notActivated   *wallet.AccountNotActivatedError
		deleted        *wallet.AccountDeletedError
		insufficient   *wallet.InsufficientFundsError
		txFailed       *wallet.TransactionFailedError
	)
	switch {
	case errors.As(err, &illegalAmount):
		return http.StatusBadRequest, "illegal_amount"
	case errors.As(err, &invalidAddress):
		return http.StatusBadRequest, "invalid_address"
	case errors.As(err, &corrupted):
		return http.StatusBadRequest, "corrupted_data"
	case errors.As(err, &crypto):
		return http.StatusBadRequest, "decryption_failed"
	case errors.As(err, &notFound):
		return http.StatusNotFound, "account_not_found"
	case errors.As(err, &notActivated):
		return http.StatusConflict, "account_not_activated"
	case errors.As(err, &deleted):
		return http.StatusGone, "account_deleted"
	case errors.As(err, &insufficient):
		return http.StatusPaymentRequired, "insufficient_funds"
	case errors.As(err, &txFailed):
		return http.StatusBadGateway, "transaction_failed"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
