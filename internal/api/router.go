package api

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/clearmint/walletsdk/internal/handler"
)

// SetupRouter sets up router with handlers
func SetupRouter(walletHandler *handler.WalletHandler) http.Handler {
	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Account endpoints
	mux.HandleFunc("/accounts", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			walletHandler.CreateAccount(w, r)
		default:
			walletHandler.ListAccounts(w, r)
		}
	})
	mux.HandleFunc("/accounts/import", walletHandler.ImportAccount)
	mux.HandleFunc("/accounts/export", walletHandler.ExportAccount)
	mux.HandleFunc("/accounts/delete", walletHandler.DeleteAccount)
	mux.HandleFunc("/accounts/clear", walletHandler.ClearAccounts)
	mux.HandleFunc("/accounts/activate", walletHandler.Activate)
	mux.HandleFunc("/accounts/balance", walletHandler.Balance)
	mux.HandleFunc("/accounts/pay", walletHandler.Pay)
	mux.HandleFunc("/minimum-balance", walletHandler.MinimumBalance)

	return mux
}
