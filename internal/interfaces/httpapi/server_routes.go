package httpapi

import (
	"net/http"

	"github.com/riskibarqy/transfer-market/internal/domain/user"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func authed(verifier TokenVerifier, fn http.HandlerFunc) http.Handler {
	return RequireAuth(verifier, fn)
}

func managerOnly(verifier TokenVerifier, fn http.HandlerFunc) http.Handler {
	return RequireAuth(verifier, RequireRole(user.RoleManager, fn))
}

func registerMarketRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/market/players", authed(verifier, handler.ListMarket))
	mux.Handle("GET /v1/players/{playerID}", authed(verifier, handler.GetPlayer))
	mux.Handle("GET /v1/clubs", authed(verifier, handler.ListClubs))
	mux.Handle("GET /v1/clubs/me", authed(verifier, handler.GetMyClub))
	mux.Handle("GET /v1/clubs/{clubID}/players", authed(verifier, handler.ListClubPlayers))
	mux.Handle("GET /v1/preferences/market", authed(verifier, handler.GetMarketPreferences))
	mux.Handle("PUT /v1/preferences/market", authed(verifier, handler.SaveMarketPreferences))
	mux.Handle("DELETE /v1/preferences/market", authed(verifier, handler.ClearMarketPreferences))
}

func registerNegotiationRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/players/{playerID}/negotiation/offers", managerOnly(verifier, handler.SubmitOffer))
	mux.Handle("GET /v1/players/{playerID}/negotiation", managerOnly(verifier, handler.GetNegotiation))
	mux.Handle("DELETE /v1/players/{playerID}/negotiation/watch", managerOnly(verifier, handler.StopWatchingNegotiation))
}

func registerTransferRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/players/{playerID}/sign", managerOnly(verifier, handler.SignFreeAgent))
	mux.Handle("POST /v1/players/{playerID}/release", managerOnly(verifier, handler.ReleasePlayer))
	mux.Handle("POST /v1/transfers/purchases", managerOnly(verifier, handler.PurchaseFromClub))
	mux.Handle("POST /v1/transfers/exchanges", managerOnly(verifier, handler.ProposeExchange))
	mux.Handle("GET /v1/transfers/compensation-directions", authed(verifier, handler.ListCompensationDirections))
	mux.Handle("GET /v1/transfers/incoming", managerOnly(verifier, handler.ListIncomingTransfers))
	mux.Handle("GET /v1/transfers/{transferID}", managerOnly(verifier, handler.GetTransfer))
	mux.Handle("POST /v1/transfers/{transferID}/response", managerOnly(verifier, handler.RespondToTransfer))
}

func registerInboxRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/notifications", authed(verifier, handler.ListNotifications))
	mux.Handle("POST /v1/notifications/{notificationID}/read", authed(verifier, handler.MarkNotificationRead))
}
