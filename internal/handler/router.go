package handler

import (
	"net/http"
	"time"

	"skillpass/internal/svc"

	"github.com/zeromicro/go-zero/rest"
)

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext) {
	server.AddRoutes(
		[]rest.Route{
			// --- Skill Routes ---
			{
				Method:  http.MethodGet,
				Path:    "/links",
				Handler: SkillListHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/links",
				Handler: SkillCreateHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/links/:id",
				Handler: SkillGetHandler(serverCtx),
			},
			{
				Method:  http.MethodPut,
				Path:    "/links/:id",
				Handler: SkillUpdateHandler(serverCtx),
			},
			{
				Method:  http.MethodDelete,
				Path:    "/links/:id",
				Handler: SkillDeleteHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/links/:id/payment",
				Handler: PaymentHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/skills/endorsable",
				Handler: EndorsableSkillsHandler(serverCtx),
			},
			// --- Endorsement Routes ---
			{
				Method:  http.MethodGet,
				Path:    "/endorsements",
				Handler: EndorsementListHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/endorsements",
				Handler: EndorsementCreateHandler(serverCtx),
			},
			// --- Investment Routes ---
			{
				Method:  http.MethodPost,
				Path:    "/investments/create",
				Handler: InvestmentCreateHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/investments/portfolio",
				Handler: PortfolioHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/investments/recent",
				Handler: RecentInvestmentsHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/jobs/complete",
				Handler: JobCompleteHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/jobs/complete",
				Handler: JobHistoryHandler(serverCtx),
			},
			// --- Profile Routes ---
			{
				Method:  http.MethodGet,
				Path:    "/profile",
				Handler: ProfileGetHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/profile",
				Handler: ProfileUpsertHandler(serverCtx),
			},
			{
				Method:  http.MethodPut,
				Path:    "/profile",
				Handler: ProfileUpsertHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/leaderboard",
				Handler: LeaderboardHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/dashboard",
				Handler: DashboardHandler(serverCtx),
			},
			// --- Wallet Routes ---
			{
				Method:  http.MethodPost,
				Path:    "/wallet/register",
				Handler: WalletRegisterHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/wallet/session",
				Handler: WalletSessionHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/wallet/send",
				Handler: WalletSendHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/wallet/:userId",
				Handler: WalletLookupHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/wallet/:userId/balances",
				Handler: WalletBalancesHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/wallet/:userId/transactions",
				Handler: WalletTransactionsHandler(serverCtx),
			},
		},
		rest.WithPrefix("/api/"),
		rest.WithTimeout(30000*time.Millisecond),
	)
}
