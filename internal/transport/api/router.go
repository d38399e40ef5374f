package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/bank-ledger/internal/transport/api/middlewares"
)

const (
	DefaultServiceTimeout = 3 * time.Second
)

const (
	RouteGroup    = "/api"
	AccountsRoute = "/accounts"
	AccountParam  = "number"
	AccountRoute  = AccountsRoute + "/:" + AccountParam
	BalanceRoute  = AccountRoute + "/balance"
	DepositRoute  = AccountRoute + "/deposit"
	WithdrawRoute = AccountRoute + "/withdraw"
)

type RouterArgs struct {
	Logger        *logrus.Logger
	LedgerService LedgerServicer
}

func New(args RouterArgs) (*gin.Engine, error) {
	if err := registerValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	r.Use(middlewares.Errors())

	accountsHandler := NewAccountsHandler(args.LedgerService)

	api := r.Group(RouteGroup)

	api.POST(AccountsRoute, accountsHandler.Create)
	api.GET(AccountsRoute, accountsHandler.Index)

	api.GET(BalanceRoute, accountsHandler.Balance)
	api.POST(DepositRoute, accountsHandler.Deposit)
	api.POST(WithdrawRoute, accountsHandler.Withdraw)
	return r, nil
}
