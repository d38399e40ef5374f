package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fsdevblog/bank-ledger/internal/domain"
	"github.com/fsdevblog/bank-ledger/internal/service"
)

// LedgerServicer интерфейс исключительно для моков.
type LedgerServicer interface {
	CreateAccount(ctx context.Context, args service.CreateAccountArgs) (*domain.Account, error)
	Deposit(ctx context.Context, accountNumber int64, amount decimal.Decimal) (decimal.Decimal, error)
	Withdraw(ctx context.Context, accountNumber int64, amount decimal.Decimal) (decimal.Decimal, error)
	GetBalance(ctx context.Context, accountNumber int64) (decimal.Decimal, error)
	Accounts(ctx context.Context) ([]domain.Account, error)
}
