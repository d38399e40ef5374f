package service

import (
	"github.com/shopspring/decimal"

	"github.com/fsdevblog/bank-ledger/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

// Ledger реализуется *ledger.Ledger.
type Ledger interface {
	CreateAccount(username string, age int, accountNumber int64) (domain.Account, error)
	Deposit(accountNumber int64, amount decimal.Decimal) (decimal.Decimal, error)
	Withdraw(accountNumber int64, amount decimal.Decimal) (decimal.Decimal, error)
	GetBalance(accountNumber int64) (decimal.Decimal, error)
	Accounts() []domain.Account
}
