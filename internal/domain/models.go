package domain

import (
	"github.com/shopspring/decimal"
)

// AccountNumberLength длина номера счета в десятичной записи.
const AccountNumberLength = 10

// MinAccountHolderAge минимальный возраст владельца счета.
const MinAccountHolderAge = 18

type Account struct {
	ID      int64
	Balance decimal.Decimal
}
