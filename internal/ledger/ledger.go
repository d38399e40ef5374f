// Package ledger содержит in-memory реестр банковских счетов.
//
// Ledger не потокобезопасен: все вызовы должны быть последовательными. Для конкурентного
// доступа используется service.LedgerService.
package ledger

import (
	"fmt"
	"strconv"

	"github.com/hashicorp/go-multierror"
	"github.com/shopspring/decimal"

	"github.com/fsdevblog/bank-ledger/internal/domain"
)

type Ledger struct {
	// order хранит номера счетов в порядке создания.
	order     []int64
	accounts  map[int64]*domain.Account
	usernames map[string]struct{}
}

// New создает реестр из начальных счетов и списка известных пользователей. Входные срезы копируются.
//
// Счета, которые уже нарушают инварианты реестра (номер не из 10 цифр, повтор номера, отрицательный баланс),
// не принимаются: возвращается ошибка со всеми найденными нарушениями.
func New(accounts []domain.Account, usernames []string) (*Ledger, error) {
	l := &Ledger{
		order:     make([]int64, 0, len(accounts)),
		accounts:  make(map[int64]*domain.Account, len(accounts)),
		usernames: make(map[string]struct{}, len(usernames)),
	}
	for _, username := range usernames {
		l.usernames[username] = struct{}{}
	}

	var seedErr *multierror.Error
	for i, acc := range accounts {
		switch {
		case !isAccountNumberValid(acc.ID):
			seedErr = multierror.Append(seedErr,
				fmt.Errorf("seed account #%d (%d): %w", i, acc.ID, domain.ErrInvalidAccountNumber))
		case l.find(acc.ID) != nil:
			seedErr = multierror.Append(seedErr,
				fmt.Errorf("seed account #%d (%d): %w", i, acc.ID, domain.ErrAccountAlreadyExists))
		case acc.Balance.IsNegative():
			seedErr = multierror.Append(seedErr,
				fmt.Errorf("seed account #%d (%d) negative balance: %w", i, acc.ID, domain.ErrInvalidAmount))
		default:
			l.add(acc)
		}
	}
	if err := seedErr.ErrorOrNil(); err != nil {
		return nil, err
	}
	return l, nil
}

// CreateAccount открывает счет с нулевым балансом. Проверки выполняются строго по порядку:
// пользователь, номер счета, уникальность номера, возраст.
func (l *Ledger) CreateAccount(username string, age int, accountNumber int64) (domain.Account, error) {
	if _, ok := l.usernames[username]; !ok {
		return domain.Account{}, domain.ErrUserNotFound
	}
	if !isAccountNumberValid(accountNumber) {
		return domain.Account{}, domain.ErrInvalidAccountNumber
	}
	if l.find(accountNumber) != nil {
		return domain.Account{}, domain.ErrAccountAlreadyExists
	}
	if age < domain.MinAccountHolderAge {
		return domain.Account{}, domain.ErrAgeNotEligible
	}

	return l.add(domain.Account{ID: accountNumber, Balance: decimal.Zero}), nil
}

// Deposit зачисляет amount на счет и возвращает новый баланс.
func (l *Ledger) Deposit(accountNumber int64, amount decimal.Decimal) (decimal.Decimal, error) {
	acc := l.find(accountNumber)
	if acc == nil {
		return decimal.Zero, domain.ErrAccountNotFound
	}
	if !amount.IsPositive() {
		return decimal.Zero, domain.ErrInvalidAmount
	}
	acc.Balance = acc.Balance.Add(amount)
	return acc.Balance, nil
}

// Withdraw списывает amount со счета и возвращает новый баланс. Баланс не может стать отрицательным.
func (l *Ledger) Withdraw(accountNumber int64, amount decimal.Decimal) (decimal.Decimal, error) {
	acc := l.find(accountNumber)
	if acc == nil {
		return decimal.Zero, domain.ErrAccountNotFound
	}
	if !amount.IsPositive() {
		return decimal.Zero, domain.ErrInvalidAmount
	}
	if acc.Balance.LessThan(amount) {
		return decimal.Zero, domain.ErrInsufficientFunds
	}
	acc.Balance = acc.Balance.Sub(amount)
	return acc.Balance, nil
}

func (l *Ledger) GetBalance(accountNumber int64) (decimal.Decimal, error) {
	acc := l.find(accountNumber)
	if acc == nil {
		return decimal.Zero, domain.ErrAccountNotFound
	}
	return acc.Balance, nil
}

// Accounts возвращает копии всех счетов в порядке их создания.
func (l *Ledger) Accounts() []domain.Account {
	out := make([]domain.Account, len(l.order))
	for i, id := range l.order {
		out[i] = *l.accounts[id]
	}
	return out
}

func (l *Ledger) find(accountNumber int64) *domain.Account {
	return l.accounts[accountNumber]
}

// add добавляет счет в реестр и возвращает его копию.
func (l *Ledger) add(acc domain.Account) domain.Account {
	stored := acc
	l.accounts[acc.ID] = &stored
	l.order = append(l.order, acc.ID)
	return stored
}

// isAccountNumberValid проверяет только длину десятичной записи номера.
func isAccountNumberValid(accountNumber int64) bool {
	return len(strconv.FormatInt(accountNumber, 10)) == domain.AccountNumberLength
}
