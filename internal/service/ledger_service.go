package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/bank-ledger/internal/domain"
)

// LedgerService сериализует обращения к реестру, который сам по себе не потокобезопасен.
type LedgerService struct {
	mu     sync.Mutex
	ledger Ledger
	logger *logrus.Logger
}

func NewLedgerService(l Ledger, logger *logrus.Logger) *LedgerService {
	return &LedgerService{
		ledger: l,
		logger: logger,
	}
}

type CreateAccountArgs struct {
	Username      string
	Age           int
	AccountNumber int64
}

// CreateAccount открывает счет для известного пользователя. Ошибки реестра (domain.ErrUserNotFound,
// domain.ErrInvalidAccountNumber, domain.ErrAccountAlreadyExists, domain.ErrAgeNotEligible) доступны через errors.Is.
func (s *LedgerService) CreateAccount(ctx context.Context, args CreateAccountArgs) (*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("creating account: %w", err)
	}

	s.mu.Lock()
	acc, err := s.ledger.CreateAccount(args.Username, args.Age, args.AccountNumber)
	s.mu.Unlock()

	log := s.logger.WithFields(logrus.Fields{
		"username": args.Username,
		"account":  args.AccountNumber,
	})
	if err != nil {
		log.WithError(err).Debug("account not created")
		return nil, fmt.Errorf("creating account: %w", err)
	}
	log.Info("account created")
	return &acc, nil
}

// Deposit зачисляет средства и возвращает новый баланс.
func (s *LedgerService) Deposit(ctx context.Context, accountNumber int64, amount decimal.Decimal) (decimal.Decimal, error) {
	return s.move(ctx, "deposit", accountNumber, amount, s.ledger.Deposit)
}

// Withdraw списывает средства и возвращает новый баланс. При нехватке средств возвращает
// domain.ErrInsufficientFunds, баланс не меняется.
func (s *LedgerService) Withdraw(ctx context.Context, accountNumber int64, amount decimal.Decimal) (decimal.Decimal, error) {
	return s.move(ctx, "withdraw", accountNumber, amount, s.ledger.Withdraw)
}

func (s *LedgerService) GetBalance(ctx context.Context, accountNumber int64) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, fmt.Errorf("getting balance: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	balance, err := s.ledger.GetBalance(accountNumber)
	if err != nil {
		return decimal.Zero, fmt.Errorf("getting balance of %d: %w", accountNumber, err)
	}
	return balance, nil
}

// Accounts возвращает копии всех счетов в порядке создания.
func (s *LedgerService) Accounts(ctx context.Context) ([]domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Accounts(), nil
}

type balanceOp func(accountNumber int64, amount decimal.Decimal) (decimal.Decimal, error)

// move общий путь для зачисления и списания: проверка контекста, вызов реестра под мьютексом, лог результата.
func (s *LedgerService) move(
	ctx context.Context,
	opName string,
	accountNumber int64,
	amount decimal.Decimal,
	op balanceOp,
) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", opName, err)
	}

	s.mu.Lock()
	balance, err := op(accountNumber, amount)
	s.mu.Unlock()

	log := s.logger.WithFields(logrus.Fields{
		"op":      opName,
		"account": accountNumber,
		"amount":  amount.String(),
	})
	if err != nil {
		log.WithError(err).Debug("balance operation rejected")
		return decimal.Zero, fmt.Errorf("%s: %w", opName, err)
	}
	log.WithField("balance", balance.String()).Info("balance changed")
	return balance, nil
}
