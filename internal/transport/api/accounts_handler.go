package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/fsdevblog/bank-ledger/internal/domain"
	"github.com/fsdevblog/bank-ledger/internal/service"
)

type AccountsHandler struct {
	svs LedgerServicer
}

func NewAccountsHandler(svs LedgerServicer) *AccountsHandler {
	return &AccountsHandler{
		svs: svs,
	}
}

type CreateAccountParams struct {
	Username      string `binding:"required,max_bytes=255" json:"username"`
	Age           *int   `binding:"required"               json:"age"`
	AccountNumber *int64 `binding:"required"               json:"account_number"`
}

type AmountParams struct {
	Amount *decimal.Decimal `binding:"required" json:"amount"`
}

type AccountResponse struct {
	ID      int64   `json:"id"`
	Balance float64 `json:"balance"`
}

type BalanceResponse struct {
	Balance float64 `json:"balance"`
}

// Create POST RouteGroup + AccountsRoute. Открывает счет с нулевым балансом.
func (h *AccountsHandler) Create(c *gin.Context) {
	var params CreateAccountParams
	if !bindJSON(c, &params) {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	acc, err := h.svs.CreateAccount(ctx, service.CreateAccountArgs{
		Username:      params.Username,
		Age:           *params.Age,
		AccountNumber: *params.AccountNumber,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, AccountResponse{
		ID:      acc.ID,
		Balance: acc.Balance.InexactFloat64(),
	})
}

// Index GET RouteGroup + AccountsRoute. Список счетов в порядке создания.
func (h *AccountsHandler) Index(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	accounts, err := h.svs.Accounts(ctx)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		response[i] = AccountResponse{
			ID:      acc.ID,
			Balance: acc.Balance.InexactFloat64(),
		}
	}
	c.JSON(http.StatusOK, response)
}

// Balance GET RouteGroup + BalanceRoute.
func (h *AccountsHandler) Balance(c *gin.Context) {
	accountNumber, ok := accountNumberFromPath(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	balance, err := h.svs.GetBalance(ctx, accountNumber)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, BalanceResponse{Balance: balance.InexactFloat64()})
}

// Deposit POST RouteGroup + DepositRoute.
func (h *AccountsHandler) Deposit(c *gin.Context) {
	h.changeBalance(c, h.svs.Deposit)
}

// Withdraw POST RouteGroup + WithdrawRoute.
func (h *AccountsHandler) Withdraw(c *gin.Context) {
	h.changeBalance(c, h.svs.Withdraw)
}

type balanceChangeFn func(ctx context.Context, accountNumber int64, amount decimal.Decimal) (decimal.Decimal, error)

func (h *AccountsHandler) changeBalance(c *gin.Context, fn balanceChangeFn) {
	accountNumber, ok := accountNumberFromPath(c)
	if !ok {
		return
	}

	var params AmountParams
	if !bindJSON(c, &params) {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	balance, err := fn(ctx, accountNumber, *params.Amount)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, BalanceResponse{Balance: balance.InexactFloat64()})
}

// bindJSON разбирает тело запроса. Ошибки валидации отдаются как 422, прочие ошибки разбора как 400.
func bindJSON(c *gin.Context, params any) bool {
	bindErr := c.ShouldBindJSON(params)
	if bindErr == nil {
		return true
	}
	var valErrs validator.ValidationErrors
	if errors.As(bindErr, &valErrs) {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": valErrs.Error()})
		return false
	}
	_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
	return false
}

func accountNumberFromPath(c *gin.Context) (int64, bool) {
	accountNumber, err := strconv.ParseInt(c.Param(AccountParam), 10, 64)
	if err != nil {
		_ = c.AbortWithError(http.StatusBadRequest, errors.New("account number must be an integer")).
			SetType(gin.ErrorTypePublic)
		return 0, false
	}
	return accountNumber, true
}

var domainErrStatuses = []struct {
	err    error
	status int
}{
	{err: domain.ErrUserNotFound, status: http.StatusNotFound},
	{err: domain.ErrAccountNotFound, status: http.StatusNotFound},
	{err: domain.ErrInvalidAccountNumber, status: http.StatusUnprocessableEntity},
	{err: domain.ErrAgeNotEligible, status: http.StatusUnprocessableEntity},
	{err: domain.ErrInvalidAmount, status: http.StatusUnprocessableEntity},
	{err: domain.ErrAccountAlreadyExists, status: http.StatusConflict},
	{err: domain.ErrInsufficientFunds, status: http.StatusPaymentRequired},
}

// abortWithServiceError переводит ошибку сервиса в http статус. Доменные ошибки отдаются клиенту как есть,
// остальные скрываются за текстом статуса.
func abortWithServiceError(c *gin.Context, err error) {
	for _, e := range domainErrStatuses {
		if errors.Is(err, e.err) {
			_ = c.AbortWithError(e.status, e.err).SetType(gin.ErrorTypePublic)
			return
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		_ = c.AbortWithError(http.StatusServiceUnavailable, err).SetType(gin.ErrorTypePrivate)
		return
	}
	_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
}
