// Package ledgerdelivery manages the HTTP delivery layer of the ledger.
package ledgerdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/instapay/ledger/internal/domain"
	"github.com/instapay/ledger/internal/middleware"
	"github.com/instapay/ledger/pkg/errorspkg"
	"github.com/instapay/ledger/pkg/passpkg"
	"github.com/instapay/ledger/pkg/validationpkg"
	"github.com/instapay/ledger/pkg/web"
)

var (
	// ErrInvalidUsername indicates that the username does not satisfy the signup format rules.
	ErrInvalidUsername = errors.New("username must be at least 3 characters and start with an uppercase letter")
	// ErrInvalidPassword indicates that the password does not satisfy the signup format rules.
	ErrInvalidPassword = errors.New("password must be at least 6 characters and contain upper, lower, digit and one of $ @ & -")
)

// Service provides the ledger engine interface needed by the delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package ledgerdelivery
type Service interface {
	CreateAccount(ctx context.Context, username, credentialRef string) (domain.Account, error)
	Deposit(ctx context.Context, username, amount string) (domain.Account, error)
	Withdraw(ctx context.Context, username, amount string) (domain.Account, error)
	Transfer(ctx context.Context, fromUsername, amount, toUsername string) (domain.TransferResult, error)
	GetBalance(ctx context.Context, username string) (string, error)
	GetHistory(ctx context.Context, username string) ([]domain.TransactionRecord, error)
}

// Handler facilitates ledger delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns ledger handler.
func NewHandler(s Service) Handler {
	return Handler{service: s}
}

func bindErrorMsg(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		field := ve[0]
		return field.Field() + web.GetErrorMsg(field)
	}

	return "invalid request body"
}

type accountData struct {
	Account domain.Account `json:"account"`
}

type createAccountRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateAccount handles the signup request. Format validation and credential
// hashing happen here; the engine itself never inspects credentials.
func (h *Handler) CreateAccount(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createAccountRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	if !validationpkg.IsValidUsername(req.Username) {
		gctx.JSON(http.StatusBadRequest, web.Error(ErrInvalidUsername))
		return
	}

	if !validationpkg.IsValidPassword(req.Password) {
		gctx.JSON(http.StatusBadRequest, web.Error(ErrInvalidPassword))
		return
	}

	credentialRef, err := passpkg.Hash(req.Password)
	if err != nil {
		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	account, err := h.service.CreateAccount(ctx, req.Username, credentialRef)
	if err != nil {
		if err == domain.ErrUsernameAlreadyExists {
			gctx.JSON(http.StatusConflict, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: accountData{account}})
}

type amountRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// Deposit handles http request to deposit funds into the principal's account.
func (h *Handler) Deposit(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req amountRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	username := gctx.MustGet(middleware.PrincipalKey).(string)

	account, err := h.service.Deposit(ctx, username, req.Amount)
	if err != nil {
		writeDomainError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: accountData{account}})
}

// Withdraw handles http request to withdraw funds from the principal's account.
func (h *Handler) Withdraw(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req amountRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	username := gctx.MustGet(middleware.PrincipalKey).(string)

	account, err := h.service.Withdraw(ctx, username, req.Amount)
	if err != nil {
		writeDomainError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: accountData{account}})
}

type transferRequest struct {
	ToUsername string `json:"to_username" binding:"required"`
	Amount     string `json:"amount" binding:"required"`
}

type transferData struct {
	Transfer domain.TransferResult `json:"transfer"`
}

// Transfer handles http request to move funds from the principal's account to
// the destination account.
func (h *Handler) Transfer(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req transferRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	username := gctx.MustGet(middleware.PrincipalKey).(string)

	result, err := h.service.Transfer(ctx, username, req.Amount, req.ToUsername)
	if err != nil {
		writeDomainError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: transferData{result}})
}

type balanceData struct {
	Username string `json:"username"`
	Balance  string `json:"balance"`
}

// GetBalance handles http request to read the principal's committed balance.
func (h *Handler) GetBalance(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	username := gctx.MustGet(middleware.PrincipalKey).(string)

	balance, err := h.service.GetBalance(ctx, username)
	if err != nil {
		writeDomainError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: balanceData{Username: username, Balance: balance}})
}

type historyData struct {
	Records []domain.TransactionRecord `json:"records"`
}

// GetHistory handles http request to list the principal's transaction records.
func (h *Handler) GetHistory(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	username := gctx.MustGet(middleware.PrincipalKey).(string)

	records, err := h.service.GetHistory(ctx, username)
	if err != nil {
		writeDomainError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: historyData{Records: records}})
}

// writeDomainError maps engine errors onto HTTP status codes.
func writeDomainError(gctx *gin.Context, err error) {
	switch err {
	case domain.ErrInvalidAmount, domain.ErrSelfTransfer, domain.ErrUnknownDestination:
		gctx.JSON(http.StatusBadRequest, web.Error(err))
	case domain.ErrAccountNotFound:
		gctx.JSON(http.StatusNotFound, web.Error(err))
	case domain.ErrInsufficientBalance:
		gctx.JSON(http.StatusConflict, web.Error(err))
	case domain.ErrTooBusy:
		gctx.JSON(http.StatusServiceUnavailable, web.Error(err))
	default:
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}
