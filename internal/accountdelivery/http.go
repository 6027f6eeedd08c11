// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-petr/account-api/internal/domain"
	"github.com/go-petr/account-api/pkg/errorspkg"
	"github.com/go-petr/account-api/pkg/web"
)

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error)
	Get(ctx context.Context, id int32) (domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	Update(ctx context.Context, id int32, arg domain.CreateAccountParams) (domain.Account, error)
	Delete(ctx context.Context, id int32) error
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns account handler.
func NewHandler(as Service) Handler {
	return Handler{service: as}
}

type accountRequest struct {
	Name        string      `json:"name" binding:"required"`
	Email       string      `json:"email" binding:"required"`
	Address     string      `json:"address" binding:"required"`
	PhoneNumber string      `json:"phone_number" binding:"required"`
	DateJoined  domain.Date `json:"date_joined"`
}

func (r accountRequest) params() domain.CreateAccountParams {
	return domain.CreateAccountParams{
		Name:        r.Name,
		Email:       r.Email,
		Address:     r.Address,
		PhoneNumber: r.PhoneNumber,
		DateJoined:  r.DateJoined,
	}
}

func bindingErrorMsg(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		field := ve[0]
		return field.Field() + web.GetErrorMsg(field)
	}

	return "invalid request body"
}

// Create handles http request to create account.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	// The media type is checked before the body is ever parsed.
	if ct := gctx.ContentType(); ct != "application/json" {
		l.Info().Str("content_type", ct).Msg("unsupported media type")
		gctx.JSON(http.StatusUnsupportedMediaType,
			web.JSONError{Error: "Content-Type must be application/json"})

		return
	}

	var req accountRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.JSONError{Error: bindingErrorMsg(err)})

		return
	}

	createdAccount, err := h.service.Create(ctx, req.params())
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.Header("Location", fmt.Sprintf("/accounts/%d", createdAccount.ID))
	gctx.JSON(http.StatusCreated, createdAccount)
}

type uriRequest struct {
	ID int32 `uri:"id"`
}

// Get handles http request to get account.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req uriRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.JSONError{Error: bindingErrorMsg(err)})

		return
	}

	account, err := h.service.Get(ctx, req.ID)
	if err != nil {
		if err == domain.ErrAccountNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, account)
}

// List handles http request to list all accounts.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	accounts, err := h.service.List(ctx)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, accounts)
}

// Update handles http request to replace an existing account.
func (h *Handler) Update(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri uriRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.JSONError{Error: bindingErrorMsg(err)})

		return
	}

	// Existence is checked before the body is parsed so that updating
	// a missing id reports 404 even when the body is absent.
	if _, err := h.service.Get(ctx, uri.ID); err != nil {
		if err == domain.ErrAccountNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	var req accountRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.JSONError{Error: bindingErrorMsg(err)})

		return
	}

	updatedAccount, err := h.service.Update(ctx, uri.ID, req.params())
	if err != nil {
		if err == domain.ErrAccountNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, updatedAccount)
}

// Delete handles http request to delete account.
func (h *Handler) Delete(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req uriRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.JSONError{Error: bindingErrorMsg(err)})

		return
	}

	if err := h.service.Delete(ctx, req.ID); err != nil {
		if err == domain.ErrAccountNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.Status(http.StatusNoContent)
}
