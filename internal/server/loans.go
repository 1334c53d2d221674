package server

import (
	"fmt"
	"net/http"

	"github.com/DevSlashRichie/coinme/internal/domain"
	"github.com/DevSlashRichie/coinme/internal/service"
	"github.com/gin-gonic/gin"
)

type loanHandler struct {
	svc *service.LoanService
}

type paymentRequest struct {
	Amount *float64 `json:"amount"`
}

func (h *loanHandler) create(c *gin.Context) {
	var in service.CreateLoanInput
	if err := bindJSON(c, &in); err != nil {
		writeError(c, err)
		return
	}
	by, err := creator(c)
	if err != nil {
		writeError(c, err)
		return
	}
	in.CreatedBy = by

	loan, err := h.svc.CreateLoan(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, loan)
}

func (h *loanHandler) get(c *gin.Context) {
	id, err := domain.ParseID("loan id", c.Param("loanId"))
	if err != nil {
		writeError(c, err)
		return
	}
	loan, err := h.svc.GetLoan(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, loan)
}

func (h *loanHandler) schedule(c *gin.Context) {
	id, err := domain.ParseID("loan id", c.Param("loanId"))
	if err != nil {
		writeError(c, err)
		return
	}
	result, err := h.svc.LoanSchedule(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *loanHandler) byBorrower(c *gin.Context) {
	borrower, err := domain.NewParty(c.Param("borrowerType"), c.Param("borrowerId"))
	if err != nil {
		writeError(c, err)
		return
	}
	loans, err := h.svc.GetBorrowerLoans(c.Request.Context(), borrower)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, loans)
}

func (h *loanHandler) payment(c *gin.Context) {
	id, err := domain.ParseID("loan id", c.Param("loanId"))
	if err != nil {
		writeError(c, err)
		return
	}
	var req paymentRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}
	if req.Amount == nil {
		writeError(c, fmt.Errorf("%w: amount is required", domain.ErrValidation))
		return
	}
	if err := h.svc.MakePayment(c.Request.Context(), id, *req.Amount); err != nil {
		writeError(c, err)
		return
	}
	success(c)
}

func (h *loanHandler) status(c *gin.Context) {
	id, err := domain.ParseID("loan id", c.Param("loanId"))
	if err != nil {
		writeError(c, err)
		return
	}
	var req statusRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}
	if err := h.svc.UpdateLoanStatus(c.Request.Context(), id, req.Status); err != nil {
		writeError(c, err)
		return
	}
	success(c)
}
