package server

import (
	"net/http"

	"github.com/DevSlashRichie/coinme/internal/domain"
	"github.com/DevSlashRichie/coinme/internal/service"
	"github.com/gin-gonic/gin"
)

type transactionHandler struct {
	svc *service.TransactionService
}

func (h *transactionHandler) create(c *gin.Context) {
	var in service.CreateTransactionInput
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

	tx, err := h.svc.CreateTransaction(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tx)
}

func (h *transactionHandler) get(c *gin.Context) {
	id, err := domain.ParseID("transaction id", c.Param("transactionId"))
	if err != nil {
		writeError(c, err)
		return
	}
	tx, err := h.svc.GetTransaction(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

func (h *transactionHandler) byCreator(c *gin.Context) {
	id, err := domain.ParseID("creator id", c.Param("creatorId"))
	if err != nil {
		writeError(c, err)
		return
	}
	txs, err := h.svc.GetCreatorTransactions(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, txs)
}

func (h *transactionHandler) byOwner(c *gin.Context) {
	owner, err := domain.NewParty(c.Param("ownerType"), c.Param("ownerId"))
	if err != nil {
		writeError(c, err)
		return
	}
	txs, err := h.svc.GetOwnerTransactions(c.Request.Context(), owner)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, txs)
}

func (h *transactionHandler) balance(c *gin.Context) {
	owner, err := domain.NewParty(c.Param("ownerType"), c.Param("ownerId"))
	if err != nil {
		writeError(c, err)
		return
	}
	balance, err := h.svc.GetOwnerBalance(c.Request.Context(), owner)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": balance})
}
