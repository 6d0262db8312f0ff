package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DanKadrios/SMTLite/internal/constants"
	"github.com/DanKadrios/SMTLite/internal/logging"
)

type StartBattlePayload struct {
	Player   string `json:"player"`
	Opponent string `json:"opponent" binding:"required"`
}

// ResetBattlePayload may be omitted entirely to replay the same opponent.
type ResetBattlePayload struct {
	Opponent string `json:"opponent"`
}

// StartBattle creates a session and returns its id and initial state.
func (h *BattleHandler) StartBattle(c *gin.Context) {
	var req StartBattlePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	id, st, err := h.svc.StartBattle(req.Player, req.Opponent)
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedStartBattle)
		return
	}
	logging.Debug("battle created via api", logging.Fields{
		constants.LogFieldBattleID: id,
		constants.LogFieldOpponent: req.Opponent,
	})
	c.JSON(http.StatusCreated, gin.H{
		constants.JSONKeyBattleID: id,
		constants.JSONKeyState:    st,
	})
}

// ResetBattle restarts a session, optionally against a new opponent.
func (h *BattleHandler) ResetBattle(c *gin.Context) {
	var req ResetBattlePayload
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	id := c.Param(constants.ParamBattleID)
	st, err := h.svc.ResetBattle(id, req.Opponent)
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedStartBattle)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		constants.JSONKeyBattleID: id,
		constants.JSONKeyState:    st,
	})
}

// EndBattle discards a session.
func (h *BattleHandler) EndBattle(c *gin.Context) {
	if err := h.svc.EndBattle(c.Param(constants.ParamBattleID)); err != nil {
		writeServiceError(c, err, constants.ErrBattleNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}
