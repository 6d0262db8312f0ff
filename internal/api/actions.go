package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DanKadrios/SMTLite/internal/constants"
)

type MoveRequest struct {
	Move string `json:"move"`
}

// SubmitMove resolves the player's move. A rejected move (locked input,
// not enough MP, battle over) is still a 200 carrying the rejection event.
func (h *BattleHandler) SubmitMove(c *gin.Context) {
	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Move) == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	id := c.Param(constants.ParamBattleID)
	sub, err := h.svc.SubmitMove(id, req.Move)
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedSubmitMove)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		constants.JSONKeyBattleID: id,
		constants.JSONKeyAccepted: sub.Accepted,
		constants.JSONKeyState:    sub.State,
		constants.JSONKeyEvents:   sub.Events,
	})
}
