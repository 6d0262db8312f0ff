package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DanKadrios/SMTLite/internal/constants"
)

// ListMoves returns the move catalog.
func (h *BattleHandler) ListMoves(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Catalog().Moves())
}

// ListTemplates returns the actor templates a battle can be started with.
func (h *BattleHandler) ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Catalog().Templates())
}

// GetTemplateStats returns the stored win/loss counts of one template.
func (h *BattleHandler) GetTemplateStats(c *gin.Context) {
	st, err := h.svc.TemplateStats(c.Param(constants.ParamTemplateKey))
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedFetchStats)
		return
	}
	out, err := MarshalIntoSnakeTimestamps(st)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetBattle returns the battle state and its events from ?since=N on.
func (h *BattleHandler) GetBattle(c *gin.Context) {
	id := c.Param(constants.ParamBattleID)
	st, err := h.svc.State(id)
	if err != nil {
		writeServiceError(c, err, constants.ErrBattleNotFound)
		return
	}
	since := parseIntQuery(c, constants.QuerySince, 0, int(^uint(0)>>1))
	events, err := h.svc.Events(id, since)
	if err != nil {
		writeServiceError(c, err, constants.ErrBattleNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		constants.JSONKeyBattleID: id,
		constants.JSONKeyState:    st,
		constants.JSONKeyEvents:   events,
	})
}

// GetRecord returns a finished battle with its full event log.
func (h *BattleHandler) GetRecord(c *gin.Context) {
	view, err := h.svc.Record(c.Param(constants.ParamBattleID))
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedFetchRecord)
		return
	}
	out, err := MarshalIntoSnakeTimestamps(view)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchRecord})
		return
	}
	c.JSON(http.StatusOK, out)
}

// ListRecords returns the most recent finished battles.
func (h *BattleHandler) ListRecords(c *gin.Context) {
	limit := parseIntQuery(c, constants.QueryLimit, constants.DefaultBoardLimit, constants.MaxBoardLimit)
	recs, err := h.svc.RecentRecords(limit)
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedFetchRecords)
		return
	}
	out, err := MarshalIntoSnakeTimestamps(recs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchRecords})
		return
	}
	c.JSON(http.StatusOK, out)
}

// ListLeaderboard returns the top templates by wins, 10 by default.
func (h *BattleHandler) ListLeaderboard(c *gin.Context) {
	limit := parseIntQuery(c, constants.QueryLimit, constants.DefaultBoardLimit, constants.MaxBoardLimit)
	entries, err := h.svc.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedFetchLeaderboard)
		return
	}
	c.JSON(http.StatusOK, entries)
}
