package api

import (
	"github.com/gin-gonic/gin"

	"github.com/DanKadrios/SMTLite/internal/constants"
	"github.com/DanKadrios/SMTLite/internal/service"
)

// BattleHandler groups all battle-related HTTP handlers.
type BattleHandler struct {
	svc *service.BattleService
}

// NewBattleHandler creates a BattleHandler backed by svc.
func NewBattleHandler(svc *service.BattleService) *BattleHandler {
	return &BattleHandler{svc: svc}
}

// RegisterRoutes mounts every handler under rg.
func (h *BattleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET(constants.RouteVersion, Version)
	rg.GET(constants.RouteMoves, h.ListMoves)
	rg.GET(constants.RouteTemplates, h.ListTemplates)
	rg.GET(constants.RouteTemplateStat, h.GetTemplateStats)
	rg.POST(constants.RouteBattles, h.StartBattle)
	rg.GET(constants.RouteBattleByID, h.GetBattle)
	rg.DELETE(constants.RouteBattleByID, h.EndBattle)
	rg.POST(constants.RouteBattleMoves, h.SubmitMove)
	rg.POST(constants.RouteBattleReset, h.ResetBattle)
	rg.GET(constants.RouteRecords, h.ListRecords)
	rg.GET(constants.RouteRecordByID, h.GetRecord)
	rg.GET(constants.RouteLeaderboard, h.ListLeaderboard)
}

// NewRouter builds the gin engine serving the API.
func NewRouter(svc *service.BattleService) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	NewBattleHandler(svc).RegisterRoutes(router.Group(constants.RouteAPIPrefix))
	return router
}
