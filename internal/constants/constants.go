package constants

// Environment variable keys
const (
	EnvConfigPrefix = "SMTLITE"
	EnvConfigFile   = "SMTLITE_CONFIG"
)

// HTTP headers and content types
const (
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"
)

// Routes used by the backend router
const (
	RouteAPIPrefix    = "/api"
	RouteVersion      = "/version"
	RouteMoves        = "/moves"
	RouteTemplates    = "/templates"
	RouteTemplateStat = "/templates/:templateKey/stats"
	RouteBattles      = "/battles"
	RouteBattleByID   = "/battles/:battleID"
	RouteBattleMoves  = "/battles/:battleID/moves"
	RouteBattleReset  = "/battles/:battleID/reset"
	RouteRecords      = "/records"
	RouteRecordByID   = "/records/:battleID"
	RouteLeaderboard  = "/leaderboard"
	ParamBattleID     = "battleID"
	ParamTemplateKey  = "templateKey"
	QueryLimit        = "limit"
	QuerySince        = "since"
	DefaultBoardLimit = 10
	MaxBoardLimit     = 100
)

// Common JSON response keys
const (
	JSONKeyError    = "error"
	JSONKeyBattleID = "battle_id"
	JSONKeyState    = "state"
	JSONKeyEvents   = "events"
	JSONKeyAccepted = "accepted"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest         = "Invalid request"
	ErrBattleNotFound         = "Battle not found"
	ErrRecordNotFound         = "Battle record not found"
	ErrUnknownTemplate        = "Unknown actor template"
	ErrFailedStartBattle      = "Failed to start battle"
	ErrFailedSubmitMove       = "Failed to submit move"
	ErrFailedFetchRecords     = "Failed to fetch battle records"
	ErrFailedFetchRecord      = "Failed to fetch battle record"
	ErrFailedFetchLeaderboard = "Failed to fetch leaderboard"
	ErrFailedFetchStats       = "Failed to fetch template stats"
)

// Logging field names
const (
	LogFieldBattleID   = "battle_id"
	LogFieldTemplate   = "template"
	LogFieldOpponent   = "opponent"
	LogFieldMove       = "move"
	LogFieldOrigin     = "origin"
	LogFieldRound      = "round"
	LogFieldPhase      = "phase"
	LogFieldFrom       = "from"
	LogFieldWinner     = "winner"
	LogFieldActor      = "actor"
	LogFieldCost       = "cost"
	LogFieldMana       = "mana"
	LogFieldCount      = "count"
	LogFieldAddr       = "addr"
	LogFieldConfigPath = "config_path"
)
