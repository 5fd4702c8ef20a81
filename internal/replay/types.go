package replay

// The snapshot document mirrors the shape of the original binary replay
// format once parsed: top-level settings, one entry per frame, and ending
// metadata. Fields that the tabular sources never carry live in embedded
// *Defaults structs; their JSON field sets must stay disjoint from the
// computed fields they sit next to (asserted in defaults_test.go).

// Snapshot is the fully reconstructed replay document.
type Snapshot struct {
	Settings Settings `json:"settings"`
	Frames   []Frame  `json:"frames"`
	Ending   Ending   `json:"ending"`
}

// Settings combines match-level configuration with per-seat player
// configuration.
type Settings struct {
	MatchSettings
	Players []PlayerSettings `json:"players"`
}

// MatchSettings is the per-match configuration recovered from the match
// settings source.
type MatchSettings struct {
	SlpVersion string `json:"slpVersion"`
	StartAt    string `json:"startAt"`
	StageID    int    `json:"stageId"`
	TimerStart int    `json:"timerStart"`
	LastFrame  int    `json:"lastFrame"`
	MatchSettingsDefaults
}

// MatchSettingsDefaults are match configuration fields that never vary per
// request.
type MatchSettingsDefaults struct {
	IsTeams           bool `json:"isTeams"`
	IsPAL             bool `json:"isPAL"`
	IsFrozenPS        bool `json:"isFrozenPS"`
	FriendlyFire      bool `json:"friendlyFire"`
	GameMode          int  `json:"gameMode"`
	TimerType         int  `json:"timerType"`
	ItemSpawnBehavior int  `json:"itemSpawnBehavior"`
	Scene             int  `json:"scene"`
}

// PlayerSettings is one seat's configuration, keyed by PlayerIndex.
type PlayerSettings struct {
	PlayerIndex         int    `json:"playerIndex"`
	Port                int    `json:"port"`
	ExternalCharacterID int    `json:"externalCharacterId"`
	PlayerType          int    `json:"type"`
	DisplayName         string `json:"displayName"`
	ConnectCode         string `json:"connectCode"`
	Nametag             string `json:"nametag"`
	PlayerSettingsDefaults
}

// PlayerSettingsDefaults are per-seat configuration fields absent from the
// player settings source.
type PlayerSettingsDefaults struct {
	CharacterColor int     `json:"characterColor"`
	StartStocks    int     `json:"startStocks"`
	TeamID         int     `json:"teamId"`
	TeamShade      int     `json:"teamShade"`
	Handicap       int     `json:"handicap"`
	StaminaMode    bool    `json:"staminaMode"`
	OffenseRatio   float64 `json:"offenseRatio"`
	DefenseRatio   float64 `json:"defenseRatio"`
	ModelScale     float64 `json:"modelScale"`
	ControllerFix  string  `json:"controllerFix"`
}

// Frame is one simulated tick: every player's input+state, all active item
// instances, and the derived stage state.
type Frame struct {
	Number     int           `json:"frame"`
	RandomSeed int           `json:"randomSeed"`
	Players    []PlayerFrame `json:"players"`
	Items      []Item        `json:"items"`
	Stage      StageState    `json:"stage"`
}

// PlayerFrame is one player's slice of a frame.
type PlayerFrame struct {
	Number      int          `json:"frame"`
	PlayerIndex int          `json:"playerIndex"`
	IsNana      bool         `json:"isNana"`
	Inputs      PlayerInputs `json:"inputs"`
	State       PlayerState  `json:"state"`
}

// PlayerInputs carries both views of the controller for a frame.
type PlayerInputs struct {
	Physical  PhysicalInputs  `json:"physical"`
	Processed ProcessedInputs `json:"processed"`
}

// Buttons are the digital controller attributes decoded from the packed
// bitmask. Shared by both input views.
type Buttons struct {
	DPadLeft        bool `json:"dPadLeft"`
	DPadRight       bool `json:"dPadRight"`
	DPadDown        bool `json:"dPadDown"`
	DPadUp          bool `json:"dPadUp"`
	Z               bool `json:"z"`
	RTriggerDigital bool `json:"rTriggerDigital"`
	LTriggerDigital bool `json:"lTriggerDigital"`
	A               bool `json:"a"`
	B               bool `json:"b"`
	X               bool `json:"x"`
	Y               bool `json:"y"`
	Start           bool `json:"start"`
}

// PhysicalInputs is the raw controller view: digital buttons plus raw
// analog trigger magnitudes.
type PhysicalInputs struct {
	Buttons
	LTrigger float64 `json:"lTrigger"`
	RTrigger float64 `json:"rTrigger"`
}

// ProcessedInputs is the engine-processed view: digital buttons plus stick
// axes and the combined trigger magnitude.
type ProcessedInputs struct {
	Buttons
	JoystickX  float64 `json:"joystickX"`
	JoystickY  float64 `json:"joystickY"`
	CStickX    float64 `json:"cStickX"`
	CStickY    float64 `json:"cStickY"`
	AnyTrigger float64 `json:"anyTrigger"`
}

// PlayerState is the post-action character/physics view of a frame.
type PlayerState struct {
	InternalCharacterID int     `json:"internalCharacterId"`
	ActionStateID       int     `json:"actionStateId"`
	PositionX           float64 `json:"positionX"`
	PositionY           float64 `json:"positionY"`
	FacingDirection     float64 `json:"facingDirection"`
	Percent             float64 `json:"percent"`
	StocksRemaining     int     `json:"stocksRemaining"`
	ActionStateCounter  float64 `json:"actionStateCounter"`
	HitstunRemaining    float64 `json:"hitstunRemaining"`
	PlayerStateDefaults
}

// PlayerStateDefaults are state attributes not present in the frame source.
type PlayerStateDefaults struct {
	ShieldSize    float64 `json:"shieldSize"`
	IsOffscreen   bool    `json:"isOffscreen"`
	LCancelStatus int     `json:"lCancelStatus"`
	LastHitBy     int     `json:"lastHitBy"`
}

// Item is one active item instance on a frame.
type Item struct {
	Number          int     `json:"frame"`
	TypeID          int     `json:"typeId"`
	State           int     `json:"state"`
	FacingDirection float64 `json:"facingDirection"`
	PositionX       float64 `json:"positionX"`
	PositionY       float64 `json:"positionY"`
	VelocityX       float64 `json:"velocityX"`
	VelocityY       float64 `json:"velocityY"`
	SpawnID         int     `json:"spawnId"`
	Owner           int     `json:"owner"`
	MissileType     int     `json:"missileType"`
	TurnipFace      int     `json:"turnipFace"`
	IsShotLaunched  bool    `json:"isShotLaunched"`
	ChargePower     int     `json:"chargePower"`
	ItemDefaults
}

// ItemDefaults are item attributes not present in the item source.
type ItemDefaults struct {
	DamageTaken     float64 `json:"damageTaken"`
	ExpirationTimer float64 `json:"expirationTimer"`
}

// StageState is the resolved platform geometry for one frame.
type StageState struct {
	FODLeftPlatformHeight  float64 `json:"fodLeftPlatformHeight"`
	FODRightPlatformHeight float64 `json:"fodRightPlatformHeight"`
}

// Ending is the fixed game-ending metadata attached to every snapshot.
type Ending struct {
	EndingDefaults
}

// EndingDefaults are the game-ending fields; the tabular sources carry no
// ending data, so the whole struct is defaulted.
type EndingDefaults struct {
	GameEndMethod      int `json:"gameEndMethod"`
	LRASInitiatorIndex int `json:"lrasInitiatorIndex"`
}
