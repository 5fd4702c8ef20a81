package replay

import (
	"errors"
	"sort"

	"github.com/slpstats/replayd/internal/queryengine"
)

// ErrMatchNotFound is returned when the match settings source has no row
// for the requested match id.
var ErrMatchNotFound = errors.New("match not found")

// SourceData is the joined output of the five data queries.
type SourceData struct {
	MatchSettings  *queryengine.Result
	PlayerSettings *queryengine.Result
	Frames         *queryengine.Result
	Items          *queryengine.Result
	PlatformEvents *queryengine.Result
}

// Assemble turns the raw query results into one temporally-consistent
// snapshot: normalize each source per its schema, group frame rows by frame
// number, decode inputs, attach items, resolve platform state, and merge
// additive defaults.
func Assemble(src SourceData) (*Snapshot, error) {
	matchRecords := Normalize(src.MatchSettings, matchSettingsSchema)
	if len(matchRecords) == 0 {
		return nil, ErrMatchNotFound
	}

	settings := Settings{
		MatchSettings: buildMatchSettings(matchRecords[0]),
		Players:       buildPlayerSettings(Normalize(src.PlayerSettings, playerSettingsSchema)),
	}

	groups := groupByFrame(Normalize(src.Frames, frameSchema))
	items := Normalize(src.Items, itemSchema)
	leftEvents, rightEvents := splitPlatformEvents(Normalize(src.PlatformEvents, platformSchema))

	sort.Ints(groups.order)

	frames := make([]Frame, 0, len(groups.order))
	for _, number := range groups.order {
		rows := groups.byNumber[number]
		frames = append(frames, Frame{
			Number:     number,
			RandomSeed: rows[0].Int("seed"),
			Players:    buildPlayerFrames(rows),
			Items:      buildItems(items, number),
			Stage: StageState{
				FODLeftPlatformHeight:  resolvePlatformHeight(leftEvents, number, fodLeftPlatformFallback),
				FODRightPlatformHeight: resolvePlatformHeight(rightEvents, number, fodRightPlatformFallback),
			},
		})
	}

	return &Snapshot{
		Settings: settings,
		Frames:   frames,
		Ending:   Ending{EndingDefaults: endingDefaults()},
	}, nil
}

func buildMatchSettings(rec Record) MatchSettings {
	return MatchSettings{
		SlpVersion:            rec.Str("slp_version"),
		StartAt:               rec.Str("started_at"),
		StageID:               rec.Int("stage_id"),
		TimerStart:            rec.Int("timer_start"),
		LastFrame:             rec.Int("last_frame"),
		MatchSettingsDefaults: matchSettingsDefaults(),
	}
}

func buildPlayerSettings(records []Record) []PlayerSettings {
	players := make([]PlayerSettings, 0, len(records))
	for _, rec := range records {
		players = append(players, PlayerSettings{
			PlayerIndex:            rec.Int("player_index"),
			Port:                   rec.Int("port"),
			ExternalCharacterID:    rec.Int("character_id"),
			PlayerType:             rec.Int("player_type"),
			DisplayName:            rec.Str("display_name"),
			ConnectCode:            rec.Str("connect_code"),
			Nametag:                rec.Str("nametag"),
			PlayerSettingsDefaults: playerSettingsDefaults(),
		})
	}
	sort.Slice(players, func(i, j int) bool {
		return players[i].PlayerIndex < players[j].PlayerIndex
	})
	return players
}

func buildPlayerFrames(rows []Record) []PlayerFrame {
	players := make([]PlayerFrame, 0, len(rows))
	for _, rec := range rows {
		players = append(players, PlayerFrame{
			Number:      rec.Int("frame"),
			PlayerIndex: rec.Int("player_index"),
			IsNana:      rec.Bool("is_follower"),
			Inputs:      decodeInputs(rec),
			State: PlayerState{
				InternalCharacterID: rec.Int("internal_character_id"),
				ActionStateID:       rec.Int("action_state_id"),
				PositionX:           rec.Float("position_x"),
				PositionY:           rec.Float("position_y"),
				FacingDirection:     rec.Float("facing_direction"),
				Percent:             rec.Float("percent"),
				StocksRemaining:     rec.Int("stocks_remaining"),
				ActionStateCounter:  rec.Float("action_state_counter"),
				HitstunRemaining:    rec.Float("hitstun_remaining"),
				PlayerStateDefaults: playerStateDefaults(),
			},
		})
	}
	sort.Slice(players, func(i, j int) bool {
		return players[i].PlayerIndex < players[j].PlayerIndex
	})
	return players
}

// buildItems selects the item instances whose frame number matches exactly.
// A frame with no items yields an empty list, never nil.
func buildItems(records []Record, number int) []Item {
	items := []Item{}
	for _, rec := range records {
		if rec.Int("frame") != number {
			continue
		}
		items = append(items, Item{
			Number:          number,
			TypeID:          rec.Int("type_id"),
			State:           rec.Int("state"),
			FacingDirection: rec.Float("facing_direction"),
			PositionX:       rec.Float("position_x"),
			PositionY:       rec.Float("position_y"),
			VelocityX:       rec.Float("velocity_x"),
			VelocityY:       rec.Float("velocity_y"),
			SpawnID:         rec.Int("spawn_id"),
			Owner:           rec.Int("owner"),
			MissileType:     rec.Int("missile_type"),
			TurnipFace:      rec.Int("turnip_face"),
			IsShotLaunched:  rec.Bool("is_shot_launched"),
			ChargePower:     rec.Int("charge_power"),
			ItemDefaults:    itemDefaults(),
		})
	}
	return items
}

// splitPlatformEvents separates the combined event rows by side and sorts
// each side ascending by frame. The sort is stable so that events sharing a
// frame keep their input order, which makes the last one authoritative
// under carry-forward resolution.
func splitPlatformEvents(records []Record) (left, right []PlatformEvent) {
	for _, rec := range records {
		ev := PlatformEvent{Frame: rec.Int("frame"), Height: rec.Float("height")}
		switch rec.Str("side") {
		case platformSideLeft:
			left = append(left, ev)
		case platformSideRight:
			right = append(right, ev)
		}
	}
	byFrame := func(events []PlatformEvent) func(i, j int) bool {
		return func(i, j int) bool { return events[i].Frame < events[j].Frame }
	}
	sort.SliceStable(left, byFrame(left))
	sort.SliceStable(right, byFrame(right))
	return left, right
}
