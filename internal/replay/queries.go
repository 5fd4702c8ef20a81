package replay

import (
	"fmt"
	"strings"
)

// The five data sources, one query each. Cells come back string-typed from
// the engine; the schemas below drive their coercion.

var matchSettingsSchema = Schema{
	"slp_version": FieldString,
	"started_at":  FieldString,
	"stage_id":    FieldNumber,
	"timer_start": FieldNumber,
	"last_frame":  FieldNumber,
}

var playerSettingsSchema = Schema{
	"player_index": FieldNumber,
	"port":         FieldNumber,
	"character_id": FieldNumber,
	"player_type":  FieldNumber,
	"display_name": FieldString,
	"connect_code": FieldString,
	"nametag":      FieldString,
}

var frameSchema = Schema{
	"frame":                 FieldNumber,
	"player_index":          FieldNumber,
	"is_follower":           FieldBool,
	"seed":                  FieldNumber,
	"buttons":               FieldNumber,
	"joystick_x":            FieldNumber,
	"joystick_y":            FieldNumber,
	"cstick_x":              FieldNumber,
	"cstick_y":              FieldNumber,
	"trigger_l":             FieldNumber,
	"trigger_r":             FieldNumber,
	"internal_character_id": FieldNumber,
	"action_state_id":       FieldNumber,
	"position_x":            FieldNumber,
	"position_y":            FieldNumber,
	"facing_direction":      FieldNumber,
	"percent":               FieldNumber,
	"stocks_remaining":      FieldNumber,
	"action_state_counter":  FieldNumber,
	"hitstun_remaining":     FieldNumber,
}

var itemSchema = Schema{
	"frame":            FieldNumber,
	"type_id":          FieldNumber,
	"state":            FieldNumber,
	"facing_direction": FieldNumber,
	"position_x":       FieldNumber,
	"position_y":       FieldNumber,
	"velocity_x":       FieldNumber,
	"velocity_y":       FieldNumber,
	"spawn_id":         FieldNumber,
	"owner":            FieldNumber,
	"missile_type":     FieldNumber,
	"turnip_face":      FieldNumber,
	"is_shot_launched": FieldBool,
	"charge_power":     FieldNumber,
}

var platformSchema = Schema{
	"frame":  FieldNumber,
	"side":   FieldString,
	"height": FieldNumber,
}

func matchSettingsSQL(matchID string) string {
	return fmt.Sprintf(
		`SELECT slp_version, started_at, stage_id, timer_start, last_frame
FROM match_settings
WHERE match_id = '%s'`, quote(matchID))
}

func playerSettingsSQL(matchID string) string {
	return fmt.Sprintf(
		`SELECT player_index, port, character_id, player_type, display_name, connect_code, nametag
FROM player_settings
WHERE match_id = '%s'
ORDER BY player_index`, quote(matchID))
}

func framesSQL(matchID string, frameStart, frameEnd int) string {
	return fmt.Sprintf(
		`SELECT frame, player_index, is_follower, seed, buttons,
       joystick_x, joystick_y, cstick_x, cstick_y, trigger_l, trigger_r,
       internal_character_id, action_state_id, position_x, position_y,
       facing_direction, percent, stocks_remaining, action_state_counter, hitstun_remaining
FROM player_frames
WHERE match_id = '%s' AND frame >= %d AND frame <= %d
ORDER BY frame`, quote(matchID), frameStart, frameEnd)
}

func itemsSQL(matchID string, frameStart, frameEnd int) string {
	return fmt.Sprintf(
		`SELECT frame, type_id, state, facing_direction, position_x, position_y,
       velocity_x, velocity_y, spawn_id, owner,
       missile_type, turnip_face, is_shot_launched, charge_power
FROM item_frames
WHERE match_id = '%s' AND frame >= %d AND frame <= %d
ORDER BY frame, spawn_id`, quote(matchID), frameStart, frameEnd)
}

// platformEventsSQL fetches the in-range height changes plus, per side, the
// single most recent change strictly before the range. The boundary rows
// anchor carry-forward resolution at the start of the window.
func platformEventsSQL(matchID string, frameStart, frameEnd int) string {
	id := quote(matchID)
	boundary := func(side string) string {
		return fmt.Sprintf(
			`SELECT frame, side, height FROM (
  SELECT frame, side, height
  FROM platform_events
  WHERE match_id = '%s' AND side = '%s' AND frame < %d
  ORDER BY frame DESC
  LIMIT 1
)`, id, side, frameStart)
	}
	return fmt.Sprintf(
		`SELECT frame, side, height
FROM platform_events
WHERE match_id = '%s' AND frame >= %d AND frame <= %d
UNION ALL
%s
UNION ALL
%s`, id, frameStart, frameEnd, boundary(platformSideLeft), boundary(platformSideRight))
}

// quote escapes a string literal for inlining into query text.
func quote(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
