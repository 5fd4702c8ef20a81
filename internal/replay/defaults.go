package replay

// Additive defaults. Each constructor fills only its *Defaults struct, so a
// default can never clobber a computed field; the field sets are disjoint by
// construction.

func matchSettingsDefaults() MatchSettingsDefaults {
	return MatchSettingsDefaults{
		IsTeams:           false,
		IsPAL:             false,
		IsFrozenPS:        false,
		FriendlyFire:      false,
		GameMode:          2, // VS mode
		TimerType:         3, // counting down
		ItemSpawnBehavior: -1,
		Scene:             2,
	}
}

func playerSettingsDefaults() PlayerSettingsDefaults {
	return PlayerSettingsDefaults{
		CharacterColor: 0,
		StartStocks:    4,
		TeamID:         0,
		TeamShade:      0,
		Handicap:       9,
		StaminaMode:    false,
		OffenseRatio:   1.0,
		DefenseRatio:   1.0,
		ModelScale:     1.0,
		ControllerFix:  "UCF",
	}
}

func playerStateDefaults() PlayerStateDefaults {
	return PlayerStateDefaults{
		ShieldSize:    60,
		IsOffscreen:   false,
		LCancelStatus: 0,
		LastHitBy:     -1,
	}
}

func itemDefaults() ItemDefaults {
	return ItemDefaults{
		DamageTaken:     0,
		ExpirationTimer: 0,
	}
}

func endingDefaults() EndingDefaults {
	return EndingDefaults{
		GameEndMethod:      2, // GAME!
		LRASInitiatorIndex: -1,
	}
}
