package game

// MaxFactions is the number of faction slots; faction IDs run 0..MaxFactions-1.
const MaxFactions = 16

// FactionIDNone marks "no faction" in queries that can run faction-blind.
const FactionIDNone = -1

// DiplomacyState is the relation between two factions.
type DiplomacyState uint8

const (
	DiplomacyNeutral DiplomacyState = iota
	DiplomacyPeace
	DiplomacyWar
)

// SetDiplomacy sets the symmetric relation between two factions.
func (w *World) SetDiplomacy(a, b int, state DiplomacyState) {
	if a < 0 || a >= MaxFactions || b < 0 || b >= MaxFactions {
		return
	}
	w.diplomacy[a][b] = state
	w.diplomacy[b][a] = state
}

// DiplomacyState returns the relation between two factions.
func (w *World) DiplomacyState(a, b int) (DiplomacyState, bool) {
	if a < 0 || a >= MaxFactions || b < 0 || b >= MaxFactions {
		return DiplomacyNeutral, false
	}
	return w.diplomacy[a][b], true
}

// EnemyFactions returns a bitmask of every faction at war with factionID.
func (w *World) EnemyFactions(factionID int) uint16 {
	if factionID < 0 || factionID >= MaxFactions {
		return 0
	}
	var mask uint16
	for i := 0; i < MaxFactions; i++ {
		if w.diplomacy[factionID][i] == DiplomacyWar {
			mask |= 1 << i
		}
	}
	return mask
}

// SetPlayerControlled marks or unmarks a faction as player-controlled.
func (w *World) SetPlayerControlled(factionID int, controlled bool) {
	if factionID < 0 || factionID >= MaxFactions {
		return
	}
	if controlled {
		w.playerControlled |= 1 << factionID
	} else {
		w.playerControlled &^= 1 << factionID
	}
}

// PlayerControlledMask returns the bitmask of player-controlled factions.
func (w *World) PlayerControlledMask() uint16 {
	return w.playerControlled
}
