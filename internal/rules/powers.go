// Package rules holds the static rule tables of the game: which powers
// exist, who may ally with whom, excommunication preconditions, and ruler
// succession paths. Everything here is pure data and pure functions; no
// storage access.
package rules

// Power identifies one of the playable sides.
type Power string

const (
	Ottoman    Power = "ottoman"
	Hapsburg   Power = "hapsburg"
	England    Power = "england"
	France     Power = "france"
	Papacy     Power = "papacy"
	Protestant Power = "protestant"

	Genoa    Power = "genoa"
	Hungary  Power = "hungary"
	Scotland Power = "scotland"
	Venice   Power = "venice"
)

// MajorPowers is the fixed set of player-controlled powers.
var MajorPowers = []Power{Ottoman, Hapsburg, England, France, Papacy, Protestant}

// MinorPowers is the fixed set of non-player powers.
var MinorPowers = []Power{Genoa, Hungary, Scotland, Venice}

// IsMajor reports whether p belongs to the major power set.
func IsMajor(p Power) bool {
	for _, m := range MajorPowers {
		if m == p {
			return true
		}
	}
	return false
}

// IsMinor reports whether p belongs to the minor power set.
func IsMinor(p Power) bool {
	for _, m := range MinorPowers {
		if m == p {
			return true
		}
	}
	return false
}

// Known reports whether p is any recognized power, major or minor.
func Known(p Power) bool {
	return IsMajor(p) || IsMinor(p)
}

// SecondaryUnitKind names the second troop type a power fields next to
// regulars. Exactly one power uses cavalry; everyone else hires mercenaries.
type SecondaryUnitKind string

const (
	UnitMercenaries SecondaryUnitKind = "mercenaries"
	UnitCavalry     SecondaryUnitKind = "cavalry"
)

// secondaryUnits is the single lookup deciding cavalry vs. mercenaries.
// Callers must never branch on power names for this.
var secondaryUnits = map[Power]SecondaryUnitKind{
	Ottoman: UnitCavalry,
}

// SecondaryUnit returns the secondary troop kind for a power.
func SecondaryUnit(p Power) SecondaryUnitKind {
	if k, ok := secondaryUnits[p]; ok {
		return k
	}
	return UnitMercenaries
}

// CorsairPower is the only power that fields corsairs instead of regular
// squadrons and may place piracy tokens.
const CorsairPower = Ottoman
