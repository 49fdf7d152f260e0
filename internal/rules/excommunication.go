package rules

// excommunicable is the closed list of rulers the Pope may excommunicate.
var excommunicable = map[string]bool{
	"henry_viii": true,
	"francis_i":  true,
	"charles_v":  true,
}

// ReligionExceptionRuler is the one ruler who can be excommunicated purely
// for the religious state of his home territory: if his faction controls at
// least one home space that has turned protestant, the bull may be issued.
const ReligionExceptionRuler = "henry_viii"

// ProtectorPower marks a faction as excommunicable when allied with it.
const ProtectorPower = Protestant

// AntagonistPower marks a faction as excommunicable when at war with it.
const AntagonistPower = Papacy

// Excommunicable reports whether the named ruler appears on the fixed
// excommunicable-ruler list. Eligibility conditions on the faction's
// current diplomatic and religious state are checked by the ruler manager.
func Excommunicable(ruler string) bool {
	return excommunicable[ruler]
}
