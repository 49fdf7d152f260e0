package rules

// successionEdge keys the succession graph by faction and current ruler.
type successionEdge struct {
	faction Power
	ruler   string
}

// successionPaths is the fixed directed succession graph. Each entry maps
// a faction's sitting ruler to the named successor.
var successionPaths = map[successionEdge]string{
	{England, "henry_viii"}: "edward_vi",
	{England, "edward_vi"}:  "mary_i",
	{England, "mary_i"}:     "elizabeth_i",

	{France, "francis_i"}: "henry_ii",

	{Ottoman, "suleiman"}: "selim_ii",

	{Hapsburg, "charles_v"}: "philip_ii",

	{Papacy, "leo_x"}:       "clement_vii",
	{Papacy, "clement_vii"}: "paul_iii",
	{Papacy, "paul_iii"}:    "julius_iii",
}

// Successor returns the named successor for a faction's current ruler.
// The boolean is false when no succession edge exists.
func Successor(faction Power, ruler string) (string, bool) {
	next, ok := successionPaths[successionEdge{faction, ruler}]
	return next, ok
}
