package game

// History entry types. Every mutating command records exactly one of
// these; the undo manager must carry a handler for each.
const (
	EntryAddFormation          EntryType = "add_formation"
	EntryRemoveFormation       EntryType = "remove_formation"
	EntryAddSquadron           EntryType = "add_squadron"
	EntryRemoveSquadron        EntryType = "remove_squadron"
	EntrySetPiracyToken        EntryType = "set_piracy_token"
	EntryDeclareWar            EntryType = "declare_war"
	EntryMakePeace             EntryType = "make_peace"
	EntryDeclareAlliance       EntryType = "declare_alliance"
	EntryRemoveAlliance        EntryType = "remove_alliance"
	EntryExcommunicate         EntryType = "excommunicate"
	EntryRemoveExcommunication EntryType = "remove_excommunication"
	EntryChangeRuler           EntryType = "change_ruler"
	EntryAddVP                 EntryType = "add_vp"
	EntryGrantBonusVP          EntryType = "grant_bonus_vp"
	EntrySetControl            EntryType = "set_control"
	EntrySetReligion           EntryType = "set_religion"
	EntrySetSiege              EntryType = "set_siege"
	EntrySetJesuitUniversity   EntryType = "set_jesuit_university"
	EntryCaptureLeader         EntryType = "capture_leader"
	EntryReleaseLeader         EntryType = "release_leader"
	EntryBindController        EntryType = "bind_controller"
	EntryUnbindController      EntryType = "unbind_controller"
	EntryShuffleDeck           EntryType = "shuffle_deck"
	EntryDrawCards             EntryType = "draw_cards"
	EntryDiscardCard           EntryType = "discard_card"
	EntryPlayCard              EntryType = "play_card"
)

// Payload structs record what a command changed, with enough prior state
// to build the exact inverse. Every payload carries the CP the command
// spent under the shared "cp" key so undo can credit it back uniformly.

type FormationPayload struct {
	Space     string   `json:"space"`
	Power     string   `json:"power"`
	Regulars  int      `json:"regulars"`
	Secondary int      `json:"secondary"`
	Leaders   []string `json:"leaders,omitempty"`
	CP        int      `json:"cp,omitempty"`
}

type SquadronPayload struct {
	Location string `json:"location"`
	Power    string `json:"power"`
	Count    int    `json:"count"`
	Loans    []Loan `json:"loans,omitempty"`
	CP       int    `json:"cp,omitempty"`
}

type PiracyPayload struct {
	Zone  string `json:"zone"`
	Value bool   `json:"value"`
	CP    int    `json:"cp,omitempty"`
}

type DiplomacyPayload struct {
	Power1 string `json:"power1"`
	Power2 string `json:"power2"`
	// DissolvedAlliance marks a war declaration that broke an existing
	// alliance, so undo can restore it.
	DissolvedAlliance bool `json:"dissolved_alliance,omitempty"`
	CP                int  `json:"cp,omitempty"`
}

type RulerPayload struct {
	Ruler string `json:"ruler"`
	CP    int    `json:"cp,omitempty"`
}

type SuccessionPayload struct {
	Faction string `json:"faction"`
	Prev    string `json:"prev"`
	Next    string `json:"next"`
	CP      int    `json:"cp,omitempty"`
}

type VPPayload struct {
	Faction string `json:"faction"`
	Delta   int    `json:"delta"`
	CP      int    `json:"cp,omitempty"`
}

type BonusVPPayload struct {
	Faction string `json:"faction"`
	Key     string `json:"key"`
	VP      int    `json:"vp"`
	PrevVP  int    `json:"prev_vp"`
	CP      int    `json:"cp,omitempty"`
}

type ControlPayload struct {
	Space string `json:"space"`
	Power string `json:"power"`
	Prev  string `json:"prev"`
	CP    int    `json:"cp,omitempty"`
}

type ReligionPayload struct {
	Space    string   `json:"space"`
	Religion Religion `json:"religion"`
	Prev     Religion `json:"prev"`
	CP       int      `json:"cp,omitempty"`
}

type SpaceFlagPayload struct {
	Space string `json:"space"`
	Value bool   `json:"value"`
	CP    int    `json:"cp,omitempty"`
}

type LeaderPayload struct {
	Faction string `json:"faction"`
	Leader  string `json:"leader"`
	CP      int    `json:"cp,omitempty"`
}

type ControllerPayload struct {
	Faction    string `json:"faction"`
	User       string `json:"user,omitempty"`
	PrevUser   string `json:"prev_user,omitempty"`
	PrevActive bool   `json:"prev_active"`
	CP         int    `json:"cp,omitempty"`
}

type ShufflePayload struct {
	Turn int    `json:"turn"`
	Prev Status `json:"prev"`
	CP   int    `json:"cp,omitempty"`
}

type DrawPayload struct {
	Faction string   `json:"faction"`
	Cards   []string `json:"cards"`
	CP      int      `json:"cp,omitempty"`
}

type DiscardPayload struct {
	Card string `json:"card"`
	// Faction is set when the card left a hand; empty means it left the
	// draw pile.
	Faction   string `json:"faction,omitempty"`
	WasActive bool   `json:"was_active,omitempty"`
	PrevCP    int    `json:"prev_cp,omitempty"`
	CP        int    `json:"cp,omitempty"`
}

type PlayPayload struct {
	Card             string `json:"card"`
	Faction          string `json:"faction,omitempty"`
	PrevActivePlayer string `json:"prev_active_player,omitempty"`
	CP               int    `json:"cp,omitempty"`
}
