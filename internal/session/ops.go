package session

import (
	"fmt"

	"github.com/mikyjpeg/asynchis/internal/game"
)

// opTable maps operation names to their entry type and handler. The undo
// manager must cover every entry type named here.
func opTable() map[string]opDef {
	return map[string]opDef{
		"bind_controller":        {game.EntryBindController, opBindController},
		"unbind_controller":      {game.EntryUnbindController, opUnbindController},
		"add_vp":                 {game.EntryAddVP, opAddVP},
		"grant_bonus_vp":         {game.EntryGrantBonusVP, opGrantBonusVP},
		"capture_leader":         {game.EntryCaptureLeader, opCaptureLeader},
		"release_leader":         {game.EntryReleaseLeader, opReleaseLeader},
		"add_formation":          {game.EntryAddFormation, opAddFormation},
		"remove_formation":       {game.EntryRemoveFormation, opRemoveFormation},
		"add_squadron":           {game.EntryAddSquadron, opAddSquadron},
		"remove_squadron":        {game.EntryRemoveSquadron, opRemoveSquadron},
		"set_piracy_token":       {game.EntrySetPiracyToken, opSetPiracyToken},
		"declare_war":            {game.EntryDeclareWar, opDeclareWar},
		"make_peace":             {game.EntryMakePeace, opMakePeace},
		"declare_alliance":       {game.EntryDeclareAlliance, opDeclareAlliance},
		"remove_alliance":        {game.EntryRemoveAlliance, opRemoveAlliance},
		"excommunicate":          {game.EntryExcommunicate, opExcommunicate},
		"remove_excommunication": {game.EntryRemoveExcommunication, opRemoveExcommunication},
		"change_ruler":           {game.EntryChangeRuler, opChangeRuler},
		"set_control":            {game.EntrySetControl, opSetControl},
		"set_religion":           {game.EntrySetReligion, opSetReligion},
		"set_siege":              {game.EntrySetSiege, opSetSiege},
		"set_jesuit_university":  {game.EntrySetJesuitUniversity, opSetJesuitUniversity},
		"shuffle_deck":           {game.EntryShuffleDeck, opShuffleDeck},
		"draw_cards":             {game.EntryDrawCards, opDrawCards},
		"discard_card":           {game.EntryDiscardCard, opDiscardCard},
		"play_card":              {game.EntryPlayCard, opPlayCard},
	}
}

// power resolves the acting power: an explicit power param wins, the
// command's faction is the default.
func power(c Command, p params) string {
	if pw := p.str("power"); pw != "" {
		return pw
	}
	return c.Faction
}

func opBindController(s *Session, c Command, p params, cp int) (any, string, error) {
	faction := power(c, p)
	user := p.str("user")
	if user == "" {
		return nil, "", fmt.Errorf("user is required: %w", game.ErrInvalidInput)
	}
	f, err := s.factions.Get(faction)
	if err != nil {
		return nil, "", err
	}
	payload := game.ControllerPayload{Faction: f.Name, User: user, PrevUser: f.Controller, PrevActive: f.Active, CP: cp}
	if err := s.factions.BindController(faction, user); err != nil {
		return nil, "", err
	}
	return payload, fmt.Sprintf("%s now controls %s", user, f.Name), nil
}

func opUnbindController(s *Session, c Command, p params, cp int) (any, string, error) {
	faction := power(c, p)
	f, err := s.factions.Get(faction)
	if err != nil {
		return nil, "", err
	}
	payload := game.ControllerPayload{Faction: f.Name, PrevUser: f.Controller, PrevActive: f.Active, CP: cp}
	if err := s.factions.UnbindController(faction); err != nil {
		return nil, "", err
	}
	return payload, fmt.Sprintf("%s is now uncontrolled", f.Name), nil
}

func opAddVP(s *Session, c Command, p params, cp int) (any, string, error) {
	faction := power(c, p)
	delta := p.num("amount")
	total, err := s.factions.AddVP(faction, delta)
	if err != nil {
		return nil, "", err
	}
	payload := game.VPPayload{Faction: faction, Delta: delta, CP: cp}
	return payload, fmt.Sprintf("%s now has %d VP", faction, total), nil
}

func opGrantBonusVP(s *Session, c Command, p params, cp int) (any, string, error) {
	faction := power(c, p)
	key := p.str("key")
	if key == "" {
		return nil, "", fmt.Errorf("key is required: %w", game.ErrInvalidInput)
	}
	f, err := s.factions.Get(faction)
	if err != nil {
		return nil, "", err
	}
	payload := game.BonusVPPayload{Faction: faction, Key: key, VP: p.num("vp"), PrevVP: f.BonusVP[key], CP: cp}
	if err := s.factions.GrantBonusVP(faction, key, p.num("vp")); err != nil {
		return nil, "", err
	}
	return payload, fmt.Sprintf("%s bonus %s set to %d VP", faction, key, p.num("vp")), nil
}

func opCaptureLeader(s *Session, c Command, p params, cp int) (any, string, error) {
	faction := power(c, p)
	leader := p.str("leader")
	if err := s.factions.CaptureLeader(faction, leader, s.leaders); err != nil {
		return nil, "", err
	}
	payload := game.LeaderPayload{Faction: faction, Leader: leader, CP: cp}
	return payload, fmt.Sprintf("%s captured %s", faction, leader), nil
}

func opReleaseLeader(s *Session, c Command, p params, cp int) (any, string, error) {
	faction := power(c, p)
	leader := p.str("leader")
	if err := s.factions.ReleaseLeader(faction, leader, s.leaders); err != nil {
		return nil, "", err
	}
	payload := game.LeaderPayload{Faction: faction, Leader: leader, CP: cp}
	return payload, fmt.Sprintf("%s released %s", faction, leader), nil
}

func opAddFormation(s *Session, c Command, p params, cp int) (any, string, error) {
	pw := power(c, p)
	space := p.str("space")
	regulars, secondary := p.num("regulars"), p.num("secondary")
	leaders := p.list("leaders")
	sp, err := s.formations.Add(space, pw, regulars, secondary, leaders)
	if err != nil {
		return nil, "", err
	}
	payload := game.FormationPayload{Space: sp.Name, Power: pw, Regulars: regulars, Secondary: secondary, Leaders: leaders, CP: cp}
	return payload, fmt.Sprintf("%s forces placed in %s", pw, sp.Name), nil
}

func opRemoveFormation(s *Session, c Command, p params, cp int) (any, string, error) {
	pw := power(c, p)
	space := p.str("space")
	regulars, secondary := p.num("regulars"), p.num("secondary")
	leaders := p.list("leaders")
	sp, err := s.formations.Remove(space, pw, regulars, secondary, leaders)
	if err != nil {
		return nil, "", err
	}
	payload := game.FormationPayload{Space: sp.Name, Power: pw, Regulars: regulars, Secondary: secondary, Leaders: leaders, CP: cp}
	return payload, fmt.Sprintf("%s forces removed from %s", pw, sp.Name), nil
}

func opAddSquadron(s *Session, c Command, p params, cp int) (any, string, error) {
	pw := power(c, p)
	location := p.str("location")
	count := p.num("count")
	loans, err := p.loans("loans")
	if err != nil {
		return nil, "", err
	}
	if err := s.naval.AddSquadron(location, pw, count, loans); err != nil {
		return nil, "", err
	}
	payload := game.SquadronPayload{Location: location, Power: pw, Count: count, Loans: loans, CP: cp}
	return payload, fmt.Sprintf("%s naval units placed at %s", pw, location), nil
}

func opRemoveSquadron(s *Session, c Command, p params, cp int) (any, string, error) {
	pw := power(c, p)
	location := p.str("location")
	count := p.num("count")
	loans, err := p.loans("loans")
	if err != nil {
		return nil, "", err
	}
	if err := s.naval.RemoveSquadron(location, pw, count, loans); err != nil {
		return nil, "", err
	}
	payload := game.SquadronPayload{Location: location, Power: pw, Count: count, Loans: loans, CP: cp}
	return payload, fmt.Sprintf("%s naval units removed from %s", pw, location), nil
}

func opSetPiracyToken(s *Session, c Command, p params, cp int) (any, string, error) {
	zone := p.str("zone")
	value := p.boolean("value")
	if err := s.naval.SetPiracyToken(zone, value); err != nil {
		return nil, "", err
	}
	payload := game.PiracyPayload{Zone: zone, Value: value, CP: cp}
	state := "cleared from"
	if value {
		state = "placed in"
	}
	return payload, fmt.Sprintf("piracy token %s %s", state, zone), nil
}

func opDeclareWar(s *Session, c Command, p params, cp int) (any, string, error) {
	pw, target := power(c, p), p.str("target")
	f, err := s.factions.Get(pw)
	if err != nil {
		return nil, "", err
	}
	dissolved := f.IsAlliedWith(target)
	if err := s.diplomacy.DeclareWar(pw, target); err != nil {
		return nil, "", err
	}
	payload := game.DiplomacyPayload{Power1: pw, Power2: target, DissolvedAlliance: dissolved, CP: cp}
	return payload, fmt.Sprintf("%s declared war on %s", pw, target), nil
}

func opMakePeace(s *Session, c Command, p params, cp int) (any, string, error) {
	pw, target := power(c, p), p.str("target")
	if err := s.diplomacy.MakePeace(pw, target); err != nil {
		return nil, "", err
	}
	payload := game.DiplomacyPayload{Power1: pw, Power2: target, CP: cp}
	return payload, fmt.Sprintf("%s and %s made peace", pw, target), nil
}

func opDeclareAlliance(s *Session, c Command, p params, cp int) (any, string, error) {
	pw, target := power(c, p), p.str("target")
	if err := s.diplomacy.DeclareAlliance(pw, target); err != nil {
		return nil, "", err
	}
	payload := game.DiplomacyPayload{Power1: pw, Power2: target, CP: cp}
	return payload, fmt.Sprintf("%s and %s are now allied", pw, target), nil
}

func opRemoveAlliance(s *Session, c Command, p params, cp int) (any, string, error) {
	pw, target := power(c, p), p.str("target")
	if err := s.diplomacy.RemoveAlliance(pw, target); err != nil {
		return nil, "", err
	}
	payload := game.DiplomacyPayload{Power1: pw, Power2: target, CP: cp}
	return payload, fmt.Sprintf("the alliance between %s and %s is dissolved", pw, target), nil
}

func opExcommunicate(s *Session, c Command, p params, cp int) (any, string, error) {
	ruler := p.str("ruler")
	if err := s.rulers.Excommunicate(ruler); err != nil {
		return nil, "", err
	}
	payload := game.RulerPayload{Ruler: ruler, CP: cp}
	return payload, fmt.Sprintf("%s has been excommunicated", ruler), nil
}

func opRemoveExcommunication(s *Session, c Command, p params, cp int) (any, string, error) {
	ruler := p.str("ruler")
	if err := s.rulers.RemoveExcommunication(ruler); err != nil {
		return nil, "", err
	}
	payload := game.RulerPayload{Ruler: ruler, CP: cp}
	return payload, fmt.Sprintf("the excommunication of %s is lifted", ruler), nil
}

func opChangeRuler(s *Session, c Command, p params, cp int) (any, string, error) {
	faction := power(c, p)
	prev, next, err := s.rulers.ChangeRuler(faction)
	if err != nil {
		return nil, "", err
	}
	payload := game.SuccessionPayload{Faction: faction, Prev: prev.Name, Next: next.Name, CP: cp}
	return payload, fmt.Sprintf("%s succeeds %s as ruler of %s", next.Name, prev.Name, faction), nil
}

func opSetControl(s *Session, c Command, p params, cp int) (any, string, error) {
	pw, space := power(c, p), p.str("space")
	prev, err := s.spaces.SetControl(space, pw)
	if err != nil {
		return nil, "", err
	}
	payload := game.ControlPayload{Space: space, Power: pw, Prev: prev, CP: cp}
	return payload, fmt.Sprintf("%s now controls %s", pw, space), nil
}

func opSetReligion(s *Session, c Command, p params, cp int) (any, string, error) {
	space := p.str("space")
	religion := game.Religion(p.str("religion"))
	prev, err := s.spaces.SetReligion(space, religion)
	if err != nil {
		return nil, "", err
	}
	payload := game.ReligionPayload{Space: space, Religion: religion, Prev: prev, CP: cp}
	return payload, fmt.Sprintf("%s is now %s", space, religion), nil
}

func opSetSiege(s *Session, c Command, p params, cp int) (any, string, error) {
	space, value := p.str("space"), p.boolean("value")
	if err := s.spaces.SetSiege(space, value); err != nil {
		return nil, "", err
	}
	payload := game.SpaceFlagPayload{Space: space, Value: value, CP: cp}
	state := "lifted at"
	if value {
		state = "laid at"
	}
	return payload, fmt.Sprintf("siege %s %s", state, space), nil
}

func opSetJesuitUniversity(s *Session, c Command, p params, cp int) (any, string, error) {
	space, value := p.str("space"), p.boolean("value")
	if err := s.spaces.SetJesuitUniversity(space, value); err != nil {
		return nil, "", err
	}
	payload := game.SpaceFlagPayload{Space: space, Value: value, CP: cp}
	state := "dissolved at"
	if value {
		state = "founded at"
	}
	return payload, fmt.Sprintf("jesuit university %s %s", state, space), nil
}

func opShuffleDeck(s *Session, c Command, p params, cp int) (any, string, error) {
	turn := p.num("turn")
	before, err := s.cards.Status()
	if err != nil {
		return nil, "", err
	}
	st, err := s.cards.ShuffleForTurn(turn)
	if err != nil {
		return nil, "", err
	}
	payload := game.ShufflePayload{Turn: turn, Prev: *before, CP: cp}
	return payload, fmt.Sprintf("deck shuffled for turn %d, %d cards", turn, len(st.Deck)), nil
}

func opDrawCards(s *Session, c Command, p params, cp int) (any, string, error) {
	faction := power(c, p)
	count := p.num("count")
	if !p.has("count") {
		var err error
		count, err = s.cards.DrawCount(faction)
		if err != nil {
			return nil, "", err
		}
	}
	drawn, err := s.cards.Draw(faction, count)
	if err != nil {
		return nil, "", err
	}
	payload := game.DrawPayload{Faction: faction, Cards: drawn, CP: cp}
	return payload, fmt.Sprintf("%s drew %d cards", faction, len(drawn)), nil
}

func opDiscardCard(s *Session, c Command, p params, cp int) (any, string, error) {
	card := p.str("card")
	from := ""
	if p.boolean("from_hand") {
		from = power(c, p)
	}
	before, err := s.cards.Status()
	if err != nil {
		return nil, "", err
	}
	if err := s.cards.Discard(card); err != nil {
		return nil, "", err
	}
	payload := game.DiscardPayload{
		Card:      card,
		Faction:   from,
		WasActive: before.ActiveCard == card,
		PrevCP:    before.AvailableCP,
		CP:        cp,
	}
	return payload, fmt.Sprintf("%s discarded", card), nil
}

func opPlayCard(s *Session, c Command, p params, cp int) (any, string, error) {
	card := p.str("card")
	faction := ""
	if p.boolean("from_hand") {
		faction = power(c, p)
	}
	before, err := s.cards.Status()
	if err != nil {
		return nil, "", err
	}
	if err := s.cards.PlayCard(card, faction); err != nil {
		return nil, "", err
	}
	payload := game.PlayPayload{Card: card, Faction: faction, PrevActivePlayer: before.ActivePlayer, CP: cp}
	return payload, fmt.Sprintf("%s is the active impulse", card), nil
}
