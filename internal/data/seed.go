package data

import (
	"github.com/mikyjpeg/asynchis/internal/game"
	"github.com/mikyjpeg/asynchis/internal/store"
)

// Seed writes a reference dataset into a freshly created game store. The
// progress callback fires once per document written; pass nil to seed
// silently.
func Seed(st *store.Store, set *Set, progress func()) error {
	tick := func() {
		if progress != nil {
			progress()
		}
	}

	for _, r := range set.Factions {
		if err := st.Write(store.KindFaction, r.Name, r.ToGame()); err != nil {
			return err
		}
		tick()
	}
	for _, r := range set.Spaces {
		if err := st.Write(store.KindSpace, r.Name, r.ToGame()); err != nil {
			return err
		}
		tick()
	}
	for _, r := range set.SeaZones {
		if err := st.Write(store.KindSeaZone, r.Name, r.ToGame()); err != nil {
			return err
		}
		tick()
	}
	for _, r := range set.Rulers {
		if err := st.Write(store.KindRuler, r.Name, r.ToGame()); err != nil {
			return err
		}
		tick()
	}
	for _, r := range set.Leaders {
		if err := st.Write(store.KindLeader, r.Name, r.ToGame()); err != nil {
			return err
		}
		tick()
	}
	for _, r := range set.Reformers {
		if err := st.Write(store.KindReformer, r.Name, r.ToGame()); err != nil {
			return err
		}
		tick()
	}
	for _, r := range set.Debaters {
		if err := st.Write(store.KindDebater, r.Name, r.ToGame()); err != nil {
			return err
		}
		tick()
	}
	for _, r := range set.Electorates {
		if err := st.Write(store.KindElectorate, r.Name, r.ToGame()); err != nil {
			return err
		}
		tick()
	}
	for _, r := range set.Cards {
		if err := st.Write(store.KindCard, r.ID, r.ToGame()); err != nil {
			return err
		}
		tick()
	}

	if err := st.Write(store.KindStatus, game.StatusDocID, &game.Status{}); err != nil {
		return err
	}
	tick()
	return nil
}
