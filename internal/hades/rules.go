package hades

import (
	mw "github.com/polycosmos/hades-world/internal/multiworld"
)

// Share of the total pact items needed to leave each biome under reverse
// heat. Beating Hades needs all of them.
var exitPactShare = map[string][2]int{
	"Exit Tartarus": {1, 4},
	"Exit Asphodel": {1, 2},
	"Exit Elysium":  {3, 4},
}

var exitBoss = map[string]string{
	"Exit Tartarus": BossMeg,
	"Exit Asphodel": BossLernie,
	"Exit Elysium":  BossBros,
}

type rules struct {
	player    int
	pactTotal int
	opts      Options
}

func (r rules) pactsAtLeast(num, den int) mw.Rule {
	if r.opts.HeatSystem == HeatSystemMinimal {
		return nil
	}
	need := r.pactTotal * num / den
	if need == 0 {
		return nil
	}
	names := pactItemNames()
	return func(s *mw.State) bool {
		return s.CountOf(names, r.player) >= need
	}
}

// hasBoss passes once the boss has been beaten with any weapon.
func (r rules) hasBoss(name string) mw.Rule {
	b := bossByName(name)
	if r.opts.LocationSystem != LocationSystemRoomWeaponBased {
		item := b.Item()
		return func(s *mw.State) bool { return s.Has(item, r.player) }
	}
	items := make([]string, len(weapons))
	for i, w := range weapons {
		items[i] = b.WeaponItem(w)
	}
	return func(s *mw.State) bool { return s.HasAny(items, r.player) }
}

func (r rules) hasWeapon(w Weapon) mw.Rule {
	if !r.opts.WeaponSanity {
		return nil
	}
	return func(s *mw.State) bool { return s.Has(w.Item, r.player) }
}

func (r rules) canReach(region string) mw.Rule {
	return func(s *mw.State) bool { return s.CanReachRegion(region, r.player) }
}

func (r rules) has(item string) mw.Rule {
	return func(s *mw.State) bool { return s.Has(item, r.player) }
}

func (r rules) hasAll(items []string) mw.Rule {
	return func(s *mw.State) bool { return s.HasAll(items, r.player) }
}

func (r rules) keepsakeRule(k Keepsake) mw.Rule {
	rs := []mw.Rule{r.canReach(k.Region)}
	if k.Boss != "" {
		rs = append(rs, r.hasBoss(k.Boss))
	}
	if r.opts.StoreSanity {
		rs = append(rs, r.has(ItemKeepsakeCollection))
	}
	return mw.All(rs...)
}

func (r rules) storeRule(e StoreEntry) mw.Rule {
	rs := []mw.Rule{r.canReach(e.Region)}
	if e.Requires != "" {
		rs = append(rs, r.has(e.Requires))
	}
	return mw.All(rs...)
}

func (r rules) fateRule(f Fate) mw.Rule {
	rs := []mw.Rule{r.canReach(f.Region)}
	if f.Boss != "" {
		rs = append(rs, r.hasBoss(f.Boss))
	}
	if f.StoreItem != "" && r.opts.StoreSanity {
		rs = append(rs, r.has(f.StoreItem))
	}
	if len(f.Keepsakes) > 0 && r.opts.KeepsakeSanity {
		rs = append(rs, r.hasAll(f.Keepsakes))
	}
	if f.AllWeapons && r.opts.WeaponSanity {
		rs = append(rs, r.hasAll(weaponItemNames()))
	}
	return mw.All(rs...)
}

// weaponClears passes once Hades has fallen to enough distinct weapons. Only
// room weapon mode tracks per-weapon victories; with plain weaponsanity the
// weapons themselves are counted.
func (r rules) weaponClears() mw.Rule {
	need := r.opts.WeaponsClears
	switch {
	case r.opts.LocationSystem == LocationSystemRoomWeaponBased:
		b := bossByName(BossHades)
		items := make([]string, len(weapons))
		for i, w := range weapons {
			items[i] = b.WeaponItem(w)
		}
		return func(s *mw.State) bool { return s.CountUnique(items, r.player) >= need }
	case r.opts.WeaponSanity:
		items := weaponItemNames()
		return func(s *mw.State) bool { return s.CountUnique(items, r.player) >= need }
	}
	return nil
}

// setRules installs every access rule and the completion condition.
func setRules(m *mw.MultiWorld, player, numberOfPactItems int, locationTable map[string]int64, o Options) error {
	r := rules{player: player, pactTotal: numberOfPactItems, opts: o}

	for _, e := range regionExits {
		share, gated := exitPactShare[e.Exit]
		if !gated {
			continue
		}
		region, err := m.Region(e.Region, player)
		if err != nil {
			return err
		}
		exit, err := region.Exit(e.Exit)
		if err != nil {
			return err
		}
		exit.Rule = mw.All(r.hasBoss(exitBoss[e.Exit]), r.pactsAtLeast(share[0], share[1]))
	}

	for _, ev := range eventPairsForOptions(o) {
		loc, err := m.Location(ev.Location, player)
		if err != nil {
			return err
		}
		var rs []mw.Rule
		if ev.Weapon != nil {
			rs = append(rs, r.hasWeapon(*ev.Weapon))
		}
		if ev.Boss.Name == BossHades {
			rs = append(rs, r.pactsAtLeast(1, 1))
		}
		loc.Rule = mw.All(rs...)
	}

	if o.LocationSystem == LocationSystemRoomWeaponBased {
		for _, w := range weapons {
			for n := 1; n <= roomCount; n++ {
				name := weaponRoomName(n, w)
				if _, ok := locationTable[name]; !ok {
					continue
				}
				loc, err := m.Location(name, player)
				if err != nil {
					return err
				}
				loc.Rule = r.hasWeapon(w)
			}
		}
	}

	if o.KeepsakeSanity {
		for _, k := range keepsakes {
			loc, err := m.Location(keepsakeLocationName(k), player)
			if err != nil {
				return err
			}
			loc.Rule = r.keepsakeRule(k)
		}
	}
	if o.StoreSanity {
		for _, e := range store {
			loc, err := m.Location(e.Location(), player)
			if err != nil {
				return err
			}
			loc.Rule = r.storeRule(e)
		}
	}

	var fateLocs []*mw.Location
	if o.FateSanity {
		for _, f := range fates {
			loc, err := m.Location(f.Name, player)
			if err != nil {
				return err
			}
			loc.Rule = r.fateRule(f)
			fateLocs = append(fateLocs, loc)
		}
	}

	goal := []mw.Rule{r.hasBoss(BossHades), r.weaponClears()}
	if o.KeepsakeSanity && o.KeepsakesNeeded > 0 {
		names := keepsakeItemNames()
		need := o.KeepsakesNeeded
		goal = append(goal, func(s *mw.State) bool { return s.CountUnique(names, player) >= need })
	}
	if o.FateSanity && o.FatesNeeded > 0 {
		need := o.FatesNeeded
		goal = append(goal, func(s *mw.State) bool {
			done := 0
			for _, loc := range fateLocs {
				if s.CanReachLocation(loc) {
					done++
				}
			}
			return done >= need
		})
	}
	m.SetCompletionCondition(player, mw.All(goal...))
	return nil
}
