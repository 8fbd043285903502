package hades

import (
	mw "github.com/polycosmos/hades-world/internal/multiworld"
)

// regionExits lists each region's exits and where they lead, in run order.
var regionExits = []struct {
	Region string
	Exit   string
	Target string
}{
	{Region: mw.MenuRegion, Exit: "Enter House", Target: RegionHouse},
	{Region: RegionHouse, Exit: "Enter Tartarus", Target: RegionTartarus},
	{Region: RegionTartarus, Exit: "Exit Tartarus", Target: RegionAsphodel},
	{Region: RegionAsphodel, Exit: "Exit Asphodel", Target: RegionElysium},
	{Region: RegionElysium, Exit: "Exit Elysium", Target: RegionStyx},
}

// RegionNames is every region in creation order.
func RegionNames() []string {
	return []string{mw.MenuRegion, RegionHouse, RegionTartarus, RegionAsphodel, RegionElysium, RegionStyx}
}

// createRegions builds the region graph for one player and wires the
// player's filtered locations and event locations into it.
func createRegions(m *mw.MultiWorld, player int, locations []LocationData, events []eventPair) error {
	byName := make(map[string]*mw.Region)
	for _, name := range RegionNames() {
		r := mw.NewRegion(name, player)
		byName[name] = r
		if err := m.AddRegion(r); err != nil {
			return err
		}
	}

	for _, loc := range locations {
		r, err := m.Region(loc.Region, player)
		if err != nil {
			return err
		}
		r.AddLocation(loc.Name, loc.Code)
	}
	for _, ev := range events {
		r, err := m.Region(ev.Boss.Region, player)
		if err != nil {
			return err
		}
		r.AddLocation(ev.Location, mw.EventID)
	}

	for _, e := range regionExits {
		byName[e.Region].AddExit(e.Exit).Connect(byName[e.Target])
	}
	return nil
}
