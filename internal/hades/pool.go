package hades

// fillerSlots is the length of the filler list. Percentages map onto it
// one-to-one.
const fillerSlots = 100

type weightedFiller struct {
	name   string
	weight int
}

// FillerPoolOptions returns the ordered list the filler distributor walks.
// Helpers and traps take their percentage of the list, the enabled resources
// share the rest. Entries are interleaved in proportion to their weight so
// that a short walk still sees every kind.
func FillerPoolOptions(o Options) []string {
	helperSlots := min(o.FillerHelperPercentage, fillerSlots)
	trapSlots := min(o.FillerTrapPercentage, fillerSlots-helperSlots)

	maxHealth := helperSlots * o.MaxHealthHelperPercentage / 100
	initialMoney := helperSlots * o.InitialMoneyHelperPercentage / 100
	boonBoost := max(helperSlots-maxHealth-initialMoney, 0)

	entries := []weightedFiller{
		{name: ItemMaxHealthHelper, weight: maxHealth},
		{name: ItemInitialMoneyHelper, weight: initialMoney},
		{name: ItemBoonBoostHelper, weight: boonBoost},
		{name: ItemMoneyPunishment, weight: (trapSlots + 1) / 2},
		{name: ItemHealthPunishment, weight: trapSlots / 2},
	}

	var enabled []string
	for _, r := range resources {
		if o.PackValues[r.Item] > 0 {
			enabled = append(enabled, r.Item)
		}
	}
	rest := fillerSlots - helperSlots - trapSlots
	if len(enabled) == 0 {
		enabled = []string{defaultFiller}
	}
	for i, name := range enabled {
		w := rest / len(enabled)
		if i < rest%len(enabled) {
			w++
		}
		entries = append(entries, weightedFiller{name: name, weight: w})
	}
	return interleave(entries)
}

// interleave expands weights into a sequence using smooth weighted
// round-robin. Ties go to the earlier entry.
func interleave(entries []weightedFiller) []string {
	total := 0
	live := entries[:0:0]
	for _, e := range entries {
		if e.weight > 0 {
			live = append(live, e)
			total += e.weight
		}
	}
	out := make([]string, 0, total)
	current := make([]int, len(live))
	for n := 0; n < total; n++ {
		best := 0
		for i, e := range live {
			current[i] += e.weight
			if current[i] > current[best] {
				best = i
			}
		}
		current[best] -= total
		out = append(out, live[best].name)
	}
	return out
}
