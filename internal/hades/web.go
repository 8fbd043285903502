package hades

import mw "github.com/polycosmos/hades-world/internal/multiworld"

var setupTutorial = mw.Tutorial{
	Title:       "Multiworld Setup Guide",
	Description: "A guide to setting up Hades for Archipelago. This guide covers single-player, multiworld, and related software.",
	Language:    "English",
	File:        "Hades.md",
	Link:        "Hades/en",
	Authors:     []string{"Naix"},
}

// Web is the metadata the web host shows for Hades.
func Web() mw.WebInfo {
	return mw.WebInfo{Tutorials: []mw.Tutorial{setupTutorial}}
}
