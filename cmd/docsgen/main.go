package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/polycosmos/hades-world/internal/config"
	"github.com/polycosmos/hades-world/internal/hades"
	"github.com/polycosmos/hades-world/internal/multiworld"
)

type docFile struct {
	Name    string
	Title   string
	Content string
}

func main() {
	root := filepath.Join("docs", "reference", "catalogs")
	if err := os.MkdirAll(root, 0o755); err != nil {
		fatal(err)
	}

	files := []docFile{
		generateItemsDoc(),
		generateLocationsDoc(),
		generateOptionsDoc(),
		generatePactsDoc(),
		generateKeepsakesDoc(),
		generateStoreDoc(),
		generateFatesDoc(),
	}
	for _, f := range files {
		path := filepath.Join(root, f.Name)
		if err := os.WriteFile(path, []byte(f.Content), 0o644); err != nil {
			fatal(err)
		}
		fmt.Printf("wrote %s\n", path)
	}

	index := generateCatalogIndex(files)
	indexPath := filepath.Join(root, "README.md")
	if err := os.WriteFile(indexPath, []byte(index), 0o644); err != nil {
		fatal(err)
	}
	fmt.Printf("wrote %s\n", indexPath)
}

func generateCatalogIndex(files []docFile) string {
	var b strings.Builder
	b.WriteString("# Hades Catalogs\n\n")
	b.WriteString("Generated from the current Go source using `go run ./cmd/docsgen`.\n\n")
	for _, f := range files {
		b.WriteString(fmt.Sprintf("- [%s](./%s)\n", f.Title, f.Name))
	}
	return b.String()
}

func generateItemsDoc() docFile {
	table := hades.ItemTable()
	items := make([]hades.ItemData, 0, len(table))
	for _, it := range table {
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Code < items[j].Code })

	var b strings.Builder
	b.WriteString("# Items\n\n")
	b.WriteString("Source: `internal/hades/items.go` (`ItemTable`).\n\n")
	b.WriteString(fmt.Sprintf("Total items: **%d**. Event items carry no id and are not listed.\n\n", len(items)))
	b.WriteString("| ID | Name | Classification |\n")
	b.WriteString("| --- | --- | --- |\n")
	for _, it := range items {
		b.WriteString("| ")
		b.WriteString(strconv.FormatInt(it.Code, 10))
		b.WriteString(" | ")
		b.WriteString(escape(it.Name))
		b.WriteString(" | ")
		b.WriteString(escape(it.Classification.String()))
		b.WriteString(" |\n")
	}
	return docFile{Name: "items.md", Title: "Items", Content: b.String()}
}

func generateLocationsDoc() docFile {
	locs := hades.AllLocations()
	sort.Slice(locs, func(i, j int) bool { return locs[i].Code < locs[j].Code })

	var b strings.Builder
	b.WriteString("# Locations\n\n")
	b.WriteString("Source: `internal/hades/locations.go` (`AllLocations`).\n\n")
	b.WriteString(fmt.Sprintf("Total locations: **%d**. Score checks are listed up to the maximum amount; ", len(locs)))
	b.WriteString("their region depends on the chosen amount.\n\n")
	b.WriteString("| ID | Name | Region |\n")
	b.WriteString("| --- | --- | --- |\n")
	for _, l := range locs {
		b.WriteString("| ")
		b.WriteString(strconv.FormatInt(l.Code, 10))
		b.WriteString(" | ")
		b.WriteString(escape(l.Name))
		b.WriteString(" | ")
		b.WriteString(escape(l.Region))
		b.WriteString(" |\n")
	}

	b.WriteString("\n## Events\n\n")
	b.WriteString("| Location | Item | Region |\n")
	b.WriteString("| --- | --- | --- |\n")
	for _, boss := range hades.Bosses() {
		b.WriteString(fmt.Sprintf("| %s | %s | %s |\n", escape(boss.Location()), escape(boss.Item()), escape(boss.Region)))
	}
	return docFile{Name: "locations.md", Title: "Locations", Content: b.String()}
}

func generateOptionsDoc() docFile {
	defs := hades.OptionDefs()

	var b strings.Builder
	b.WriteString("# Options\n\n")
	b.WriteString("Source: `internal/hades/options.go` (`OptionDefs`). Listed in slot data order.\n\n")
	b.WriteString("| Name | Kind | Default | Values | Description |\n")
	b.WriteString("| --- | --- | --- | --- | --- |\n")
	for _, d := range defs {
		b.WriteString("| ")
		b.WriteString(escape(d.Name))
		b.WriteString(" | ")
		b.WriteString(escape(string(d.Kind)))
		b.WriteString(" | ")
		b.WriteString(escape(formatDefault(d)))
		b.WriteString(" | ")
		b.WriteString(escape(formatValues(d)))
		b.WriteString(" | ")
		b.WriteString(escape(d.Description))
		b.WriteString(" |\n")
	}
	return docFile{Name: "options.md", Title: "Options", Content: b.String()}
}

func generatePactsDoc() docFile {
	pacts := hades.Pacts()
	total, ceiling := 0, 0
	for _, p := range pacts {
		total += p.Default
		ceiling += p.MaxLevel
	}

	var b strings.Builder
	b.WriteString("# Pacts\n\n")
	b.WriteString("Source: `internal/hades/items.go` (`Pacts`).\n\n")
	b.WriteString(fmt.Sprintf("Default pact items: **%d** of a possible **%d**.\n\n", total, ceiling))
	b.WriteString("| Pact | Item | Option | Max Level | Default |\n")
	b.WriteString("| --- | --- | --- | --- | --- |\n")
	for _, p := range pacts {
		b.WriteString(fmt.Sprintf("| %s | %s | %s | %d | %d |\n", escape(p.Display), escape(p.Item), escape(p.Option), p.MaxLevel, p.Default))
	}
	return docFile{Name: "pacts.md", Title: "Pacts", Content: b.String()}
}

func generateKeepsakesDoc() docFile {
	var b strings.Builder
	b.WriteString("# Keepsakes\n\n")
	b.WriteString("Source: `internal/hades/items.go` (`Keepsakes`).\n\n")
	b.WriteString("| Item | Giver | Region | Needs Victory |\n")
	b.WriteString("| --- | --- | --- | --- |\n")
	for _, k := range hades.Keepsakes() {
		b.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n", escape(k.Item), escape(k.Giver), escape(k.Region), escape(k.Boss)))
	}
	return docFile{Name: "keepsakes.md", Title: "Keepsakes", Content: b.String()}
}

func generateStoreDoc() docFile {
	var b strings.Builder
	b.WriteString("# Store\n\n")
	b.WriteString("Source: `internal/hades/items.go` (`StoreEntries`). Only used with storesanity.\n\n")
	b.WriteString("| Location | Item | Region | Requires | Classification |\n")
	b.WriteString("| --- | --- | --- | --- | --- |\n")
	for _, s := range hades.StoreEntries() {
		b.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
			escape(s.Location()), escape(s.Item()), escape(s.Region), escape(s.Requires), escape(s.Class.String())))
	}
	return docFile{Name: "store.md", Title: "Store", Content: b.String()}
}

func generateFatesDoc() docFile {
	var b strings.Builder
	b.WriteString("# Fated List\n\n")
	b.WriteString("Source: `internal/hades/locations.go` (`Fates`). Only used with fatesanity.\n\n")
	b.WriteString("| Prophecy | Region | Needs Victory | Store Item | Keepsakes | All Weapons |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- |\n")
	for _, f := range hades.Fates() {
		b.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s |\n",
			escape(f.Name), escape(f.Region), escape(f.Boss), escape(f.StoreItem),
			escape(strings.Join(f.Keepsakes, ", ")), yesNo(f.AllWeapons)))
	}
	return docFile{Name: "fates.md", Title: "Fated List", Content: b.String()}
}

func formatDefault(d multiworld.OptionDef) string {
	switch d.Kind {
	case multiworld.KindToggle:
		return yesNo(d.Default == 1)
	case multiworld.KindChoice:
		return d.ChoiceName(d.Default)
	}
	return strconv.Itoa(d.Default)
}

func formatValues(d multiworld.OptionDef) string {
	switch d.Kind {
	case multiworld.KindToggle:
		return "true, false"
	case multiworld.KindChoice:
		names := make([]string, 0, len(d.Choices))
		for _, c := range d.Choices {
			names = append(names, fmt.Sprintf("%s (%d)", c.Name, c.Value))
		}
		return strings.Join(names, ", ")
	}
	return fmt.Sprintf("%d-%d", d.Min, d.Max)
}

func escape(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	v = strings.ReplaceAll(v, "|", "\\|")
	v = strings.ReplaceAll(v, "\n", "<br>")
	return v
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func fatal(err error) {
	config.Exitf("error: %v", err)
}
