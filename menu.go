package texplore

import "fmt"

// MenuEntry is one selectable item of the menu.
type MenuEntry struct {
	Label   string
	Command Command
}

// MenuSection groups related entries. Top-level entries live in a section
// with an empty title.
type MenuSection struct {
	Title   string
	Entries []MenuEntry
}

// Menu returns the menu a UI should offer: a Texture submenu, one submenu per
// channel (ending with an Off entry) and the Change Coordinates, Random
// Texture, Save and Quit actions. Change Coordinates carries the current
// domain; the UI replaces it with the user's input.
func (e *Explorer) Menu() []MenuSection {
	sections := make([]MenuSection, 0, 5)

	texture := MenuSection{Title: "Texture"}
	for i := range Index(NumFormulas) {
		texture.Entries = append(texture.Entries, MenuEntry{
			Label:   fmt.Sprintf("Texture %d", i),
			Command: TextureCommand(i),
		})
	}
	sections = append(sections, texture)

	for _, ch := range Channels {
		sec := MenuSection{Title: ch.Label()[:1]}
		for i := range Off + 1 {
			label := fmt.Sprintf("%s %d", ch.Label(), i)
			if i == Off {
				label = ch.Label() + " Off"
			}
			sec.Entries = append(sec.Entries, MenuEntry{Label: label, Command: ChannelCommand(ch, i)})
		}
		sections = append(sections, sec)
	}

	sections = append(sections, MenuSection{Entries: []MenuEntry{
		{Label: "Change Coordinates", Command: DomainCommand(e.Domain())},
		{Label: "Random Texture", Command: RandomCommand()},
		{Label: "Save", Command: SaveCommand(DefaultFileName)},
		{Label: "Quit", Command: QuitCommand()},
	}})
	return sections
}
