package texplore

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Channel identifies one of the three colour channels.
type Channel uint8

const (
	Red Channel = iota
	Green
	Blue
)

// Channels lists the channels in evaluation order.
var Channels = [...]Channel{Red, Green, Blue}

var channelNames = [...]string{"red", "green", "blue"}

var titleCaser = cases.Title(language.English)

// Valid reports whether c is one of Red, Green or Blue.
func (c Channel) Valid() bool {
	return c <= Blue
}

// String returns the lower-case channel name.
func (c Channel) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Channel(%d)", uint8(c))
	}
	return channelNames[c]
}

// Label returns the channel name as shown in menus ("Red").
func (c Channel) Label() string {
	return titleCaser.String(c.String())
}

// ParseChannel parses a channel name. It accepts the full name or its first
// letter, in any case.
func ParseChannel(s string) (Channel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "red", "r":
		return Red, nil
	case "green", "g":
		return Green, nil
	case "blue", "b":
		return Blue, nil
	}
	return 0, fmt.Errorf("texplore: unknown channel %q: %w", s, ErrInvalidArgument)
}
