package navigator

// Menu identifies which dropdown is open. At most one is open at a time.
type Menu string

const (
	MenuNone     Menu = ""
	MenuTOC      Menu = "toc"
	MenuLanguage Menu = "language"
)

// Valid reports whether m names a dropdown.
func (m Menu) Valid() bool {
	return m == MenuTOC || m == MenuLanguage
}

// Region is where a pointer-down landed, relative to the dropdowns.
type Region string

const (
	RegionTOC      Region = "toc"
	RegionLanguage Region = "language"
	RegionOutside  Region = "outside"
)

func (m Menu) region() Region {
	switch m {
	case MenuTOC:
		return RegionTOC
	case MenuLanguage:
		return RegionLanguage
	}
	return RegionOutside
}

// afterPointer returns the open menu after a pointer-down in r. A press
// anywhere but the open menu's own region closes it.
func afterPointer(open Menu, r Region) Menu {
	if open == MenuNone || open.region() == r {
		return open
	}
	return MenuNone
}

// afterToggle returns the open menu after toggling m.
func afterToggle(open, m Menu) Menu {
	if open == m {
		return MenuNone
	}
	return m
}
