package gallery

import "fmt"

// Selection is either no selection or a concrete gallery index.
// The zero value is no selection.
type Selection struct {
	index int
	set   bool
}

// NoSelection returns the empty selection.
func NoSelection() Selection {
	return Selection{}
}

// Selected returns a selection pointing at index.
func Selected(index int) Selection {
	return Selection{index: index, set: true}
}

// Index returns the selected index and whether a selection exists.
func (s Selection) Index() (int, bool) {
	return s.index, s.set
}

// IsNone reports whether nothing is selected.
func (s Selection) IsNone() bool {
	return !s.set
}

func (s Selection) String() string {
	if !s.set {
		return "none"
	}
	return fmt.Sprintf("selected(%d)", s.index)
}
