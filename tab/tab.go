// Package tab is the closed set of navigation tabs.
package tab

import (
	"fmt"
	"strings"

	"gomovies/errs"
)

type Tab int

const (
	Home Tab = iota
	Bookmark
	Profile
)

// All lists the tabs in bar order.
var All = []Tab{Home, Bookmark, Profile}

var ErrUnknownTab = errs.Errorf(errs.EINVALID, "unknown tab")

func Parse(name string) (Tab, error) {
	for _, t := range All {
		if strings.EqualFold(name, t.String()) {
			return t, nil
		}
	}
	return Home, ErrUnknownTab
}

func (t Tab) String() string {
	switch t {
	case Home:
		return "home"
	case Bookmark:
		return "bookmark"
	case Profile:
		return "profile"
	}
	panic(fmt.Sprintf("tab: unknown tab %d", int(t)))
}

func (t Tab) Icon() string {
	switch t {
	case Home:
		return "⌂"
	case Bookmark:
		return "★"
	case Profile:
		return "☺"
	}
	panic(fmt.Sprintf("tab: unknown tab %d", int(t)))
}

func (t Tab) Label() string {
	switch t {
	case Home:
		return "Home"
	case Bookmark:
		return "Bookmark"
	case Profile:
		return "Profile"
	}
	panic(fmt.Sprintf("tab: unknown tab %d", int(t)))
}

// SignInPrompt is shown in place of a gated tab when nobody is signed in.
// It is empty for tabs open to guests.
func (t Tab) SignInPrompt() string {
	switch t {
	case Home:
		return ""
	case Bookmark:
		return "Sign in to view bookmarks"
	case Profile:
		return "You are not logged in"
	}
	panic(fmt.Sprintf("tab: unknown tab %d", int(t)))
}

func (t Tab) RequiresAuth() bool {
	return t.SignInPrompt() != ""
}

// Render draws the tab: icon and label when focused, icon alone otherwise.
func (t Tab) Render(focused bool) string {
	if focused {
		return fmt.Sprintf("[%s %s]", t.Icon(), t.Label())
	}
	return " " + t.Icon() + " "
}

// Bar renders every tab with current focused.
func Bar(current Tab) string {
	parts := make([]string, 0, len(All))
	for _, t := range All {
		parts = append(parts, t.Render(t == current))
	}
	return strings.Join(parts, " ")
}
