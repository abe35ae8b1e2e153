package tab_test

import (
	"testing"

	"gomovies/tab"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tests := []struct {
		tab     tab.Tab
		focused bool
		want    string
	}{
		{tab.Home, true, "[⌂ Home]"},
		{tab.Home, false, " ⌂ "},
		{tab.Bookmark, true, "[★ Bookmark]"},
		{tab.Profile, false, " ☺ "},
	}

	for _, tt := range tests {
		t.Run(tt.tab.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tab.Render(tt.focused))
		})
	}
}

func TestBar(t *testing.T) {
	assert.Equal(t, " ⌂  [★ Bookmark]  ☺ ", tab.Bar(tab.Bookmark))
}

func TestParse(t *testing.T) {
	got, err := tab.Parse("Profile")
	require.NoError(t, err)
	assert.Equal(t, tab.Profile, got)

	_, err = tab.Parse("settings")
	assert.Equal(t, tab.ErrUnknownTab, err)
}

func TestSignInGate(t *testing.T) {
	assert.False(t, tab.Home.RequiresAuth())
	assert.True(t, tab.Bookmark.RequiresAuth())
	assert.Equal(t, "Sign in to view bookmarks", tab.Bookmark.SignInPrompt())
	assert.Equal(t, "You are not logged in", tab.Profile.SignInPrompt())
}

func TestUnknownTabPanics(t *testing.T) {
	assert.Panics(t, func() { _ = tab.Tab(7).Label() })
}
