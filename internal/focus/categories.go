package focus

import "strings"

// AppCategory groups applications that are arranged together.
type AppCategory struct {
	Name string
	Apps []string
}

// AppCategories is checked in order; the first category containing an
// application wins.
var AppCategories = []AppCategory{
	{Name: "communication", Apps: []string{
		"Slack", "Discord", "Mail", "Messages", "Microsoft Teams", "Zoom",
		"Telegram", "WhatsApp", "Signal",
	}},
	{Name: "development", Apps: []string{
		"Visual Studio Code", "Code", "Xcode", "Terminal", "iTerm", "iTerm2",
		"IntelliJ IDEA", "PyCharm", "WebStorm", "Android Studio",
		"Sublime Text", "Atom", "Vim", "Neovim", "Emacs",
	}},
	{Name: "reference", Apps: []string{
		"Google Chrome", "Chrome", "Safari", "Firefox", "Arc", "Notes",
		"Notion", "Obsidian", "Evernote", "Bear", "Preview", "Finder",
	}},
	{Name: "media", Apps: []string{
		"Spotify", "Music", "Apple Music", "YouTube", "VLC", "Photos",
		"QuickTime Player", "IINA",
	}},
}

// CategoryNames returns the category names in table order.
func CategoryNames() []string {
	names := make([]string, len(AppCategories))
	for i, c := range AppCategories {
		names[i] = c.Name
	}
	return names
}

// Contains reports whether app belongs to c: an exact name match, or a
// known name appearing case-insensitively inside app.
func (c AppCategory) Contains(app string) bool {
	lower := strings.ToLower(app)
	for _, known := range c.Apps {
		if app == known || strings.Contains(lower, strings.ToLower(known)) {
			return true
		}
	}
	return false
}

// CategoryOf returns the first category containing app, or "".
func CategoryOf(app string) string {
	for _, c := range AppCategories {
		if c.Contains(app) {
			return c.Name
		}
	}
	return ""
}

func lookupCategory(name string) (AppCategory, bool) {
	for _, c := range AppCategories {
		if c.Name == name {
			return c, true
		}
	}
	return AppCategory{}, false
}
