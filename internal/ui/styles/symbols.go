package styles

import (
	"github.com/charmbracelet/x/ansi"
)

// Symbols for artifact sync outcomes
const (
	SymbolCommitted = "●"
	SymbolUnchanged = "○"
	SymbolFailed    = "✕"
)

// OutcomeSymbol returns the plain symbol for one artifact's sync outcome.
func OutcomeSymbol(changed bool, failed bool) string {
	switch {
	case failed:
		return SymbolFailed
	case changed:
		return SymbolCommitted
	default:
		return SymbolUnchanged
	}
}

// FormatOutcome renders one artifact's sync outcome as a colored symbol
// with a short label.
func FormatOutcome(changed, pushed, failed bool) string {
	switch {
	case failed:
		return ErrorStyle.Render(SymbolFailed) + " failed"
	case changed && pushed:
		return SuccessStyle.Render(SymbolCommitted) + " committed and pushed"
	case changed:
		return SuccessStyle.Render(SymbolCommitted) + " committed"
	case pushed:
		return SuccessStyle.Render(SymbolCommitted) + " pushed"
	default:
		return MutedStyle.Render(SymbolUnchanged) + " up to date"
	}
}

// FormatArticleLink renders text as an OSC 8 hyperlink to a dictionary
// article. Without a URL the text renders muted, marking a word the
// dictionary has no entry for.
func FormatArticleLink(text, url string) string {
	if url == "" {
		return MutedStyle.Render(text)
	}
	styled := AccentStyle.Underline(true).Render(text)
	return ansi.SetHyperlink(url) + styled + ansi.ResetHyperlink()
}
