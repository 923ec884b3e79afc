package counter

// Credits is the content of the credits screen. It carries no state.
type Credits struct {
	Title string
	Lines []string
}

// DefaultCredits is shown when no credits are configured.
func DefaultCredits() Credits {
	return Credits{
		Title: "Credits",
		Lines: []string{
			"tally: a name and a counter that survive restarts.",
			"Built with Bubble Tea, Bubbles and Lip Gloss.",
		},
	}
}
