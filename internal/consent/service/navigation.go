package service

// Navigator moves the end user's browser. The controller never navigates on
// its own; every navigation goes through the Navigator passed to the action.
type Navigator interface {
	// Redirect sends the browser to an absolute URL.
	Redirect(url string)
	// GoBack pops the browser history back to the page before the consent view.
	GoBack()
	// GoHome sends the browser to the application root.
	GoHome()
	// HistoryDepth is the number of entries in the browser session history.
	HistoryDepth() int
}

// CancelNavigation leaves the consent view: back to where the user came from
// when there is somewhere to go back to, otherwise home.
func CancelNavigation(nav Navigator) {
	if nav.HistoryDepth() > 1 {
		nav.GoBack()
		return
	}
	nav.GoHome()
}
