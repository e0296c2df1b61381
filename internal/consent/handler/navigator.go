package handler

import (
	"net/http"
	"strconv"
)

// httpNavigator answers an action request with the navigation the controller
// chose. At most one navigation is written per request.
type httpNavigator struct {
	w            http.ResponseWriter
	r            *http.Request
	historyDepth int
	navigated    bool
}

func newHTTPNavigator(w http.ResponseWriter, r *http.Request, historyDepth int) *httpNavigator {
	return &httpNavigator{w: w, r: r, historyDepth: historyDepth}
}

func (n *httpNavigator) Redirect(url string) {
	if n.navigated {
		return
	}
	n.navigated = true
	http.Redirect(n.w, n.r, url, http.StatusSeeOther)
}

func (n *httpNavigator) GoHome() {
	n.Redirect("/")
}

// GoBack serves a page that pops two history entries: the consent page and
// the form post that brought the browser here.
func (n *httpNavigator) GoBack() {
	if n.navigated {
		return
	}
	body, err := renderPage("back.html", page{Title: "Returning"})
	if err != nil {
		n.GoHome()
		return
	}
	n.navigated = true
	n.w.Header().Set("Content-Type", "text/html; charset=utf-8")
	n.w.WriteHeader(http.StatusOK)
	_, _ = n.w.Write(body)
}

func (n *httpNavigator) HistoryDepth() int {
	return n.historyDepth
}

// parseHistoryLength reads the history_length form value. Anything missing or
// unparsable counts as a fresh tab.
func parseHistoryLength(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
