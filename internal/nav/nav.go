// Package nav names the screens a flow can send the user to.
package nav

import (
	"net/url"
	"strings"
)

type Route string

const (
	None          Route = ""
	Login         Route = "/login"
	Landing       Route = "/landing"
	Explore       Route = "/explore"
	Bookings      Route = "/bookings"
	Confirmation  Route = "/confirmation"
	Profile       Route = "/profile"
	Notifications Route = "/notifications"
	Payment       Route = "/razorpay"
	Plans         Route = "/plans"
	OrganizerInfo Route = "/organiser-info"
)

// Event is the detail screen of one event.
func Event(id string) Route {
	return Route("/events/" + url.PathEscape(id))
}

// EventID extracts the id from an Event route.
func (r Route) EventID() (string, bool) {
	rest, ok := strings.CutPrefix(string(r), "/events/")
	if !ok || rest == "" {
		return "", false
	}
	id, err := url.PathUnescape(rest)
	if err != nil {
		return "", false
	}
	return id, true
}

func (r Route) String() string {
	return string(r)
}

// Authenticator is satisfied by *session.Store.
type Authenticator interface {
	Token() string
}

// Guard returns Login when there is no session and target otherwise.
func Guard(a Authenticator, target Route) Route {
	if a == nil || a.Token() == "" {
		return Login
	}
	return target
}
