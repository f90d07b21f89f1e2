// Package ui holds the collaborators the request layer talks to but does not
// own: the notification sink, the navigation sink and the renderer for
// markdown replies.
package ui

import "context"

// Kind classifies a Notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// Notification is a transient banner with a title and a body.
type Notification struct {
	Kind  Kind
	Title string
	Body  string
}

// Notifier displays notifications. Calls are fire-and-forget.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, n Notification)

func (f NotifierFunc) Notify(ctx context.Context, n Notification) { f(ctx, n) }

// Route is a logical screen name.
type Route string

const (
	RouteWelcome        Route = "Welcome"
	RouteLogin          Route = "Login"
	RouteSignup         Route = "Signup"
	RouteMainApp        Route = "MainApp"
	RouteSettings       Route = "Settings"
	RouteProfile        Route = "Profile"
	RoutePasswordChange Route = "PasswordChange"
	RouteCropSuggestion Route = "CropSuggestion"
	RouteCropCare       Route = "CropCare"
	RouteScheme         Route = "Scheme"
)

// Navigator requests a screen transition by route name.
type Navigator interface {
	Navigate(ctx context.Context, route Route)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, route Route)

func (f NavigatorFunc) Navigate(ctx context.Context, route Route) { f(ctx, route) }

// Discard is a Notifier and Navigator that ignores every call.
var Discard discard

type discard struct{}

func (discard) Notify(context.Context, Notification) {}
func (discard) Navigate(context.Context, Route)      {}
