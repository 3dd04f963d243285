package domain

import "strings"

// Onboarding advances through a fixed, strictly linear sequence of steps.
// The step number persisted on the user row is a cursor into this sequence;
// a screen's own save action is the only thing that moves it forward.
const (
	StepName = iota + 1
	StepDOB
	StepGender
	StepLookingFor
	StepInterestedIn
	StepHeight
	StepAvailability
	StepPhotos
	StepPrompts
	StepLocation

	FirstStep = StepName
	LastStep  = StepLocation
)

// Route is a client navigation target. Routes are grouped into areas by
// their first path segment.
type Route string

const (
	RouteSignIn Route = "auth/sign-in"

	RouteOnboardingName         Route = "onboarding/name"
	RouteOnboardingDOB          Route = "onboarding/dob"
	RouteOnboardingGender       Route = "onboarding/gender"
	RouteOnboardingLookingFor   Route = "onboarding/looking-for"
	RouteOnboardingInterestedIn Route = "onboarding/interested-in"
	RouteOnboardingHeight       Route = "onboarding/height"
	RouteOnboardingAvailability Route = "onboarding/availability"
	RouteOnboardingPhotos       Route = "onboarding/photos"
	RouteOnboardingPrompts      Route = "onboarding/prompts"
	RouteOnboardingLocation     Route = "onboarding/location"

	RouteMainApp Route = "app/discover"
)

// stepRoutes is the single source of truth for "where does the user go
// next". Adding an onboarding step means extending this table and the step
// constants together.
var stepRoutes = map[int]Route{
	StepName:         RouteOnboardingName,
	StepDOB:          RouteOnboardingDOB,
	StepGender:       RouteOnboardingGender,
	StepLookingFor:   RouteOnboardingLookingFor,
	StepInterestedIn: RouteOnboardingInterestedIn,
	StepHeight:       RouteOnboardingHeight,
	StepAvailability: RouteOnboardingAvailability,
	StepPhotos:       RouteOnboardingPhotos,
	StepPrompts:      RouteOnboardingPrompts,
	StepLocation:     RouteOnboardingLocation,
}

// StepRoute maps a persisted step number to its route. A number outside the
// table (unset rows, or a value written by a newer client) falls back to the
// first step; the second return reports that fallback so callers can log it.
func StepRoute(step int) (Route, bool) {
	if r, ok := stepRoutes[step]; ok {
		return r, false
	}
	return stepRoutes[FirstStep], true
}

// RouteArea partitions routes for the routing rules.
type RouteArea int

const (
	AreaUnknown RouteArea = iota
	AreaAuth
	AreaOnboarding
	AreaMain
	AreaModal
)

func (r Route) Area() RouteArea {
	seg, _, _ := strings.Cut(string(r), "/")
	switch seg {
	case "auth":
		return AreaAuth
	case "onboarding":
		return AreaOnboarding
	case "app":
		return AreaMain
	case "modal":
		return AreaModal
	}
	return AreaUnknown
}

// AuthState is the coarse state the router derives from session + profile.
type AuthState int

const (
	StateUnauthenticated AuthState = iota
	StateNeedsOnboarding
	StateOnboardingInProgress
	StateActive
)

func (s AuthState) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateNeedsOnboarding:
		return "needs_onboarding"
	case StateOnboardingInProgress:
		return "onboarding_in_progress"
	case StateActive:
		return "active"
	}
	return "unknown"
}

// Action is what the client should do with the current route.
type Action int

const (
	// ActionStay leaves the current route in place.
	ActionStay Action = iota
	// ActionRedirect navigates to Decision.Target.
	ActionRedirect
	// ActionSuspend renders a placeholder; session bootstrap has not
	// settled yet and routing now would flicker.
	ActionSuspend
)

func (a Action) String() string {
	switch a {
	case ActionStay:
		return "stay"
	case ActionRedirect:
		return "redirect"
	case ActionSuspend:
		return "suspend"
	}
	return "unknown"
}

// Decision is the router's verdict for one (user, route) observation.
type Decision struct {
	State  AuthState
	Action Action
	Target Route
	// StepFallback is set when the persisted step number had no table
	// entry and the first step was substituted. This can mask a
	// data-integrity bug, so callers should log it.
	StepFallback bool
}

// Resolve is the total routing function. user is nil when signed out;
// loading suspends routing entirely during session bootstrap.
//
// A user who has not completed onboarding is always pinned to the route of
// their persisted step: they cannot navigate ahead of or behind it without a
// screen's save action moving the cursor.
func Resolve(user *User, current Route, loading bool) Decision {
	if loading {
		return Decision{State: StateUnauthenticated, Action: ActionSuspend}
	}

	if user == nil {
		if current.Area() != AreaAuth {
			return Decision{State: StateUnauthenticated, Action: ActionRedirect, Target: RouteSignIn}
		}
		return Decision{State: StateUnauthenticated, Action: ActionStay}
	}

	if !user.OnboardingCompleted {
		state := StateOnboardingInProgress
		if user.OnboardingStep <= FirstStep {
			state = StateNeedsOnboarding
		}
		target, fellBack := StepRoute(user.OnboardingStep)
		if current == target {
			return Decision{State: state, Action: ActionStay, StepFallback: fellBack}
		}
		return Decision{State: state, Action: ActionRedirect, Target: target, StepFallback: fellBack}
	}

	if a := current.Area(); a != AreaMain && a != AreaModal {
		return Decision{State: StateActive, Action: ActionRedirect, Target: RouteMainApp}
	}
	return Decision{State: StateActive, Action: ActionStay}
}
