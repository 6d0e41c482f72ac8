// Package redirect decides which screen a user belongs on. Every call site
// that needs a role- or profile-dependent destination goes through Resolve
// instead of branching on role strings itself.
package redirect

import (
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/domain/profile"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/domain/session"
)

type Target int

const (
	Home Target = iota
	Login
	CompleteProfileStudent
	CompleteProfileAdvisor
	MatchScreen
	StudentDashboard
	AdvisorDashboard
)

func (t Target) String() string {
	switch t {
	case Home:
		return "home"
	case Login:
		return "login"
	case CompleteProfileStudent:
		return "complete-profile-student"
	case CompleteProfileAdvisor:
		return "complete-profile-advisor"
	case MatchScreen:
		return "match"
	case StudentDashboard:
		return "student-dashboard"
	case AdvisorDashboard:
		return "advisor-dashboard"
	default:
		return "login"
	}
}

// Path maps a target to its canonical route. The original client grew
// several divergent copies of these screens; one path per target is the
// whole routing surface here.
func (t Target) Path() string {
	switch t {
	case Home:
		return "/"
	case Login:
		return "/login"
	case CompleteProfileStudent:
		return "/complete-profile"
	case CompleteProfileAdvisor:
		return "/advisor-profile"
	case MatchScreen:
		return "/match"
	case StudentDashboard:
		return "/student-dashboard"
	case AdvisorDashboard:
		return "/advisor-dashboard"
	default:
		return "/login"
	}
}

// Protected reports whether a target requires an authenticated session.
func (t Target) Protected() bool {
	switch t {
	case Home, Login:
		return false
	default:
		return true
	}
}

// Anonymous is the resolution for a visitor with no session: the public
// landing page on the landing route, the login screen everywhere else.
func Anonymous(landing bool) Target {
	if landing {
		return Home
	}
	return Login
}

// Resolve maps (role, role profile) to the single screen the user belongs
// on. Pure and total: every role/profile combination, including nil
// profiles, yields a target. Profiles for the other role are ignored.
func Resolve(role session.Role, student *profile.Student, advisor *profile.Advisor) Target {
	switch role {
	case session.RoleStudent:
		if !student.Complete() {
			return CompleteProfileStudent
		}
		if !student.HasMatched {
			return MatchScreen
		}
		return StudentDashboard
	case session.RoleAdvisor:
		if !advisor.Complete() {
			return CompleteProfileAdvisor
		}
		return AdvisorDashboard
	default:
		// A session with an unrecognized role never reaches a protected
		// screen.
		return Login
	}
}
