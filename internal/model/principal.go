package model

// Affiliation classifies an authenticated principal by e-mail domain.
type Affiliation string

const (
	AffiliationStudent      Affiliation = "student"
	AffiliationEmployee     Affiliation = "employee"
	AffiliationUnaffiliated Affiliation = "unaffiliated"
)

// Session is the ephemeral, per-request view of the authenticated principal.
// Built from validated token claims, never persisted.
type Session struct {
	Identity    string      `json:"identity"`
	Email       string      `json:"email"`
	Name        string      `json:"name"`
	Affiliation Affiliation `json:"affiliation"`
	IsAdmin     bool        `json:"isAdmin"`
}

// Visibility is the set of UI affordances a session may see. Derived, never
// stored; the viewing-as-student flag lives in the session store and resets
// on every fresh authentication.
type Visibility struct {
	StudentPanel        bool `json:"studentPanel"`
	AdminPanel          bool `json:"adminPanel"`
	RolesPanel          bool `json:"rolesPanel"`
	StudentViewBanner   bool `json:"studentViewBanner"`
	CanEnterStudentView bool `json:"canEnterStudentView"`
	CanExitStudentView  bool `json:"canExitStudentView"`
}
