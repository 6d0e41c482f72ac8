package profile

// AdvisorSummary is the slice of an advisor record the matcher backend
// attaches to a matched student.
type AdvisorSummary struct {
	Name              string   `json:"name"`
	ResearchInterests []string `json:"researchInterests"`
	Bio               string   `json:"bio,omitempty"`
}

type Student struct {
	ResearchInterests []string        `json:"researchInterests"`
	CareerGoals       []string        `json:"careerGoals"`
	YearLevel         string          `json:"yearLevel"`
	HasMatched        bool            `json:"hasMatched"`
	MatchedAdvisor    *AdvisorSummary `json:"matchedAdvisor,omitempty"`
}

// Complete reports whether the student profile counts as filled in.
// Completion is judged by content, not by record presence: an interrupted
// save can leave an empty record on the server, which must route the same
// way as no record at all.
func (s *Student) Complete() bool {
	return s != nil && len(s.ResearchInterests) > 0
}

type Advisor struct {
	ResearchInterests []string `json:"researchInterests"`
	ExpertiseAreas    []string `json:"expertiseAreas"`
	MaxStudents       int      `json:"maxStudents"`
	AvailableSlots    int      `json:"availableSlots"`
	Bio               string   `json:"bio"`
	CompletedProfile  bool     `json:"completedProfile"`
}

// Complete keys off the explicit flag the advisor sets on submit, unlike
// students where content decides.
func (a *Advisor) Complete() bool {
	return a != nil && a.CompletedProfile
}
