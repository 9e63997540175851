package domain

// Status is the lifecycle state of a job application.
type Status string

// Application statuses. The stored collection went through two schema
// revisions: the first had no in_review state, the second dropped the
// description/stacks attributes. Records of both shapes decode into the
// one type below, so the enum is the union of both revisions.
const (
	StatusApplied   Status = "applied"
	StatusInReview  Status = "in_review"
	StatusInterview Status = "interview"
	StatusOffer     Status = "offer"
	StatusRejected  Status = "rejected"
	StatusWithdrawn Status = "withdrawn"
	StatusClosed    Status = "closed"
)

// Statuses lists every status in display order.
var Statuses = []Status{
	StatusApplied,
	StatusInReview,
	StatusInterview,
	StatusOffer,
	StatusRejected,
	StatusWithdrawn,
	StatusClosed,
}

// statusLabels maps statuses to their badge labels.
var statusLabels = map[Status]string{
	StatusApplied:   "Applied",
	StatusInReview:  "In Review",
	StatusInterview: "Interview",
	StatusOffer:     "Offer",
	StatusRejected:  "Rejected",
	StatusWithdrawn: "Withdrawn",
	StatusClosed:    "Closed",
}

var validStatusSet = func() map[Status]bool {
	m := make(map[Status]bool, len(Statuses))
	for _, s := range Statuses {
		m[s] = true
	}
	return m
}()

// ValidStatus returns true if s is a known application status.
func ValidStatus(s Status) bool {
	return validStatusSet[s]
}

// Label returns the badge label for a status, e.g. "In Review".
func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Application is one job-application document in the remote store.
// The $-prefixed fields are assigned by the server and never written
// by the client.
type Application struct {
	ID              string `json:"$id"`
	CreatedAt       string `json:"$createdAt"`
	UpdatedAt       string `json:"$updatedAt"`
	UserID          string `json:"userId"`
	CompanyName     string `json:"companyName"`
	PositionTitle   string `json:"positionTitle"`
	ApplicationDate string `json:"applicationDate"`
	Status          Status `json:"status"`
	Location        string `json:"location"`
	Source          string `json:"source"`
	JobLink         string `json:"jobLink,omitempty"`
	Description     string `json:"description,omitempty"`
	Stacks          string `json:"stacks,omitempty"` // comma-separated technology tags
	Notes           string `json:"notes,omitempty"`
	NextStep        string `json:"nextStep,omitempty"`
	ResumeVersion   string `json:"resumeVersion,omitempty"`
}
