package model

import (
	"github.com/burugo/thing"
)

// Submission is one row of durable history per saved configuration. The
// canonical persisted artifact is the blob written to the blob store under
// the session's fixed key; these rows exist so saved builds stay queryable
// after the blob is overwritten.
type Submission struct {
	thing.BaseModel
	SessionID      string  `db:"session_id,index" json:"session_id"`
	BaseModelName  string  `db:"base_model" json:"base_model"`
	ComponentCount int     `db:"component_count" json:"component_count"`
	TotalPrice     float64 `db:"total_price" json:"total_price"`
	Blob           string  `db:"blob" json:"blob"`
}

// TableName sets the table name for the Submission model
func (s *Submission) TableName() string {
	return "submissions"
}

var SubmissionDB *thing.Thing[*Submission]

// SubmissionInit initializes the SubmissionDB
func SubmissionInit() error {
	var err error
	SubmissionDB, err = thing.Use[*Submission]()
	if err != nil {
		return err
	}
	return nil
}

// CreateSubmission appends a history row.
func CreateSubmission(sub *Submission) error {
	return SubmissionDB.Save(sub)
}

// GetAllSubmissions returns history rows, newest first.
func GetAllSubmissions(startIdx int, num int) ([]*Submission, error) {
	return SubmissionDB.Order("id DESC").Fetch(startIdx, num)
}

// GetSubmissionsForSession returns the history of one session, newest first.
func GetSubmissionsForSession(sessionID string) ([]*Submission, error) {
	return SubmissionDB.Where("session_id = ?", sessionID).Order("id DESC").All()
}
