package app

// Status is the result of one attempted record.
type Status string

const (
	StatusCreated  Status = "created"
	StatusExisting Status = "existing"
	StatusSkipped  Status = "skipped"
	StatusFailed   Status = "failed"
)

// Entity names used in outcomes and counts.
const (
	EntitySuperuser    = "superuser"
	EntityUser         = "user"
	EntityGenre        = "genre"
	EntityAuthor       = "author"
	EntityBook         = "book"
	EntityBookGenres   = "book genres"
	EntityReader       = "reader"
	EntityBookInstance = "book instance"
)

// Outcome records what happened to one attempted record.
type Outcome struct {
	Entity string
	Key    string
	Status Status
	Err    error
}

// Count is a final row count for one entity type.
type Count struct {
	Label string
	N     int
}

// Report accumulates everything a run did. Err is set when the top-level
// sequence aborted; the run itself never returns an error.
type Report struct {
	Outcomes []Outcome
	Warnings []string
	Counts   []Count
	Err      error
}

func (r *Report) add(entity, key string, status Status, err error) {
	r.Outcomes = append(r.Outcomes, Outcome{Entity: entity, Key: key, Status: status, Err: err})
}

// Tally counts outcomes for entity with the given status.
func (r Report) Tally(entity string, status Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Entity == entity && o.Status == status {
			n++
		}
	}
	return n
}

// Failed returns every failed outcome.
func (r Report) Failed() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed {
			out = append(out, o)
		}
	}
	return out
}

// Count returns the final count for label, if it was reported.
func (r Report) Count(label string) (int, bool) {
	for _, c := range r.Counts {
		if c.Label == label {
			return c.N, true
		}
	}
	return 0, false
}
