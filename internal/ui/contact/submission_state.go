package contact

// Phase is the lifecycle of one submission.
type Phase int

const (
	Idle Phase = iota
	Submitting
	Succeeded
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Resolved reports whether the submission has finished either way.
func (p Phase) Resolved() bool {
	return p == Succeeded || p == Failed
}
