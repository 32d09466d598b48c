package session

import "fmt"

// Phase is the position of a session in its lifecycle.
type Phase int

const (
	PhaseIntro      Phase = iota // Waiting for the user to start or resume
	PhaseInProgress              // Walking the questions
	PhaseResults                 // All questions visited or finished early
)

func (p Phase) String() string {
	switch p {
	case PhaseIntro:
		return "intro"
	case PhaseInProgress:
		return "in-progress"
	case PhaseResults:
		return "results"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Response is a single answer event.
type Response int

const (
	ResponseYes Response = iota + 1
	ResponseNo
	ResponseSkip
)

func (r Response) String() string {
	switch r {
	case ResponseYes:
		return "yes"
	case ResponseNo:
		return "no"
	case ResponseSkip:
		return "skip"
	default:
		return fmt.Sprintf("response(%d)", int(r))
	}
}

// value converts r to its Answers slot value.
func (r Response) value() (*bool, error) {
	switch r {
	case ResponseYes:
		v := true
		return &v, nil
	case ResponseNo:
		v := false
		return &v, nil
	case ResponseSkip:
		return nil, nil
	default:
		return nil, &ValidationError{Input: r.String()}
	}
}

// ParseResponse parses user input into a Response.
func ParseResponse(s string) (Response, error) {
	switch s {
	case "y", "yes", "true":
		return ResponseYes, nil
	case "n", "no", "false":
		return ResponseNo, nil
	case "s", "skip", "null":
		return ResponseSkip, nil
	default:
		return 0, &ValidationError{Input: s}
	}
}

// Progress summarizes how far a session has come.
type Progress struct {
	Answered int // slots filled, skips included
	Total    int
}

// Fraction returns Answered/Total in [0,1].
func (p Progress) Fraction() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Answered) / float64(p.Total)
}
