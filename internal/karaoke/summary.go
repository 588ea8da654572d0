package karaoke

import "fmt"

// Outcome classifies what happened to one input block.
type Outcome int

// Block outcomes.
const (
	OutcomeReconstructed Outcome = iota
	OutcomeAmbiguous
	OutcomePassthrough
	OutcomeDropped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeReconstructed:
		return "reconstructed"
	case OutcomeAmbiguous:
		return "ambiguous"
	case OutcomePassthrough:
		return "passthrough"
	case OutcomeDropped:
		return "dropped"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Summary counts block outcomes for a run.
type Summary struct {
	// Total is the number of well-formed input blocks.
	Total         int `json:"total"`
	Reconstructed int `json:"reconstructed"`
	Ambiguous     int `json:"ambiguous"`
	Passthrough   int `json:"passthrough"`
	Dropped       int `json:"dropped"`
	// Malformed counts input blocks skipped by the parser.
	Malformed int `json:"malformed"`
}

func (s *Summary) add(o Outcome) {
	s.Total++
	switch o {
	case OutcomeReconstructed:
		s.Reconstructed++
	case OutcomeAmbiguous:
		s.Ambiguous++
	case OutcomePassthrough:
		s.Passthrough++
	case OutcomeDropped:
		s.Dropped++
	}
}

// Emitted is the number of output blocks.
func (s Summary) Emitted() int {
	return s.Reconstructed + s.Ambiguous + s.Passthrough
}

func (s Summary) String() string {
	return fmt.Sprintf("%d blocks: %d reconstructed, %d ambiguous, %d passthrough, %d dropped, %d malformed",
		s.Total, s.Reconstructed, s.Ambiguous, s.Passthrough, s.Dropped, s.Malformed)
}
