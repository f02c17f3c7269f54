package timer

// Mode is the run state of a Session
type Mode uint8

const (
	Running Mode = iota // elapsed time accrues
	Stopped             // accumulated is frozen
)

func (m Mode) String() string {
	switch m {
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

// Outcome is the terminal state of a Loop run
type Outcome uint8

const (
	FinishedNormally      Outcome = iota // user requested exit
	FinishedCountdownZero                // countdown reached zero
	Aborted                              // fatal condition, see Result.Err
)

func (o Outcome) String() string {
	switch o {
	case FinishedNormally:
		return "finished"
	case FinishedCountdownZero:
		return "countdown_zero"
	case Aborted:
		return "aborted"
	}
	return "unknown"
}
