package grundy

// Outcome is the winner of a position under normal play
type Outcome int

const (
	// PreviousPlayerWins means the player to move loses (Grundy value 0)
	PreviousPlayerWins Outcome = iota
	// NextPlayerWins means the player to move has a winning move
	NextPlayerWins
)

func (o Outcome) String() string {
	switch o {
	case PreviousPlayerWins:
		return "P"
	case NextPlayerWins:
		return "N"
	default:
		return "unknown"
	}
}

// OutcomeOf classifies a position by its Grundy value
func OutcomeOf(v Value) Outcome {
	if v == 0 {
		return PreviousPlayerWins
	}
	return NextPlayerWins
}

// NimSum combines the values of independent games
func NimSum(values ...Value) Value {
	var sum Value
	for _, v := range values {
		sum ^= v
	}
	return sum
}
