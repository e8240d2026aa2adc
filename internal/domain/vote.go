package domain

type VoteDirection string

const (
	DirectionUp   VoteDirection = "up"
	DirectionDown VoteDirection = "down"
)

// VoteAmount is a vote's weight plus its direction. The magnitude is always
// strictly positive; the direction carries the sign.
type VoteAmount struct {
	Magnitude int64
	Direction VoteDirection
}

// Up builds an upvote of the given weight.
func Up(magnitude int64) (VoteAmount, error) {
	if magnitude <= 0 {
		return VoteAmount{}, ErrInvalidAmount
	}
	return VoteAmount{Magnitude: magnitude, Direction: DirectionUp}, nil
}

// Down builds a downvote of the given weight.
func Down(magnitude int64) (VoteAmount, error) {
	if magnitude <= 0 {
		return VoteAmount{}, ErrInvalidAmount
	}
	return VoteAmount{Magnitude: magnitude, Direction: DirectionDown}, nil
}

// NumericValue is the vote's signed contribution to a rating.
func (v VoteAmount) NumericValue() int64 {
	if v.Direction == DirectionDown {
		return -v.Magnitude
	}
	return v.Magnitude
}

// Plus reports whether the vote counts positively in the ledger.
func (v VoteAmount) Plus() bool {
	return v.Direction == DirectionUp
}
