package domain

// MeritSource tags where a quantity of merits comes from. Personal merits are
// held in wallets; quota merits are the free daily vote allowance a community
// grants its members.
type MeritSource string

const (
	SourcePersonal MeritSource = "personal"
	SourceQuota    MeritSource = "quota"
)

// MeritAmount is an immutable quantity of community currency. Arithmetic is
// only defined between amounts of the same currency and the same source, and
// can never produce a negative amount. Every operation returns a new value.
type MeritAmount struct {
	Amount   int64
	Currency string
	Source   MeritSource
}

// NewPersonal builds a personally-held amount. Negative amounts are rejected.
func NewPersonal(amount int64, currency string) (MeritAmount, error) {
	if amount < 0 {
		return MeritAmount{}, ErrInvalidAmount
	}
	return MeritAmount{Amount: amount, Currency: currency, Source: SourcePersonal}, nil
}

// NewQuota builds a quota-sourced amount. Negative amounts are rejected.
func NewQuota(amount int64, currency string) (MeritAmount, error) {
	if amount < 0 {
		return MeritAmount{}, ErrInvalidAmount
	}
	return MeritAmount{Amount: amount, Currency: currency, Source: SourceQuota}, nil
}

// Add returns a + b.
func (a MeritAmount) Add(b MeritAmount) (MeritAmount, error) {
	if err := a.compatible(b); err != nil {
		return MeritAmount{}, err
	}
	return MeritAmount{Amount: a.Amount + b.Amount, Currency: a.Currency, Source: a.Source}, nil
}

// Subtract returns a - b. The result must stay non-negative.
func (a MeritAmount) Subtract(b MeritAmount) (MeritAmount, error) {
	if err := a.compatible(b); err != nil {
		return MeritAmount{}, err
	}
	if b.Amount > a.Amount {
		return MeritAmount{}, ErrInsufficientBalance
	}
	return MeritAmount{Amount: a.Amount - b.Amount, Currency: a.Currency, Source: a.Source}, nil
}

func (a MeritAmount) compatible(b MeritAmount) error {
	if a.Currency != b.Currency {
		return ErrIncompatibleCurrency
	}
	if a.Source != b.Source {
		return ErrIncompatibleSource
	}
	return nil
}
