package domain

import "errors"

// Ledger error kinds. These are business-rule rejections raised at the point
// of violation; handlers translate them into HTTP responses and nothing
// retries them.
var (
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrIncompatibleCurrency = errors.New("incompatible currency")
	ErrIncompatibleSource   = errors.New("incompatible source")
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrCounterNotFound      = errors.New("counter not found")
	ErrQuotaExceeded        = errors.New("daily quota exceeded")
	ErrWalletNotFound       = errors.New("wallet not found")
	ErrNotPublicationAuthor = errors.New("not the publication author")
	ErrSelfVote             = errors.New("cannot vote for own content")
)
