package domain

// Identifiers used across the ledger. Users and communities are addressed by
// their Telegram ids; publications and transactions by short opaque uids.
type (
	UserID         int64
	CommunityID    int64
	PublicationUID string
	TransactionUID string
)
