package entity

// Ticket is one purchased entry. Rows are append-only: they are written right
// after the on-chain purchase confirms and are never updated or deleted.
type Ticket struct {
	Base

	RaffleID string `gorm:"uniqueIndex:idx_raffle_ticket_number"`
	Raffle   Raffle `gorm:"foreignKey:RaffleID"`

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	WalletAddress string

	// TicketNumber is contiguous within a raffle, starting from the mirror
	// sold-counter at purchase time.
	TicketNumber int64 `gorm:"uniqueIndex:idx_raffle_ticket_number"`

	PurchasePrice float64
	TxHash        string `gorm:"index"`
}
