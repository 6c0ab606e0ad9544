package model

import "time"

type Ticket struct {
	ID            string    `json:"id"`
	RaffleID      string    `json:"raffle_id"`
	WalletAddress string    `json:"wallet_address"`
	TicketNumber  int64     `json:"ticket_number"`
	PurchasePrice float64   `json:"purchase_price"`
	TxHash        string    `json:"tx_hash"`
	PurchasedAt   time.Time `json:"purchased_at"`
}

type BuyTicketsRequest struct {
	RaffleID string `json:"raffle_id"`
	Quantity int64  `json:"quantity"`
}

type BuyTicketsResponse struct {
	TxHash        string  `json:"tx_hash"`
	TicketNumbers []int64 `json:"ticket_numbers,omitempty"`

	// Warning is set when the purchase confirmed on-chain but the mirror
	// write failed. The purchase still succeeded.
	Warning string `json:"warning,omitempty"`
}

type GetMyTicketsRequest struct {
	RaffleID string `json:"raffle_id"`
}

type GetMyTicketsResponse struct {
	Tickets []Ticket `json:"tickets"`
}

type GetUserEntriesRequest struct {
	RaffleID string `json:"raffle_id"`
	Address  string `json:"address"`
}

type GetUserEntriesResponse struct {
	// Entries are the ticket numbers the mirror recorded for the address.
	Entries []int64 `json:"entries"`

	// Count is the contract's entry count when the chain is reachable,
	// otherwise the number of mirrored entries.
	Count int64 `json:"count"`
}
