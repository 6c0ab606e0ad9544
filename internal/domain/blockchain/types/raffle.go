package types

import "time"

// RaffleInfo is the contract view of a raffle. Contract values always win over
// the database mirror when the chain is reachable.
type RaffleInfo struct {
	ContractRaffleID int64
	TicketsSold      int64
	MaxTickets       int64
	TicketPrice      float64
	EndTime          time.Time
	Winner           string
	IsActive         bool
	NFTContract      string
}

func (r RaffleInfo) HasEnded(now time.Time) bool {
	return now.After(r.EndTime)
}

type TokenInfo struct {
	Name     string
	Symbol   string
	Decimals int
}
