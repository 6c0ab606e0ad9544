package entity

import "github.com/raffler-space/backend/pkg/enum"

type BlockchainConnectionType string

var (
	BlockchainConnectionRPC = enum.New(BlockchainConnectionType("rpc"))
)

type Blockchain struct {
	Name string `gorm:"primaryKey"`
	ID   int64  `gorm:"unique"`

	// RaffleAddress is the raffle contract deployed on this network,
	// TokenAddress the stable-coin it sells tickets for.
	RaffleAddress string
	TokenAddress  string
	TokenDecimals int

	UseExternalRPC bool

	BlockchainConnections []BlockchainConnection `gorm:"foreignKey:Chain;references:Name"`
}

type BlockchainConnection struct {
	Chain string `gorm:"primaryKey"`
	URL   string `gorm:"primaryKey"`

	Type BlockchainConnectionType
}
