package testutil

import (
	"context"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/raffler-space/backend/internal/entity"
	"github.com/raffler-space/backend/pkg/xcontext"
)

// SampleUser creates a new user in database with many fields randomized. The
// sample user can be overwritten by non-zero fields of init.
//
// This function returns the sample user.
func SampleUser(ctx context.Context, init *entity.User) (entity.User, error) {
	sample := &entity.User{
		Base:        entity.Base{ID: uuid.NewString()},
		Name:        uuid.NewString(),
		Address:     "0x" + uuid.NewString(),
		Role:        entity.RoleUser,
		WalletNonce: uuid.NewString(),
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := xcontext.DB(ctx).Create(sample).Error; err != nil {
		return *sample, err
	}
	return *sample, nil
}

// SampleRaffle creates a draft raffle not yet deployed on chain. Set
// ContractRaffleID and Status in init to simulate later states.
func SampleRaffle(ctx context.Context, init *entity.Raffle) (entity.Raffle, error) {
	sample := &entity.Raffle{
		Base:             entity.Base{ID: uuid.NewString()},
		Name:             uuid.NewString(),
		Description:      uuid.NewString(),
		PrizeDescription: uuid.NewString(),
		Chain:            "eth",
		TicketPrice:      10,
		MaxTickets:       100,
		Status:           entity.RaffleDraft,
		DrawDate:         time.Now().Add(24 * time.Hour),
		IsVisible:        true,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := xcontext.DB(ctx).Create(sample).Error; err != nil {
		return *sample, err
	}
	return *sample, nil
}

func SampleBlockchain(ctx context.Context, init *entity.Blockchain) (entity.Blockchain, error) {
	sample := &entity.Blockchain{
		Name:          "eth",
		ID:            1,
		RaffleAddress: "0x" + uuid.NewString(),
		TokenAddress:  "0x" + uuid.NewString(),
		TokenDecimals: 6,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := xcontext.DB(ctx).Create(sample).Error; err != nil {
		return *sample, err
	}
	return *sample, nil
}

func SampleTicket(ctx context.Context, init *entity.Ticket) (entity.Ticket, error) {
	sample := &entity.Ticket{
		Base:          entity.Base{ID: uuid.NewString()},
		WalletAddress: "0x" + uuid.NewString(),
		TicketNumber:  1,
		PurchasePrice: 10,
		TxHash:        "0x" + uuid.NewString(),
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := xcontext.DB(ctx).Create(sample).Error; err != nil {
		return *sample, err
	}
	return *sample, nil
}

func overwriteFields[T any](origin *T, overwrite T) {
	originValue := reflect.ValueOf(origin).Elem()
	overwriteValue := reflect.ValueOf(overwrite)

	for i := 0; i < overwriteValue.NumField(); i++ {
		overwriteField := overwriteValue.Field(i)
		if !overwriteField.IsZero() {
			originValue.Field(i).Set(overwriteField)
		}
	}
}
