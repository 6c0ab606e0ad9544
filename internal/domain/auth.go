package domain

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/raffler-space/backend/internal/entity"
	"github.com/raffler-space/backend/internal/model"
	"github.com/raffler-space/backend/internal/repository"
	"github.com/raffler-space/backend/pkg/crypto"
	"github.com/raffler-space/backend/pkg/errorx"
	"github.com/raffler-space/backend/pkg/xcontext"
	"github.com/raffler-space/backend/pkg/xredis"
)

const loginNonceExpiration = 10 * time.Minute

type WalletAuthDomain interface {
	Login(ctx context.Context, req *model.WalletLoginRequest) (*model.WalletLoginResponse, error)
	Verify(ctx context.Context, req *model.WalletVerifyRequest) (*model.WalletVerifyResponse, error)
}

type walletAuthDomain struct {
	userRepo    repository.UserRepository
	redisClient xredis.Client
}

func NewWalletAuthDomain(
	userRepo repository.UserRepository,
	redisClient xredis.Client,
) WalletAuthDomain {
	return &walletAuthDomain{userRepo: userRepo, redisClient: redisClient}
}

// Login hands out a one-time nonce the wallet must sign. The nonce lives in
// redis for a short window and is deleted on the first successful verify.
func (d *walletAuthDomain) Login(
	ctx context.Context, req *model.WalletLoginRequest,
) (*model.WalletLoginResponse, error) {
	if req.Address == "" {
		return nil, errorx.New(errorx.BadRequest, "Require an address")
	}

	nonce, err := crypto.GenerateRandomString()
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate random string: %v", err)
		return nil, errorx.Unknown
	}

	err = d.redisClient.Set(ctx, loginNonceKey(req.Address), nonce, loginNonceExpiration)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot store login nonce: %v", err)
		return nil, errorx.Unknown
	}

	return &model.WalletLoginResponse{Address: req.Address, Nonce: nonce}, nil
}

func (d *walletAuthDomain) Verify(
	ctx context.Context, req *model.WalletVerifyRequest,
) (*model.WalletVerifyResponse, error) {
	nonce, err := d.redisClient.Get(ctx, loginNonceKey(req.Address))
	if err != nil {
		return nil, errorx.New(errorx.Unauthenticated, "No login session for this address")
	}

	hash := accounts.TextHash([]byte(nonce))
	signature, err := hexutil.Decode(req.Signature)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decode signature: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Malformed signature")
	}

	if len(signature) <= ethcrypto.RecoveryIDOffset {
		return nil, errorx.New(errorx.BadRequest, "Malformed signature")
	}

	if signature[ethcrypto.RecoveryIDOffset] == 27 || signature[ethcrypto.RecoveryIDOffset] == 28 {
		signature[ethcrypto.RecoveryIDOffset] -= 27 // Transform yellow paper V from 27/28 to 0/1
	}

	recovered, err := ethcrypto.SigToPub(hash, signature)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot recover signature to address: %v", err)
		return nil, errorx.New(errorx.Unauthenticated, "Invalid signature")
	}

	recoveredAddr := ethcrypto.PubkeyToAddress(*recovered)
	if !bytes.Equal(recoveredAddr.Bytes(), common.HexToAddress(req.Address).Bytes()) {
		return nil, errorx.New(errorx.Unauthenticated, "Mismatched address")
	}

	if err := d.redisClient.Del(ctx, loginNonceKey(req.Address)); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot delete login nonce: %v", err)
	}

	user, err := d.userRepo.GetByAddress(ctx, req.Address)
	if err != nil {
		walletNonce, err := crypto.GenerateRandomString()
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot generate wallet nonce: %v", err)
			return nil, errorx.Unknown
		}

		user = &entity.User{
			Base:        entity.Base{ID: uuid.NewString()},
			Address:     req.Address,
			Name:        req.Address,
			Role:        entity.RoleUser,
			WalletNonce: walletNonce,
		}

		if err := d.userRepo.Create(ctx, user); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
			return nil, errorx.Unknown
		}
	}

	token, err := xcontext.TokenEngine(ctx).Generate(user.ID, model.AccessToken{
		ID:      user.ID,
		Name:    user.Name,
		Address: user.Address,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.WalletVerifyResponse{AccessToken: token}, nil
}

func loginNonceKey(address string) string {
	return "login-nonce:" + strings.ToLower(address)
}
