package domain

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/raffler-space/backend/internal/model"
	"github.com/raffler-space/backend/internal/repository"
	"github.com/raffler-space/backend/pkg/errorx"
	"github.com/raffler-space/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

// fakeNonceStore is a stateful in-memory stand-in for redis, so the
// single-use property of login nonces is observable.
type fakeNonceStore struct {
	values map[string]string
}

func newFakeNonceStore() *fakeNonceStore {
	return &fakeNonceStore{values: map[string]string{}}
}

func (s *fakeNonceStore) Exist(ctx context.Context, key string) (bool, error) {
	_, ok := s.values[key]
	return ok, nil
}

func (s *fakeNonceStore) Get(ctx context.Context, key string) (string, error) {
	value, ok := s.values[key]
	if !ok {
		return "", errors.New("key not found")
	}

	return value, nil
}

func (s *fakeNonceStore) Set(ctx context.Context, key, value string, _ time.Duration) error {
	s.values[key] = value
	return nil
}

func (s *fakeNonceStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(s.values, key)
	}

	return nil
}

func Test_walletAuthDomain_LoginAndVerify(t *testing.T) {
	ctx := testutil.MockContext()

	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	address := ethcrypto.PubkeyToAddress(key.PublicKey).Hex()

	domain := NewWalletAuthDomain(repository.NewUserRepository(), newFakeNonceStore())

	loginResp, err := domain.Login(ctx, &model.WalletLoginRequest{Address: address})
	require.NoError(t, err)
	require.NotEmpty(t, loginResp.Nonce)

	signature, err := ethcrypto.Sign(accounts.TextHash([]byte(loginResp.Nonce)), key)
	require.NoError(t, err)

	verifyResp, err := domain.Verify(ctx, &model.WalletVerifyRequest{
		Address:   address,
		Signature: hexutil.Encode(signature),
	})
	require.NoError(t, err)
	require.NotEmpty(t, verifyResp.AccessToken)

	// The first verify registers the user with a wallet nonce.
	user, err := repository.NewUserRepository().GetByAddress(ctx, address)
	require.NoError(t, err)
	require.NotEmpty(t, user.WalletNonce)
	require.Equal(t, address, user.Address)

	// The login nonce is single use.
	_, err = domain.Verify(ctx, &model.WalletVerifyRequest{
		Address:   address,
		Signature: hexutil.Encode(signature),
	})

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Unauthenticated, errx.Code)
}

func Test_walletAuthDomain_Verify_ReturningUserKeepsWalletNonce(t *testing.T) {
	ctx := testutil.MockContext()

	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	address := ethcrypto.PubkeyToAddress(key.PublicKey).Hex()

	domain := NewWalletAuthDomain(repository.NewUserRepository(), newFakeNonceStore())

	verify := func() {
		loginResp, err := domain.Login(ctx, &model.WalletLoginRequest{Address: address})
		require.NoError(t, err)

		signature, err := ethcrypto.Sign(accounts.TextHash([]byte(loginResp.Nonce)), key)
		require.NoError(t, err)

		_, err = domain.Verify(ctx, &model.WalletVerifyRequest{
			Address:   address,
			Signature: hexutil.Encode(signature),
		})
		require.NoError(t, err)
	}

	verify()
	first, err := repository.NewUserRepository().GetByAddress(ctx, address)
	require.NoError(t, err)

	verify()
	second, err := repository.NewUserRepository().GetByAddress(ctx, address)
	require.NoError(t, err)

	require.Equal(t, first.ID, second.ID)
	require.Equal(t, first.WalletNonce, second.WalletNonce)
}

func Test_walletAuthDomain_Verify_WrongSigner(t *testing.T) {
	ctx := testutil.MockContext()

	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	address := ethcrypto.PubkeyToAddress(key.PublicKey).Hex()

	otherKey, err := ethcrypto.GenerateKey()
	require.NoError(t, err)

	domain := NewWalletAuthDomain(repository.NewUserRepository(), newFakeNonceStore())

	loginResp, err := domain.Login(ctx, &model.WalletLoginRequest{Address: address})
	require.NoError(t, err)

	signature, err := ethcrypto.Sign(accounts.TextHash([]byte(loginResp.Nonce)), otherKey)
	require.NoError(t, err)

	_, err = domain.Verify(ctx, &model.WalletVerifyRequest{
		Address:   address,
		Signature: hexutil.Encode(signature),
	})

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Unauthenticated, errx.Code)
}
