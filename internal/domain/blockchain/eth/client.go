package eth

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/big"
	"math/rand"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/raffler-space/backend/contract/erc20"
	"github.com/raffler-space/backend/contract/raffle_pool"
	"github.com/raffler-space/backend/internal/domain/blockchain/types"
	"github.com/raffler-space/backend/internal/entity"
	"github.com/raffler-space/backend/internal/repository"
	"github.com/raffler-space/backend/pkg/ethutil"
	"github.com/raffler-space/backend/pkg/numberutil"
	"github.com/raffler-space/backend/pkg/xcontext"
	"golang.org/x/net/html"

	"github.com/ethereum/go-ethereum/common"
)

const (
	RpcTimeOut      = time.Second * 5
	MaxShuffleTimes = 20
)

// A wrapper around eth.client so that we can mock in reader/writer tests.
type EthClient interface {
	Start(ctx context.Context)

	BlockNumber(ctx context.Context) (uint64, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*ethtypes.Receipt, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SendTransaction(ctx context.Context, tx *ethtypes.Transaction) error
	BalanceAt(ctx context.Context, from common.Address, block *big.Int) (*big.Int, error)

	RaffleInfo(ctx context.Context, contractRaffleID int64) (types.RaffleInfo, error)
	RaffleCounter(ctx context.Context) (int64, error)
	RaffleOwner(ctx context.Context) (string, error)
	UserEntries(ctx context.Context, accountAddress string, contractRaffleID int64) (int64, error)
	RaffleParticipants(ctx context.Context, contractRaffleID int64) ([]string, error)

	ERC20TokenInfo(ctx context.Context, address string) (types.TokenInfo, error)
	ERC20BalanceOf(ctx context.Context, accountAddress string) (*big.Int, error)
	ERC20Allowance(ctx context.Context, ownerAddress string) (*big.Int, error)

	GetSignedApproveTx(ctx context.Context, senderNonce string, amount *big.Int) (*ethtypes.Transaction, error)
	GetSignedBuyTicketsTx(ctx context.Context, senderNonce string, contractRaffleID, quantity int64, gasLimit uint64) (*ethtypes.Transaction, error)
	GetSignedCreateRaffleTx(ctx context.Context, ticketPrice float64, maxTickets int64, endTime time.Time, nftContract string) (*ethtypes.Transaction, error)
	GetSignedSelectWinnerTx(ctx context.Context, contractRaffleID int64) (*ethtypes.Transaction, error)
	GetSignedClaimPrizeTx(ctx context.Context, contractRaffleID int64) (*ethtypes.Transaction, error)
	GetSignedWithdrawFeesTx(ctx context.Context) (*ethtypes.Transaction, error)
}

// Default implementation of ETH client. Since eth RPC often unstable, this client maintains a list
// of different RPC to connect to and uses the ones that is stable to dispatch a transaction.
type defaultEthClient struct {
	chain           string
	chainID         *big.Int
	raffleAddress   common.Address
	tokenAddress    common.Address
	tokenDecimals   int
	useExternalRpcs bool

	clients   []*ethclient.Client
	healthies []bool
	rpcs      []string

	mutex sync.RWMutex

	blockchainRepo repository.BlockChainRepository
}

func NewEthClients(
	blockchain *entity.Blockchain,
	blockchainRepo repository.BlockChainRepository,
) EthClient {
	c := &defaultEthClient{
		chain:           blockchain.Name,
		chainID:         big.NewInt(blockchain.ID),
		raffleAddress:   common.HexToAddress(blockchain.RaffleAddress),
		tokenAddress:    common.HexToAddress(blockchain.TokenAddress),
		tokenDecimals:   blockchain.TokenDecimals,
		useExternalRpcs: blockchain.UseExternalRPC,
		mutex:           sync.RWMutex{},
		blockchainRepo:  blockchainRepo,
	}

	return c
}

func (c *defaultEthClient) Start(ctx context.Context) {
	go c.loopCheck(ctx)
}

func (c *defaultEthClient) loopCheck(ctx context.Context) {
	for {
		time.Sleep(xcontext.Configs(ctx).Blockchain.RefreshConnectionFrequency.Duration)
		c.updateRpcs(ctx)
	}
}

func (c *defaultEthClient) updateRpcs(ctx context.Context) {
	rpcs := []string{}
	connections, err := c.blockchainRepo.GetConnectionsByChain(ctx, c.chain)
	if err != nil || len(connections) == 0 {
		xcontext.Logger(ctx).Errorf("Cannot get any connections of chain %s: %v", c.chain, err)
	} else {
		for _, conn := range connections {
			if conn.Type == entity.BlockchainConnectionRPC {
				rpcs = append(rpcs, "https://"+conn.URL)
			}
		}
	}

	if c.useExternalRpcs {
		externals, err := c.GetExtraRpcs(ctx)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Failed to get external rpc info: %v", err)
		} else {
			rpcs = append(rpcs, externals...)
		}
	}

	c.mutex.RLock()
	oldClients := c.clients
	c.mutex.RUnlock()

	rpcs, clients, healthies := c.getRpcsHealthiness(ctx, rpcs)

	// Close all the old clients
	c.mutex.Lock()
	for _, client := range oldClients {
		client.Close()
	}

	c.rpcs, c.clients, c.healthies = rpcs, clients, healthies
	c.mutex.Unlock()
}

func (c *defaultEthClient) getRpcsHealthiness(ctx context.Context, allRpcs []string) ([]string, []*ethclient.Client, []bool) {
	clients := make([]*ethclient.Client, 0)
	rpcs := make([]string, 0)
	healthies := make([]bool, 0)

	type healthyNode struct {
		client *ethclient.Client
		rpc    string
		height int64
	}

	nodes := make([]*healthyNode, 0)
	for _, rpc := range allRpcs {
		client, err := ethclient.Dial(rpc)
		if err == nil {
			checkCtx, cancel := context.WithTimeout(ctx, RpcTimeOut)
			block, err := client.BlockByNumber(checkCtx, nil)
			cancel()

			if err == nil && block.Number() != nil {
				nodes = append(nodes, &healthyNode{
					client: client,
					rpc:    rpc,
					height: block.Number().Int64(),
				})
			} else {
				client.Close()
			}
		}
	}

	if len(nodes) == 0 {
		return rpcs, clients, healthies
	}

	// Sorts all nodes by height
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].height > nodes[j].height
	})

	// Only select some nodes within a certain height from the median
	height := nodes[len(nodes)/2].height
	for _, node := range nodes {
		if numberutil.AbsInt64(node.height-height) < 5 {
			rpcs = append(rpcs, node.rpc)
			clients = append(clients, node.client)
			healthies = append(healthies, true)
		} else {
			node.client.Close()
		}
	}

	xcontext.Logger(ctx).Infof("Healthy rpcs for chain %s: %s", c.chain, rpcs)

	return rpcs, clients, healthies
}

func (c *defaultEthClient) processData(text string) ([]string, error) {
	tokenizer := html.NewTokenizer(strings.NewReader(text))
	var data string
	for {
		tokenType := tokenizer.Next()
		stop := false
		switch tokenType {
		case html.ErrorToken:
			stop = true

		case html.TextToken:
			text := tokenizer.Token().Data
			var js json.RawMessage
			if json.Unmarshal([]byte(text), &js) == nil {
				data = text
			}
		}

		if stop {
			break
		}
	}

	type result struct {
		Props struct {
			PageProps struct {
				Chain struct {
					Name string `json:"name"`
					RPC  []struct {
						Url string `json:"url"`
					} `json:"rpc"`
				} `json:"chain"`
			} `json:"pageProps"`
		} `json:"props"`
	}

	r := &result{}
	if err := json.Unmarshal([]byte(data), r); err != nil {
		return nil, err
	}

	ret := make([]string, 0)
	for _, rpc := range r.Props.PageProps.Chain.RPC {
		ret = append(ret, rpc.Url)
	}

	return ret, nil
}

func (c *defaultEthClient) GetExtraRpcs(ctx context.Context) ([]string, error) {
	url := fmt.Sprintf("https://chainlist.org/chain/%d", c.chainID)
	xcontext.Logger(ctx).Infof("Getting extra rpcs status from remote link %s for chain %s",
		url, c.chain)

	res, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != 200 {
		return nil, fmt.Errorf("failed to get chain list data, status code = %d", res.StatusCode)
	}

	bz, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	return c.processData(string(bz))
}

func (c *defaultEthClient) shuffle() ([]*ethclient.Client, []bool, []string) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	n := len(c.clients)
	if n == 0 {
		return nil, nil, nil
	}

	clients := make([]*ethclient.Client, n)
	healthy := make([]bool, n)
	rpcs := make([]string, n)

	copy(clients, c.clients)
	copy(healthy, c.healthies)
	copy(rpcs, c.rpcs)

	for i := 0; i < MaxShuffleTimes; i++ {
		x := rand.Intn(n)
		y := rand.Intn(n)

		clients[x], clients[y] = clients[y], clients[x]
		healthy[x], healthy[y] = healthy[y], healthy[x]
		rpcs[x], rpcs[y] = rpcs[y], rpcs[x]
	}

	return clients, healthy, rpcs
}

func (c *defaultEthClient) getHealthyClient(ctx context.Context) (*ethclient.Client, string) {
	c.mutex.RLock()
	if c.clients == nil {
		c.mutex.RUnlock()
		c.updateRpcs(ctx)
	} else {
		c.mutex.RUnlock()
	}

	// Shuffle rpcs so that we will use different healthy rpc
	clients, healthies, rpcs := c.shuffle()
	for i, healthy := range healthies {
		if healthy {
			return clients[i], rpcs[i]
		}
	}

	return nil, ""
}

func (c *defaultEthClient) execute(ctx context.Context, f func(client *ethclient.Client, rpc string) (any, error)) (any, error) {
	client, rpc := c.getHealthyClient(ctx)
	if client == nil {
		return nil, fmt.Errorf("%w: no healthy RPC for chain %s", types.ErrNetworkUnreachable, c.chain)
	}

	return f(client, rpc)
}

func (c *defaultEthClient) BlockNumber(ctx context.Context) (uint64, error) {
	num, err := c.execute(ctx, func(client *ethclient.Client, rpc string) (any, error) {
		return client.BlockNumber(ctx)
	})

	if err != nil {
		return 0, err
	}

	return num.(uint64), nil
}

func (c *defaultEthClient) TransactionReceipt(ctx context.Context, txHash common.Hash) (*ethtypes.Receipt, error) {
	receipt, err := c.execute(ctx, func(client *ethclient.Client, rpc string) (any, error) {
		return client.TransactionReceipt(ctx, txHash)
	})

	if err != nil {
		return nil, err
	}

	return receipt.(*ethtypes.Receipt), nil
}

func (c *defaultEthClient) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	gas, err := c.execute(ctx, func(client *ethclient.Client, rpc string) (any, error) {
		return client.SuggestGasPrice(ctx)
	})

	if err != nil {
		return nil, err
	}

	return gas.(*big.Int), nil
}

func (c *defaultEthClient) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	nonce, err := c.execute(ctx, func(client *ethclient.Client, rpc string) (any, error) {
		return client.PendingNonceAt(ctx, account)
	})

	if err != nil {
		return 0, err
	}

	return nonce.(uint64), nil
}

func (c *defaultEthClient) SendTransaction(ctx context.Context, tx *ethtypes.Transaction) error {
	_, err := c.execute(ctx, func(client *ethclient.Client, rpc string) (any, error) {
		err := client.SendTransaction(ctx, tx)
		return 0, err
	})

	return err
}

func (c *defaultEthClient) BalanceAt(ctx context.Context, from common.Address, block *big.Int) (*big.Int, error) {
	balance, err := c.execute(ctx, func(client *ethclient.Client, rpc string) (any, error) {
		return client.BalanceAt(ctx, from, block)
	})

	if err != nil {
		return nil, err
	}

	return balance.(*big.Int), nil
}

func (c *defaultEthClient) RaffleInfo(ctx context.Context, contractRaffleID int64) (types.RaffleInfo, error) {
	info, err := c.execute(ctx, func(client *ethclient.Client, rpc string) (any, error) {
		pool, err := raffle_pool.NewRafflePoolCaller(c.raffleAddress, client)
		if err != nil {
			return nil, err
		}

		out, err := pool.Raffles(c.callOpts(ctx), big.NewInt(contractRaffleID))
		if err != nil {
			return nil, err
		}

		winner := ""
		if out.Winner != (common.Address{}) {
			winner = out.Winner.Hex()
		}

		price, _ := new(big.Float).Quo(
			new(big.Float).SetInt(out.TicketPrice),
			big.NewFloat(math.Pow10(c.tokenDecimals)),
		).Float64()

		return types.RaffleInfo{
			ContractRaffleID: contractRaffleID,
			TicketsSold:      out.TicketsSold.Int64(),
			MaxTickets:       out.MaxTickets.Int64(),
			TicketPrice:      price,
			EndTime:          time.Unix(out.EndTime.Int64(), 0),
			Winner:           winner,
			IsActive:         out.IsActive,
			NFTContract:      out.NftContract.Hex(),
		}, nil
	})
	if err != nil {
		return types.RaffleInfo{}, err
	}

	return info.(types.RaffleInfo), nil
}

func (c *defaultEthClient) RaffleCounter(ctx context.Context) (int64, error) {
	counter, err := c.execute(ctx, func(client *ethclient.Client, rpc string) (any, error) {
		pool, err := raffle_pool.NewRafflePoolCaller(c.raffleAddress, client)
		if err != nil {
			return nil, err
		}

		counter, err := pool.RaffleCounter(c.callOpts(ctx))
		if err != nil {
			return nil, err
		}

		return counter.Int64(), nil
	})
	if err != nil {
		return 0, err
	}

	return counter.(int64), nil
}

func (c *defaultEthClient) RaffleOwner(ctx context.Context) (string, error) {
	owner, err := c.execute(ctx, func(client *ethclient.Client, rpc string) (any, error) {
		pool, err := raffle_pool.NewRafflePoolCaller(c.raffleAddress, client)
		if err != nil {
			return nil, err
		}

		owner, err := pool.Owner(c.callOpts(ctx))
		if err != nil {
			return nil, err
		}

		return owner.Hex(), nil
	})
	if err != nil {
		return "", err
	}

	return owner.(string), nil
}

func (c *defaultEthClient) UserEntries(
	ctx context.Context, accountAddress string, contractRaffleID int64,
) (int64, error) {
	entries, err := c.execute(ctx, func(client *ethclient.Client, rpc string) (any, error) {
		pool, err := raffle_pool.NewRafflePoolCaller(c.raffleAddress, client)
		if err != nil {
			return nil, err
		}

		entries, err := pool.GetUserEntries(
			c.callOpts(ctx), common.HexToAddress(accountAddress), big.NewInt(contractRaffleID))
		if err != nil {
			return nil, err
		}

		return entries.Int64(), nil
	})
	if err != nil {
		return 0, err
	}

	return entries.(int64), nil
}

func (c *defaultEthClient) RaffleParticipants(
	ctx context.Context, contractRaffleID int64,
) ([]string, error) {
	participants, err := c.execute(ctx, func(client *ethclient.Client, rpc string) (any, error) {
		pool, err := raffle_pool.NewRafflePoolCaller(c.raffleAddress, client)
		if err != nil {
			return nil, err
		}

		addresses, err := pool.GetRaffleParticipants(c.callOpts(ctx), big.NewInt(contractRaffleID))
		if err != nil {
			return nil, err
		}

		hexes := make([]string, 0, len(addresses))
		for _, address := range addresses {
			hexes = append(hexes, address.Hex())
		}

		return hexes, nil
	})
	if err != nil {
		return nil, err
	}

	return participants.([]string), nil
}

func (c *defaultEthClient) ERC20TokenInfo(ctx context.Context, address string) (types.TokenInfo, error) {
	info, err := c.execute(ctx, func(client *ethclient.Client, rpc string) (any, error) {
		tokenInstance, err := erc20.NewErc20Caller(common.HexToAddress(address), client)
		if err != nil {
			return nil, err
		}

		symbol, err := tokenInstance.Symbol(c.callOpts(ctx))
		if err != nil {
			return nil, err
		}

		decimals, err := tokenInstance.Decimals(c.callOpts(ctx))
		if err != nil {
			return nil, err
		}

		name, err := tokenInstance.Name(c.callOpts(ctx))
		if err != nil {
			return nil, err
		}

		return types.TokenInfo{Name: name, Symbol: symbol, Decimals: int(decimals)}, nil
	})
	if err != nil {
		return types.TokenInfo{}, err
	}

	return info.(types.TokenInfo), nil
}

func (c *defaultEthClient) ERC20BalanceOf(ctx context.Context, accountAddress string) (*big.Int, error) {
	balance, err := c.execute(ctx, func(client *ethclient.Client, rpc string) (any, error) {
		tokenInstance, err := erc20.NewErc20Caller(c.tokenAddress, client)
		if err != nil {
			return nil, err
		}

		return tokenInstance.BalanceOf(c.callOpts(ctx), common.HexToAddress(accountAddress))
	})
	if err != nil {
		return nil, err
	}

	return balance.(*big.Int), nil
}

// ERC20Allowance returns the stable-coin allowance the owner granted to the
// raffle contract.
func (c *defaultEthClient) ERC20Allowance(ctx context.Context, ownerAddress string) (*big.Int, error) {
	allowance, err := c.execute(ctx, func(client *ethclient.Client, rpc string) (any, error) {
		tokenInstance, err := erc20.NewErc20Caller(c.tokenAddress, client)
		if err != nil {
			return nil, err
		}

		return tokenInstance.Allowance(
			c.callOpts(ctx), common.HexToAddress(ownerAddress), c.raffleAddress)
	})
	if err != nil {
		return nil, err
	}

	return allowance.(*big.Int), nil
}

func (c *defaultEthClient) GetSignedApproveTx(
	ctx context.Context, senderNonce string, amount *big.Int,
) (*ethtypes.Transaction, error) {
	signedTx, err := c.execute(ctx, func(client *ethclient.Client, rpc string) (any, error) {
		tokenInstance, err := erc20.NewErc20(c.tokenAddress, client)
		if err != nil {
			return nil, err
		}

		senderPrivateKey, err := c.privateKey(ctx, senderNonce)
		if err != nil {
			return nil, err
		}

		return tokenInstance.Approve(
			c.transactionOpts(ctx, senderPrivateKey, 0), c.raffleAddress, amount)
	})
	if err != nil {
		return nil, err
	}

	return signedTx.(*ethtypes.Transaction), nil
}

func (c *defaultEthClient) GetSignedBuyTicketsTx(
	ctx context.Context, senderNonce string, contractRaffleID, quantity int64, gasLimit uint64,
) (*ethtypes.Transaction, error) {
	signedTx, err := c.execute(ctx, func(client *ethclient.Client, rpc string) (any, error) {
		pool, err := raffle_pool.NewRafflePool(c.raffleAddress, client)
		if err != nil {
			return nil, err
		}

		senderPrivateKey, err := c.privateKey(ctx, senderNonce)
		if err != nil {
			return nil, err
		}

		return pool.BuyTickets(
			c.transactionOpts(ctx, senderPrivateKey, gasLimit),
			big.NewInt(contractRaffleID), big.NewInt(quantity))
	})
	if err != nil {
		return nil, err
	}

	return signedTx.(*ethtypes.Transaction), nil
}

func (c *defaultEthClient) GetSignedCreateRaffleTx(
	ctx context.Context, ticketPrice float64, maxTickets int64, endTime time.Time, nftContract string,
) (*ethtypes.Transaction, error) {
	signedTx, err := c.execute(ctx, func(client *ethclient.Client, rpc string) (any, error) {
		pool, err := raffle_pool.NewRafflePool(c.raffleAddress, client)
		if err != nil {
			return nil, err
		}

		// Platform key needs no wallet nonce.
		platformPrivateKey, err := c.privateKey(ctx, "")
		if err != nil {
			return nil, err
		}

		price := big.NewInt(int64(ticketPrice * math.Pow10(c.tokenDecimals)))
		return pool.CreateRaffle(
			c.transactionOpts(ctx, platformPrivateKey, 0),
			price, big.NewInt(maxTickets), big.NewInt(endTime.Unix()),
			common.HexToAddress(nftContract))
	})
	if err != nil {
		return nil, err
	}

	return signedTx.(*ethtypes.Transaction), nil
}

func (c *defaultEthClient) GetSignedSelectWinnerTx(
	ctx context.Context, contractRaffleID int64,
) (*ethtypes.Transaction, error) {
	signedTx, err := c.execute(ctx, func(client *ethclient.Client, rpc string) (any, error) {
		pool, err := raffle_pool.NewRafflePool(c.raffleAddress, client)
		if err != nil {
			return nil, err
		}

		platformPrivateKey, err := c.privateKey(ctx, "")
		if err != nil {
			return nil, err
		}

		return pool.SelectWinner(
			c.transactionOpts(ctx, platformPrivateKey, 0), big.NewInt(contractRaffleID))
	})
	if err != nil {
		return nil, err
	}

	return signedTx.(*ethtypes.Transaction), nil
}

func (c *defaultEthClient) GetSignedClaimPrizeTx(
	ctx context.Context, contractRaffleID int64,
) (*ethtypes.Transaction, error) {
	signedTx, err := c.execute(ctx, func(client *ethclient.Client, rpc string) (any, error) {
		pool, err := raffle_pool.NewRafflePool(c.raffleAddress, client)
		if err != nil {
			return nil, err
		}

		platformPrivateKey, err := c.privateKey(ctx, "")
		if err != nil {
			return nil, err
		}

		return pool.ClaimPrize(
			c.transactionOpts(ctx, platformPrivateKey, 0), big.NewInt(contractRaffleID))
	})
	if err != nil {
		return nil, err
	}

	return signedTx.(*ethtypes.Transaction), nil
}

func (c *defaultEthClient) GetSignedWithdrawFeesTx(ctx context.Context) (*ethtypes.Transaction, error) {
	signedTx, err := c.execute(ctx, func(client *ethclient.Client, rpc string) (any, error) {
		pool, err := raffle_pool.NewRafflePool(c.raffleAddress, client)
		if err != nil {
			return nil, err
		}

		platformPrivateKey, err := c.privateKey(ctx, "")
		if err != nil {
			return nil, err
		}

		return pool.WithdrawFees(c.transactionOpts(ctx, platformPrivateKey, 0))
	})
	if err != nil {
		return nil, err
	}

	return signedTx.(*ethtypes.Transaction), nil
}

func (c *defaultEthClient) privateKey(ctx context.Context, nonce string) (*ecdsa.PrivateKey, error) {
	secret := xcontext.Configs(ctx).Blockchain.SecretKey
	return ethutil.GeneratePrivateKey([]byte(secret), []byte(nonce))
}

func (c *defaultEthClient) callOpts(ctx context.Context) *bind.CallOpts {
	return &bind.CallOpts{Context: ctx}
}

func (c *defaultEthClient) transactionOpts(
	ctx context.Context, fromPrivateKey *ecdsa.PrivateKey, gasLimit uint64,
) *bind.TransactOpts {
	return &bind.TransactOpts{
		From: crypto.PubkeyToAddress(fromPrivateKey.PublicKey),
		Signer: func(a common.Address, t *ethtypes.Transaction) (*ethtypes.Transaction, error) {
			return ethtypes.SignTx(t, ethtypes.NewEIP155Signer(c.chainID), fromPrivateKey)
		},
		GasLimit: gasLimit,
		Context:  ctx,
		NoSend:   true,
	}
}
