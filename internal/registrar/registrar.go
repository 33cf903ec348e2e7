package registrar

import (
	"context"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"skillpass/internal/constant"
	"skillpass/internal/model"
	"skillpass/internal/walletstore"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/mr-tron/base58"
	"github.com/zeromicro/go-zero/core/logx"
)

// State is the wallet registration state of one user session.
type State int

const (
	StateUnauthenticated State = iota
	StateAuthenticatedNoWallet
	StateWalletCreating
	StateWalletReady
)

func (s State) String() string {
	switch s {
	case StateAuthenticatedNoWallet:
		return "authenticated_no_wallet"
	case StateWalletCreating:
		return "wallet_creating"
	case StateWalletReady:
		return "wallet_ready"
	default:
		return "unauthenticated"
	}
}

// IdentityEvent is one observation of a user's auth and wallet situation.
type IdentityEvent struct {
	UserId        string
	Authenticated bool
	// Addresses maps chain name to an address observed on the client.
	Addresses map[string]string
}

type session struct {
	state State
	// lastRegistered 每条链最近注册过的地址，避免重复写注册表
	lastRegistered map[string]string
}

// Registrar drives wallet registration off identity events. State transitions
// happen only here, never off request ordering. Registration is fire and
// forget: a failed write is logged and retried on the next event.
type Registrar struct {
	mu       sync.Mutex
	sessions map[string]*session

	dao   model.EmbeddedWalletsDao
	store *walletstore.Store
}

// New creates a registrar over the wallet key DAO and the address registry.
func New(dao model.EmbeddedWalletsDao, store *walletstore.Store) *Registrar {
	return &Registrar{
		sessions: make(map[string]*session),
		dao:      dao,
		store:    store,
	}
}

func (r *Registrar) session(userId string) *session {
	s, ok := r.sessions[userId]
	if !ok {
		s = &session{lastRegistered: make(map[string]string)}
		r.sessions[userId] = s
	}
	return s
}

// OnEvent applies one identity event and returns the resulting state.
func (r *Registrar) OnEvent(ctx context.Context, ev IdentityEvent) State {
	logger := logx.WithContext(ctx)

	r.mu.Lock()
	s := r.session(ev.UserId)

	if !ev.Authenticated {
		s.state = StateUnauthenticated
		r.mu.Unlock()
		return StateUnauthenticated
	}

	if s.state == StateWalletCreating {
		// 已在创建中，等待完成，不重复触发
		r.mu.Unlock()
		return StateWalletCreating
	}
	s.state = StateAuthenticatedNoWallet
	r.mu.Unlock()

	// 客户端上报的地址直接注册
	for chainName, address := range ev.Addresses {
		if constant.IsChainSupported(chainName) && address != "" {
			r.register(ctx, ev.UserId, chainName, address)
		}
	}

	// 检查内置钱包，缺失则创建
	_, err := r.dao.FindOneByUserChain(ctx, ev.UserId, string(constant.DefaultChain))
	if errors.Is(err, model.ErrNotFound) {
		r.setState(ev.UserId, StateWalletCreating)
		logger.Infof("用户 %s 无内置钱包, 开始创建", ev.UserId)
		if createErr := r.createWallets(ctx, ev.UserId); createErr != nil {
			logger.Errorf("创建内置钱包失败, 下次身份事件重试: %v", createErr)
			return r.setState(ev.UserId, StateAuthenticatedNoWallet)
		}
		return r.setState(ev.UserId, StateWalletReady)
	}
	if err != nil {
		logger.Errorf("查询内置钱包失败: %v", err)
		return r.setState(ev.UserId, StateAuthenticatedNoWallet)
	}

	// 钱包已存在，确保注册表齐全
	wallets, err := r.dao.FindByUser(ctx, ev.UserId)
	if err == nil {
		for _, w := range wallets {
			r.register(ctx, ev.UserId, w.ChainType, w.Address)
		}
	}
	return r.setState(ev.UserId, StateWalletReady)
}

// StateOf returns the current state for a user.
func (r *Registrar) StateOf(userId string) State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session(userId).state
}

// Register writes one address into the registry and records it in the
// per-chain cache. Used by the explicit register endpoint.
func (r *Registrar) Register(ctx context.Context, userId, chainName, address string) error {
	if err := r.store.Set(userId, chainName, address); err != nil {
		return err
	}
	r.mu.Lock()
	r.session(userId).lastRegistered[chainName] = address
	r.mu.Unlock()
	return nil
}

func (r *Registrar) setState(userId string, st State) State {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.session(userId).state = st
	return st
}

// register is the fire-and-forget path: failures are logged, never surfaced.
func (r *Registrar) register(ctx context.Context, userId, chainName, address string) {
	r.mu.Lock()
	last := r.session(userId).lastRegistered[chainName]
	r.mu.Unlock()
	if last == address {
		return
	}
	if err := r.Register(ctx, userId, chainName, address); err != nil {
		logx.WithContext(ctx).Errorf("⚠️ 注册地址失败 (%s/%s): %v", userId, chainName, err)
	}
}

// createWallets generates one embedded keypair per supported chain and
// persists it.
func (r *Registrar) createWallets(ctx context.Context, userId string) error {
	for _, chainName := range constant.SupportedChains {
		if _, err := r.dao.FindOneByUserChain(ctx, userId, string(chainName)); err == nil {
			continue
		} else if !errors.Is(err, model.ErrNotFound) {
			return err
		}

		address, privateKeyHex, err := generateKeypair(chainName)
		if err != nil {
			return err
		}

		now := time.Now()
		wallet := &model.EmbeddedWallet{
			UserId:              userId,
			ChainType:           string(chainName),
			Address:             address,
			EncryptedPrivateKey: privateKeyHex,
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		if err := r.dao.Insert(ctx, wallet); err != nil {
			return fmt.Errorf("failed to save wallet for %s: %w", chainName, err)
		}

		r.register(ctx, userId, string(chainName), address)
		logx.WithContext(ctx).Infof("✅ 链 %s 内置钱包创建成功: %s", chainName, address)
	}
	return nil
}

func generateKeypair(chainName constant.Chain) (address, privateKeyHex string, err error) {
	switch chainName {
	case constant.ChainEthereum:
		privateKey, errGen := crypto.GenerateKey()
		if errGen != nil {
			return "", "", fmt.Errorf("failed to generate evm private key: %w", errGen)
		}
		publicKey, ok := privateKey.Public().(*ecdsa.PublicKey)
		if !ok {
			return "", "", errors.New("failed to cast public key to ECDSA")
		}
		return crypto.PubkeyToAddress(*publicKey).Hex(), hex.EncodeToString(crypto.FromECDSA(privateKey)), nil

	case constant.ChainSolana:
		// Solana 地址即公钥的 Base58 编码
		publicKeyEd25519, privateKeyEd25519, errGen := ed25519.GenerateKey(rand.Reader)
		if errGen != nil {
			return "", "", fmt.Errorf("failed to generate solana private key: %w", errGen)
		}
		return base58.Encode(publicKeyEd25519), hex.EncodeToString(privateKeyEd25519), nil

	default:
		return "", "", fmt.Errorf("keypair generation not implemented for chain: %s", chainName)
	}
}
