package registrar

import (
	"context"
	"path/filepath"
	"testing"

	"skillpass/internal/model"
	"skillpass/internal/walletstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWalletsDao struct {
	wallets   []*model.EmbeddedWallet
	insertErr error
}

func (d *fakeWalletsDao) Insert(ctx context.Context, data *model.EmbeddedWallet) error {
	if d.insertErr != nil {
		return d.insertErr
	}
	d.wallets = append(d.wallets, data)
	return nil
}

func (d *fakeWalletsDao) FindOneByUserChain(ctx context.Context, userId, chainType string) (*model.EmbeddedWallet, error) {
	for _, w := range d.wallets {
		if w.UserId == userId && w.ChainType == chainType {
			return w, nil
		}
	}
	return nil, model.ErrNotFound
}

func (d *fakeWalletsDao) FindOneByAddress(ctx context.Context, address string) (*model.EmbeddedWallet, error) {
	for _, w := range d.wallets {
		if w.Address == address {
			return w, nil
		}
	}
	return nil, model.ErrNotFound
}

func (d *fakeWalletsDao) FindByUser(ctx context.Context, userId string) ([]*model.EmbeddedWallet, error) {
	var out []*model.EmbeddedWallet
	for _, w := range d.wallets {
		if w.UserId == userId {
			out = append(out, w)
		}
	}
	return out, nil
}

func newTestRegistrar(t *testing.T, dao model.EmbeddedWalletsDao) (*Registrar, *walletstore.Store) {
	t.Helper()
	store := walletstore.NewStore(filepath.Join(t.TempDir(), "wallets.json"))
	return New(dao, store), store
}

func TestUnauthenticatedEventResetsState(t *testing.T) {
	r, _ := newTestRegistrar(t, &fakeWalletsDao{})

	st := r.OnEvent(context.Background(), IdentityEvent{UserId: "user-1", Authenticated: false})
	assert.Equal(t, StateUnauthenticated, st)
	assert.Equal(t, "unauthenticated", st.String())
}

func TestAuthenticatedWithoutWalletCreatesAndRegisters(t *testing.T) {
	dao := &fakeWalletsDao{}
	r, store := newTestRegistrar(t, dao)

	st := r.OnEvent(context.Background(), IdentityEvent{UserId: "user-1", Authenticated: true})
	assert.Equal(t, StateWalletReady, st)

	// 两条链各创建一个钱包并写入注册表
	require.Len(t, dao.wallets, 2)
	solAddr, err := store.Get("user-1", "solana")
	require.NoError(t, err)
	assert.NotEmpty(t, solAddr)
	ethAddr, err := store.Get("user-1", "ethereum")
	require.NoError(t, err)
	assert.True(t, len(ethAddr) == 42 && ethAddr[:2] == "0x")
}

func TestCreationFailureRetriedOnNextEvent(t *testing.T) {
	dao := &fakeWalletsDao{insertErr: assert.AnError}
	r, _ := newTestRegistrar(t, dao)

	st := r.OnEvent(context.Background(), IdentityEvent{UserId: "user-1", Authenticated: true})
	assert.Equal(t, StateAuthenticatedNoWallet, st)

	dao.insertErr = nil
	st = r.OnEvent(context.Background(), IdentityEvent{UserId: "user-1", Authenticated: true})
	assert.Equal(t, StateWalletReady, st)
	assert.Len(t, dao.wallets, 2)
}

func TestExistingWalletSkipsCreation(t *testing.T) {
	dao := &fakeWalletsDao{}
	r, _ := newTestRegistrar(t, dao)

	require.Equal(t, StateWalletReady, r.OnEvent(context.Background(), IdentityEvent{UserId: "user-1", Authenticated: true}))
	created := len(dao.wallets)

	r.OnEvent(context.Background(), IdentityEvent{UserId: "user-1", Authenticated: true})
	assert.Len(t, dao.wallets, created)
}

func TestClientReportedAddressRegisteredOnce(t *testing.T) {
	dao := &fakeWalletsDao{
		wallets: []*model.EmbeddedWallet{
			{UserId: "user-1", ChainType: "solana", Address: "embedded-sol"},
			{UserId: "user-1", ChainType: "ethereum", Address: "0xembedded"},
		},
	}
	r, store := newTestRegistrar(t, dao)

	ev := IdentityEvent{
		UserId:        "user-1",
		Authenticated: true,
		Addresses:     map[string]string{"solana": "client-sol"},
	}
	r.OnEvent(context.Background(), ev)

	// 内置钱包地址后注册，覆盖客户端上报值
	addr, err := store.Get("user-1", "solana")
	require.NoError(t, err)
	assert.Equal(t, "embedded-sol", addr)

	// 同地址重复事件不再写注册表
	entries, err := store.All()
	require.NoError(t, err)
	before := len(entries)
	r.OnEvent(context.Background(), ev)
	entries, err = store.All()
	require.NoError(t, err)
	assert.Len(t, entries, before)
}
