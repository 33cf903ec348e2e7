package chain

import (
	"context"
	"errors"
	"testing"

	solanaTypes "github.com/blocto/solana-go-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 32 个零字节的 base58，可通过交易序列化
const testBlockhash = "11111111111111111111111111111111"

type fakeNode struct {
	url            string
	blockhashErr   error
	submitErr      error
	confirmErr     error
	submitted      int
	signatureValue string
}

func (n *fakeNode) URL() string { return n.url }

func (n *fakeNode) LatestBlockhash(ctx context.Context) (string, error) {
	if n.blockhashErr != nil {
		return "", n.blockhashErr
	}
	return testBlockhash, nil
}

func (n *fakeNode) Submit(ctx context.Context, tx solanaTypes.Transaction) (string, error) {
	n.submitted++
	if n.submitErr != nil {
		return "", n.submitErr
	}
	return n.signatureValue, nil
}

func (n *fakeNode) AwaitConfirmation(ctx context.Context, signature string) error {
	return n.confirmErr
}

func newFakeSender(nodes map[string]*fakeNode, order []string) *Sender {
	return &Sender{
		endpoints: order,
		dial: func(url string) Node {
			return nodes[url]
		},
	}
}

func TestEndpointOrderDedupesAndExcludesPrimary(t *testing.T) {
	order := EndpointOrder("https://primary", []string{
		"https://fb-1",
		"https://primary",
		"https://fb-2",
		"https://fb-1",
	})
	assert.Equal(t, []string{"https://primary", "https://fb-1", "https://fb-2"}, order)
}

func TestSendSucceedsOnPrimary(t *testing.T) {
	nodes := map[string]*fakeNode{
		"p": {url: "p", signatureValue: "sig-primary"},
		"f": {url: "f", signatureValue: "sig-fallback"},
	}
	s := newFakeSender(nodes, []string{"p", "f"})

	signer := solanaTypes.NewAccount()
	sig, usedFallback, err := s.Send(context.Background(), signer, nil)
	require.NoError(t, err)
	assert.Equal(t, "sig-primary", sig)
	assert.False(t, usedFallback)
	assert.Zero(t, nodes["f"].submitted)
}

func TestSendAdvancesToFallbackOnFailure(t *testing.T) {
	nodes := map[string]*fakeNode{
		"p": {url: "p", blockhashErr: errors.New("primary down")},
		"f": {url: "f", signatureValue: "sig-fallback"},
	}
	s := newFakeSender(nodes, []string{"p", "f"})

	sig, usedFallback, err := s.Send(context.Background(), solanaTypes.NewAccount(), nil)
	require.NoError(t, err)
	assert.Equal(t, "sig-fallback", sig)
	assert.True(t, usedFallback)
}

func TestSendConfirmationFailureAdvances(t *testing.T) {
	nodes := map[string]*fakeNode{
		"p": {url: "p", signatureValue: "sig-primary", confirmErr: errors.New("not confirmed")},
		"f": {url: "f", signatureValue: "sig-fallback"},
	}
	s := newFakeSender(nodes, []string{"p", "f"})

	sig, usedFallback, err := s.Send(context.Background(), solanaTypes.NewAccount(), nil)
	require.NoError(t, err)
	assert.Equal(t, "sig-fallback", sig)
	assert.True(t, usedFallback)
	// 同一节点不重试
	assert.Equal(t, 1, nodes["p"].submitted)
}

func TestSendAllFailSurfacesLastError(t *testing.T) {
	firstErr := errors.New("first failure")
	lastErr := errors.New("last failure")
	nodes := map[string]*fakeNode{
		"p": {url: "p", blockhashErr: firstErr},
		"f": {url: "f", submitErr: lastErr},
	}
	s := newFakeSender(nodes, []string{"p", "f"})

	_, usedFallback, err := s.Send(context.Background(), solanaTypes.NewAccount(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, lastErr)
	assert.False(t, usedFallback)
}
