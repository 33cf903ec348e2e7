package chain

import (
	"context"
	"fmt"
	"time"

	solanaClient "github.com/blocto/solana-go-sdk/client"
	solanaTypes "github.com/blocto/solana-go-sdk/types"
	"github.com/zeromicro/go-zero/core/logx"
)

// Node is the send-side capability of one RPC endpoint.
type Node interface {
	URL() string
	LatestBlockhash(ctx context.Context) (string, error)
	Submit(ctx context.Context, tx solanaTypes.Transaction) (string, error)
	AwaitConfirmation(ctx context.Context, signature string) error
}

// solanaNode wraps one endpoint with the SDK client for build/send and the
// JSON-RPC reader for confirmation polling.
type solanaNode struct {
	url    string
	cli    *solanaClient.Client
	reader *SolanaRPCClient
}

// DialSolanaNode connects a Node to a single RPC endpoint.
func DialSolanaNode(url string) Node {
	return &solanaNode{
		url:    url,
		cli:    solanaClient.NewClient(url),
		reader: NewSolanaRPCClient(url),
	}
}

func (n *solanaNode) URL() string {
	return n.url
}

func (n *solanaNode) LatestBlockhash(ctx context.Context) (string, error) {
	resp, err := n.cli.GetLatestBlockhash(ctx)
	if err != nil {
		return "", err
	}
	return resp.Blockhash, nil
}

func (n *solanaNode) Submit(ctx context.Context, tx solanaTypes.Transaction) (string, error) {
	return n.cli.SendTransaction(ctx, tx)
}

// AwaitConfirmation polls signature status until the configured commitment
// is reached or the deadline passes.
func (n *solanaNode) AwaitConfirmation(ctx context.Context, signature string) error {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("confirmation timed out for %s: %w", signature, ctx.Err())
		case <-ticker.C:
			confirmed, err := n.reader.GetSignatureStatus(ctx, signature)
			if err != nil {
				return err
			}
			if confirmed {
				return nil
			}
		}
	}
}

// Sender submits Solana transactions with endpoint failover. Endpoints are
// tried in order; each endpoint gets exactly one attempt, no backoff. When
// every endpoint fails the last error is surfaced.
type Sender struct {
	endpoints []string
	dial      func(url string) Node
}

// NewSender builds a sender over the primary endpoint plus its fallbacks.
func NewSender(primary string, fallbacks []string) *Sender {
	return &Sender{
		endpoints: EndpointOrder(primary, fallbacks),
		dial:      DialSolanaNode,
	}
}

// EndpointOrder returns primary first, then the deduplicated fallbacks with
// the primary filtered out.
func EndpointOrder(primary string, fallbacks []string) []string {
	order := []string{primary}
	seen := map[string]bool{primary: true}
	for _, u := range fallbacks {
		if seen[u] {
			continue
		}
		seen[u] = true
		order = append(order, u)
	}
	return order
}

// Send runs the failover loop: per endpoint fetch a fresh blockhash, stamp
// and sign the transaction, submit, then block until confirmed. Any failure
// moves to the next endpoint.
func (s *Sender) Send(ctx context.Context, signer solanaTypes.Account, instructions []solanaTypes.Instruction) (signature string, usedFallback bool, err error) {
	logger := logx.WithContext(ctx)

	var lastErr error
	for i, url := range s.endpoints {
		node := s.dial(url)
		logger.Infof("尝试 RPC 节点 %d/%d: %s", i+1, len(s.endpoints), node.URL())

		blockhash, err := node.LatestBlockhash(ctx)
		if err != nil {
			logger.Errorf("获取区块哈希失败 (%s): %v", node.URL(), err)
			lastErr = err
			continue
		}

		tx, err := solanaTypes.NewTransaction(solanaTypes.NewTransactionParam{
			Message: solanaTypes.NewMessage(solanaTypes.NewMessageParam{
				FeePayer:        signer.PublicKey,
				RecentBlockhash: blockhash,
				Instructions:    instructions,
			}),
			Signers: []solanaTypes.Account{signer},
		})
		if err != nil {
			logger.Errorf("构建交易失败 (%s): %v", node.URL(), err)
			lastErr = err
			continue
		}

		sig, err := node.Submit(ctx, tx)
		if err != nil {
			logger.Errorf("发送交易失败 (%s): %v", node.URL(), err)
			lastErr = err
			continue
		}

		if err := node.AwaitConfirmation(ctx, sig); err != nil {
			logger.Errorf("等待确认失败 (%s): %v", node.URL(), err)
			lastErr = err
			continue
		}

		logger.Infof("✅ 交易已确认: %s (节点 %d)", sig, i+1)
		return sig, i > 0, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no rpc endpoints configured")
	}
	return "", false, lastErr
}
