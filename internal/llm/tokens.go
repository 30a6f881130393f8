package llm

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

var (
	encodingOnce sync.Once
	encoding     *tiktoken.Tiktoken
)

// TokenEstimator counts prompt tokens with the cl100k_base encoding.
// Without an encoding it falls back to four bytes per token.
type TokenEstimator struct {
	enc *tiktoken.Tiktoken
}

// NewTokenEstimator returns an estimator sharing one process-wide encoding.
func NewTokenEstimator() *TokenEstimator {
	encodingOnce.Do(func() {
		tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return
		}
		encoding = enc
	})
	return &TokenEstimator{enc: encoding}
}

// Count returns the estimated number of tokens in text.
func (e *TokenEstimator) Count(text string) int {
	if text == "" {
		return 0
	}
	if e == nil || e.enc == nil {
		return (len(text) + 3) / 4
	}
	return len(e.enc.Encode(text, nil, nil))
}
