package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/speps/go-hashids/v2"
)

// ShortCodeGenerator mints the human-readable aliases businesses are looked
// up by. Codes are opaque on purpose: they must not leak creation order.
type ShortCodeGenerator struct {
	h *hashids.HashID
}

func NewShortCodeGenerator(salt string) (*ShortCodeGenerator, error) {
	data := hashids.NewData()
	data.Salt = salt
	data.MinLength = 6
	data.Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789" // no 0/O, 1/I

	h, err := hashids.NewWithData(data)
	if err != nil {
		return nil, fmt.Errorf("shortcode generator: %w", err)
	}
	return &ShortCodeGenerator{h: h}, nil
}

// Generate returns a fresh candidate code. Uniqueness is enforced by the
// short_code constraint; on ErrConflict the caller just asks again.
func (g *ShortCodeGenerator) Generate() (string, error) {
	nonce := int64(uuid.New().ID())

	code, err := g.h.EncodeInt64([]int64{time.Now().UnixMilli() % 1_000_000, nonce % 100_000})
	if err != nil {
		return "", fmt.Errorf("shortcode encode: %w", err)
	}
	return strings.ToUpper(code[:6]), nil
}
