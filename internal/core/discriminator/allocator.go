// Package discriminator picks free numeric tags for usernames.
package discriminator

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/tagblog/tagblog/internal/core/domain"
	"github.com/tagblog/tagblog/internal/core/ports"
)

// Allocate picks a free discriminator for the username, uniformly at random
// from the unused portion of [1, 9999]. Random selection keeps tags from
// leaking registration order and makes enumeration pointless.
//
// The allocation is inherently racy: two concurrent registrations can compute
// overlapping free sets. Allocate does not retry; the store's uniqueness
// constraint arbitrates and the caller handles the resulting conflict.
func Allocate(ctx context.Context, repo ports.UserRepository, username string) (int, error) {
	used, err := repo.UsedDiscriminators(ctx, username)
	if err != nil {
		return 0, fmt.Errorf("load used discriminators: %w", err)
	}

	taken := make(map[int]struct{}, len(used))
	for _, d := range used {
		taken[d] = struct{}{}
	}

	free := make([]int, 0, domain.MaxDiscriminator-len(taken))
	for d := domain.MinDiscriminator; d <= domain.MaxDiscriminator; d++ {
		if _, ok := taken[d]; !ok {
			free = append(free, d)
		}
	}

	if len(free) == 0 {
		return 0, domain.ErrDiscriminatorExhausted
	}

	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(free))))
	if err != nil {
		return 0, fmt.Errorf("draw random index: %w", err)
	}
	return free[n.Int64()], nil
}
