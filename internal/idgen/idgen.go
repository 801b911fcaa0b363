// Package idgen supplies entity ids behind an interface so tests can run
// with a deterministic generator.
package idgen

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

type Generator interface {
	NewID() string
}

type UUID struct{}

func (UUID) NewID() string {
	return uuid.NewString()
}

// Sequential yields p-1, p-2, ... with the configured prefix.
type Sequential struct {
	Prefix string
	n      atomic.Int64
}

func (g *Sequential) NewID() string {
	return fmt.Sprintf("%s-%d", g.Prefix, g.n.Add(1))
}
