package id

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/snowflake"
)

// Generation ids are snowflakes: time-ordered int64s, so a single id can key
// one generation attempt across logs and stream events.

var (
	mu   sync.Mutex
	node *snowflake.Node
)

// Init pins the snowflake node ID for this process. Call once at boot;
// a second call is an error rather than a silent no-op.
func Init(nodeID int64) error {
	mu.Lock()
	defer mu.Unlock()
	if node != nil {
		return fmt.Errorf("id: node already initialized")
	}
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return fmt.Errorf("creating snowflake node: %w", err)
	}
	node = n
	return nil
}

// New returns the next id, creating a node-0 generator when Init was never
// called.
func New() int64 {
	mu.Lock()
	n := node
	if n == nil {
		n, _ = snowflake.NewNode(0)
		node = n
	}
	mu.Unlock()
	return n.Generate().Int64()
}
