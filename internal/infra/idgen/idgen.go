// Package idgen provides the snowflake node used to mint opaque ids for
// client-generated records (activities, posts, payment references).
package idgen

import (
	"hash/fnv"
	"os"

	"sokoni/internal/errors"

	"github.com/bwmarrin/snowflake"
)

// NewNode creates a snowflake node whose id is derived from the hostname, so
// concurrently running instances are unlikely to collide.
func NewNode() (*snowflake.Node, error) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "sokoni"
	}

	h := fnv.New32a()
	_, _ = h.Write([]byte(hostname))
	nodeID := int64(h.Sum32() % 1024)

	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, errors.Wrap(err, "create snowflake node")
	}

	return node, nil
}
