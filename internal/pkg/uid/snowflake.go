package uid

import (
	"crypto/rand"
	"os"
	"strconv"

	"github.com/bwmarrin/snowflake"
)

// Snowflake generates time-ordered int64 IDs using Twitter's snowflake layout.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake creates a Snowflake generator.
//
// The node number is taken from the NODE_ID environment variable when set,
// otherwise a random node in [0, 1024) is used.
func NewSnowflake() (*Snowflake, error) {
	nodeNum, err := nodeNumber()
	if err != nil {
		return nil, err
	}

	node, err := snowflake.NewNode(nodeNum)
	if err != nil {
		return nil, err
	}

	return &Snowflake{node: node}, nil
}

// Generate returns a new unique int64 identifier.
func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}

func nodeNumber() (int64, error) {
	if v := os.Getenv("NODE_ID"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err == nil && n >= 0 && n < 1024 {
			return n, nil
		}
	}

	var b [2]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, err
	}

	return (int64(b[0])<<8 | int64(b[1])) % 1024, nil
}
