package snowflake

import (
	"fmt"
	"hash/fnv"
	"os"
	"sync"

	"ShopMate/app/common/consts/biz"

	bwsnowflake "github.com/bwmarrin/snowflake"
)

var (
	once sync.Once
	node *bwsnowflake.Node
)

func initNode() {
	// derive node from hostname hash (10 bits)
	host, _ := os.Hostname()
	h := fnv.New32a()
	_, _ = h.Write([]byte(host))
	id := int64(h.Sum32()) & 0x3FF
	n, err := bwsnowflake.NewNode(id)
	if err != nil {
		n, _ = bwsnowflake.NewNode(1)
	}
	node = n
}

// Next returns a new snowflake id.
func Next() int64 {
	once.Do(initNode)
	return node.Generate().Int64()
}

// SessionID mints an id for sessions created server-side, when the client
// did not supply one.
func SessionID() string {
	return fmt.Sprintf("%s%d", biz.SESSION_ID_PREFIX, Next())
}
