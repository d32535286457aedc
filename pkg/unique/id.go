package unique

import (
	"github.com/huynhanx03/codelens/pkg/encoding"
)

// PrefixedIDs renders snowflake ids as prefix + base62, e.g. "analysis_5Jx3a9Lk2".
type PrefixedIDs struct {
	node   *SnowflakeNode
	prefix string
}

func NewPrefixedIDs(node *SnowflakeNode, prefix string) *PrefixedIDs {
	return &PrefixedIDs{node: node, prefix: prefix}
}

func (p *PrefixedIDs) Next() string {
	return p.prefix + encoding.Base62Encode(p.node.Generate())
}
