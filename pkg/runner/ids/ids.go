// Package ids manages the synthetic display id map.
package ids

import (
	"context"
	"fmt"

	"tableflip.dev/granular/pkg/idmap"
)

// Clear wipes every display id table. The next rendering pass assigns
// fresh ids starting from 1.
type Clear struct {
	IDs *idmap.Map
}

func (n *Clear) Do(ctx context.Context) error {
	n.IDs.Clear()
	fmt.Println("display ids cleared")
	return nil
}
