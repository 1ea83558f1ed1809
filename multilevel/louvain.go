// Package multilevel implements the Louvain and Leiden multilevel
// community-detection drivers and small-cluster removal, each built from
// the network, clustering, quality and localmove packages.
package multilevel

import (
	"github.com/cartograph/cartograph/clustering"
	"github.com/cartograph/cartograph/localmove"
	"github.com/cartograph/cartograph/network"
	"github.com/cartograph/cartograph/quality"
	"github.com/cartograph/cartograph/rng"
)

// Louvain runs the Louvain driver on (n, c), mutating c in place. Each
// outer iteration runs standard local moving, then — unless every node is
// already its own cluster — recurses on the reduced network starting from
// a singleton clustering, and projects the result back onto c. The outer
// loop runs exactly nIterations times if nIterations > 0, or until an
// iteration's local-moving pass makes no move if nIterations == 0. seed is
// shared across the whole recursion: recursive calls draw from a single
// stream rather than independent per-level seeds.
//
// Louvain reports whether any node ever moved across the whole run.
func Louvain(n *network.Network, c *clustering.Clustering, q quality.CPM, nIterations int, seed *rng.Rng) bool {
	anyMove := false

	for iter := 0; ; iter++ {
		moved := localmove.StandardLocalMoving(n, c, q, seed)
		anyMove = anyMove || moved

		if c.NClusters == n.NNodes {
			return anyMove
		}

		reduced := n.CreateReducedNetwork(c.Clusters, c.NClusters)
		reducedClustering := clustering.NewSingleton(reduced.NNodes)
		Louvain(reduced, reducedClustering, q, nIterations, seed)
		c.MergeClusters(reducedClustering)

		if nIterations > 0 {
			if iter+1 >= nIterations {
				return anyMove
			}
		} else if !moved {
			return anyMove
		}
	}
}
