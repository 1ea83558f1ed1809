package multilevel

import (
	"github.com/cartograph/cartograph/clustering"
	"github.com/cartograph/cartograph/localmove"
	"github.com/cartograph/cartograph/network"
	"github.com/cartograph/cartograph/quality"
	"github.com/cartograph/cartograph/rng"
)

// Leiden runs the Leiden driver on (n, c), mutating c in
// place. Each outer iteration:
//
//  1. Fast local moving (localmove.FastLocalMoving).
//  2. Stop if every node is already its own cluster.
//  3. Refinement: every cluster's induced subnetwork is locally merged from
//     a singleton start (localmove.LocalMerging); the per-cluster results
//     are stitched into one refinement clustering over all nodes, with
//     cluster i's refined ids offset into a disjoint block. If the
//     refinement strictly coarsens the graph, the reduced network is built
//     from it (each refined id inheriting its enclosing non-refined
//     cluster's id as the reduced network's initial clustering) and c is
//     overwritten with the refinement; otherwise the reduced network is
//     built directly from the non-refined clustering with a singleton
//     initial clustering.
//  4. Recurse on the reduced network and project the result back onto c.
//
// Termination matches Louvain: nIterations > 0 runs exactly that many outer
// iterations; nIterations == 0 runs until fast local moving makes no move.
func Leiden(n *network.Network, c *clustering.Clustering, q quality.CPM, mergeCfg localmove.MergeConfig, nIterations int, seed *rng.Rng) bool {
	anyMove := false
	scratch := network.NewSubnetworkScratch(n.NNodes, n.NEdges)

	for iter := 0; ; iter++ {
		moved := localmove.FastLocalMoving(n, c, q, seed)
		anyMove = anyMove || moved

		if c.NClusters == n.NNodes {
			return anyMove
		}

		refinement := refine(n, c, mergeCfg, scratch, seed)

		var reducedNetwork *network.Network
		var reducedInitial *clustering.Clustering
		if refinement.NClusters < n.NNodes {
			reducedNetwork = n.CreateReducedNetwork(refinement.Clusters, refinement.NClusters)
			reducedInitial = clustering.NewFrom(inheritedNonRefinedIDs(refinement, c, reducedNetwork.NNodes))
			c.Clusters = refinement.Clusters
			c.NClusters = refinement.NClusters
		} else {
			reducedNetwork = n.CreateReducedNetwork(c.Clusters, c.NClusters)
			reducedInitial = clustering.NewSingleton(reducedNetwork.NNodes)
		}

		Leiden(reducedNetwork, reducedInitial, q, mergeCfg, nIterations, seed)
		c.MergeClusters(reducedInitial)

		if nIterations > 0 {
			if iter+1 >= nIterations {
				return anyMove
			}
		} else if !moved {
			return anyMove
		}
	}
}

// refine runs local merging independently on every cluster's induced
// subnetwork and stitches the results into one clustering over all of n's
// nodes, offsetting cluster i's refined ids into [offset_i, offset_i+k_i).
func refine(n *network.Network, c *clustering.Clustering, mergeCfg localmove.MergeConfig, scratch *network.SubnetworkScratch, seed *rng.Rng) *clustering.Clustering {
	members := c.NodesPerCluster()
	subnetworks := n.CreateSubnetworksByCluster(c.Clusters, c.NClusters, scratch)

	refinedIDs := make([]int, n.NNodes)
	offset := 0
	for ci, memberNodes := range members {
		if len(memberNodes) == 0 {
			continue
		}
		sub := subnetworks[ci]
		subClustering := clustering.NewSingleton(sub.NNodes)
		localmove.LocalMerging(sub, subClustering, mergeCfg, seed)

		for localID, refinedCluster := range subClustering.Clusters {
			refinedIDs[memberNodes[localID]] = offset + refinedCluster
		}
		offset += subClustering.NClusters
	}

	return clustering.NewFrom(refinedIDs)
}

// inheritedNonRefinedIDs builds the reduced network's initial clustering by
// assigning each refined super-node the non-refined cluster id of any one
// of its member nodes — well-defined because refinement merges nodes only
// within one non-refined cluster, so every member of a super-node shares
// the same non-refined cluster id.
func inheritedNonRefinedIDs(refinement, nonRefined *clustering.Clustering, nSuperNodes int) []int {
	inherited := make([]int, nSuperNodes)
	assigned := make([]bool, nSuperNodes)
	for origNode, refinedID := range refinement.Clusters {
		if !assigned[refinedID] {
			inherited[refinedID] = nonRefined.Clusters[origNode]
			assigned[refinedID] = true
		}
	}

	return inherited
}
