package network

// Normalization selects which edge-weight normalisation CreateNormalized
// applies.
type Normalization int

const (
	// NormalizationNone resets node weights to 1 and leaves edge weights
	// untouched.
	NormalizationNone Normalization = iota
	// NormalizationAssociationStrength divides each edge weight by the
	// expected weight under a configuration model.
	NormalizationAssociationStrength
	// NormalizationFractionalization multiplies each edge weight by the
	// mean of NNodes/n_i and NNodes/n_j over its endpoints' node weights.
	NormalizationFractionalization
)

// CreateNormalized returns a new Network sharing this Network's CSR
// topology (FirstNeighborIndices and Neighbors are reused, not copied —
// they are read-only and this Network is itself read-only) but with
// EdgeWeights recomputed per the requested Normalization, node weights
// reset to 1, and TotalEdgeWeightSelfLinks reset to 0.
//
// Complexity: O(NNodes + NEdges) for every kind; NormalizationNone still
// copies EdgeWeights.
func (n *Network) CreateNormalized(kind Normalization) *Network {
	out := &Network{
		NNodes:                   n.NNodes,
		NEdges:                   n.NEdges,
		FirstNeighborIndices:     n.FirstNeighborIndices,
		Neighbors:                n.Neighbors,
		TotalEdgeWeightSelfLinks: 0,
	}
	out.NodeWeights = make([]float64, n.NNodes)
	for i := range out.NodeWeights {
		out.NodeWeights[i] = 1
	}

	switch kind {
	case NormalizationAssociationStrength:
		out.EdgeWeights = n.associationStrengthWeights()
	case NormalizationFractionalization:
		out.EdgeWeights = n.fractionalizationWeights()
	default:
		out.EdgeWeights = append([]float64(nil), n.EdgeWeights...)
	}

	return out
}

// associationStrengthWeights computes w'_{ij} = w_{ij} / (n_i*n_j/T), T =
// sum of all node weights.
func (n *Network) associationStrengthWeights() []float64 {
	total := n.TotalNodeWeight()
	out := make([]float64, n.NEdges)
	for i := 0; i < n.NNodes; i++ {
		ni := n.NodeWeights[i]
		for k, j := range n.NeighborsOf(i) {
			nj := n.NodeWeights[j]
			idx := n.FirstNeighborIndices[i] + k
			expected := ni * nj / total
			out[idx] = n.EdgeWeights[idx] / expected
		}
	}

	return out
}

// fractionalizationWeights computes w'_{ij} = w_{ij} * (N/n_i + N/n_j)/2,
// algebraically equivalent to the reference implementation's
// w / (2 / (N/n_i + N/n_j)) formulation.
func (n *Network) fractionalizationWeights() []float64 {
	nn := float64(n.NNodes)
	out := make([]float64, n.NEdges)
	for i := 0; i < n.NNodes; i++ {
		ni := n.NodeWeights[i]
		for k, j := range n.NeighborsOf(i) {
			nj := n.NodeWeights[j]
			idx := n.FirstNeighborIndices[i] + k
			out[idx] = n.EdgeWeights[idx] * (nn/ni + nn/nj) / 2
		}
	}

	return out
}
