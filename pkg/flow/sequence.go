package flow

// detectSequence rebuilds the execution order used by QuickRun.
//
// Nodes are appended in registration order once all their inputs are either
// plan inputs or already in the sequence; passes repeat until nothing more
// can be added. Nodes on a cycle, or depending on one, never enter the
// sequence.
func (p *Plan) detectSequence() {
	known := make(map[*Node]bool, len(p.nodes))
	for _, in := range p.inputs {
		known[in] = true
	}

	sequence := make([]*Node, 0, len(p.nodes))
	for {
		added := false
		for _, n := range p.nodes {
			if known[n] {
				continue
			}
			if !allKnown(n.inputs, known) {
				continue
			}
			sequence = append(sequence, n)
			known[n] = true
			added = true
		}
		if !added {
			break
		}
	}
	p.sequence = sequence
}

func allKnown(nodes []*Node, known map[*Node]bool) bool {
	for _, n := range nodes {
		if !known[n] {
			return false
		}
	}
	return true
}
