package depgraph

// creationOrder topologically sorts the created tables so every table
// appears after the created tables it references. Ties break in order of
// first appearance in the batch. Tables stuck in a dependency cycle are
// appended in first-seen order and reported separately; the order always
// contains every created table exactly once.
func creationOrder(details []StatementDetail) (order, cycles []string) {
	var firstSeen []string
	created := map[string]struct{}{}
	for _, d := range details {
		for _, t := range d.Creates {
			if _, dup := created[t]; dup {
				continue
			}
			created[t] = struct{}{}
			firstSeen = append(firstSeen, t)
		}
	}

	// deps[t] holds the created tables t references. The first CREATE of a
	// duplicate table wins; later ones contribute no edges.
	deps := map[string]map[string]struct{}{}
	claimed := map[string]struct{}{}
	for _, d := range details {
		for _, t := range d.Creates {
			if _, dup := claimed[t]; dup {
				continue
			}
			claimed[t] = struct{}{}
			set := map[string]struct{}{}
			for _, ref := range d.References {
				if _, ok := created[ref]; ok && ref != t {
					set[ref] = struct{}{}
				}
			}
			deps[t] = set
		}
	}

	emitted := map[string]struct{}{}
	for len(order) < len(firstSeen) {
		progressed := false
		for _, t := range firstSeen {
			if _, done := emitted[t]; done {
				continue
			}
			ready := true
			for dep := range deps[t] {
				if _, done := emitted[dep]; !done {
					ready = false
					break
				}
			}
			if ready {
				emitted[t] = struct{}{}
				order = append(order, t)
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}

	for _, t := range firstSeen {
		if _, done := emitted[t]; !done {
			cycles = append(cycles, t)
			order = append(order, t)
		}
	}
	return order, cycles
}
