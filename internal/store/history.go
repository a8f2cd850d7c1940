package store

// Trim bounds msgs to a total token cost of maxCost by evicting the oldest
// messages first. Each message is costed once; surviving messages keep their
// order, so only a contiguous prefix is ever removed. The input is not
// mutated. A single message costing more than maxCost is evicted like any
// other, so the result can be empty.
func Trim(msgs []ChatMessage, maxCost int, counter TokenCounter) []ChatMessage {
	costs := make([]int, len(msgs))
	total := 0
	for i, m := range msgs {
		costs[i] = counter.Count(m.Text)
		total += costs[i]
	}
	start := 0
	for start < len(msgs) && total > maxCost {
		total -= costs[start]
		start++
	}
	out := make([]ChatMessage, len(msgs)-start)
	copy(out, msgs[start:])
	return out
}
