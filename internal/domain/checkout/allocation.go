package checkout

// AllocateSystemDiscount distributes totalDiscount across the groups in
// proportion to their payable amounts, using integer arithmetic only. The
// sum of the allocated shares always equals totalDiscount exactly: shares
// are floored and the last group absorbs the rounding remainder, spilling
// backward into earlier groups when its own payable cannot hold it. No
// group is ever allocated more than its payable amount.
func AllocateSystemDiscount(groups []*ShopGroup, totalDiscount int64) {
	if totalDiscount <= 0 || len(groups) == 0 {
		return
	}

	var weightSum int64
	for _, g := range groups {
		weightSum += g.PayableCents()
	}
	if weightSum <= 0 {
		return
	}
	if totalDiscount > weightSum {
		totalDiscount = weightSum
	}

	remaining := totalDiscount
	for i, g := range groups {
		payable := g.PayableCents()
		var share int64
		if i == len(groups)-1 {
			share = remaining
		} else {
			share = totalDiscount * payable / weightSum
		}
		if share > payable {
			share = payable
		}
		g.SystemShareCents = share
		remaining -= share
	}

	// Flooring can leave the tail group short of room; walk backward and
	// fill whatever headroom earlier groups still have.
	for i := len(groups) - 1; i >= 0 && remaining > 0; i-- {
		g := groups[i]
		headroom := g.PayableCents() - g.SystemShareCents
		if headroom <= 0 {
			continue
		}
		if headroom > remaining {
			headroom = remaining
		}
		g.SystemShareCents += headroom
		remaining -= headroom
	}
}
