package order

// timestampSlot names the item timestamp field stamped by a transition.
type timestampSlot int

const (
	noTimestamp timestampSlot = iota
	deliveredAtSlot
	cancelledAtSlot
	returnRequestedAtSlot
)

// refundMode declares whether reaching a status credits the customer wallet.
type refundMode int

const (
	refundNever refundMode = iota
	refundAlways
	refundIfConfigured
)

// transitionEffect describes the side effects of reaching a target status:
// which timestamp field to stamp, if any, and whether a refund is due.
// Exactly one timestamp is set per transition; most target statuses set none.
type transitionEffect struct {
	slot   timestampSlot
	refund refundMode
}

// transitionEffects is the single lookup table consulted once per transition.
// Statuses absent from the table have no side effects beyond the status
// mutation itself.
func transitionEffects() map[Status]transitionEffect {
	return map[Status]transitionEffect{
		Delivered:       {slot: deliveredAtSlot},
		Cancelled:       {slot: cancelledAtSlot, refund: refundIfConfigured},
		ReturnRequested: {slot: returnRequestedAtSlot},
		Returned:        {refund: refundAlways},
	}
}

// RefundPolicy selects which transitions credit the customer wallet.
// Returns always refund; cancellation refunds only in deployments where
// payment is captured up front.
type RefundPolicy struct {
	RefundOnCancel bool
}

// refundDue reports whether reaching target triggers a refund under policy.
func (p RefundPolicy) refundDue(target Status) bool {
	switch transitionEffects()[target].refund {
	case refundAlways:
		return true
	case refundIfConfigured:
		return p.RefundOnCancel
	default:
		return false
	}
}
