package order

// TransitionPolicy decides which status transitions are legal. The table is
// configuration, not code: operators can tighten it without a deploy.
//
// A nil transition map permits any transition between valid values, which
// matches the historical behavior where admins freely corrected orders.
type TransitionPolicy struct {
	transitions map[string][]string
}

// NewTransitionPolicy builds a policy from an explicit transition table
func NewTransitionPolicy(transitions map[string][]string) TransitionPolicy {
	return TransitionPolicy{transitions: transitions}
}

// PermissivePolicy allows any transition between valid values
func PermissivePolicy() TransitionPolicy {
	return TransitionPolicy{}
}

// StrictStatusPolicy enforces the forward-only fulfillment flow, with
// cancellation possible until the order ships.
func StrictStatusPolicy() TransitionPolicy {
	return NewTransitionPolicy(map[string][]string{
		string(StatusPending):    {string(StatusConfirmed), string(StatusCancelled)},
		string(StatusConfirmed):  {string(StatusProcessing), string(StatusCancelled)},
		string(StatusProcessing): {string(StatusShipped), string(StatusCancelled)},
		string(StatusShipped):    {string(StatusDelivered)},
		string(StatusDelivered):  {},
		string(StatusCancelled):  {},
	})
}

// StrictPaymentPolicy enforces the forward-only payment flow, with refunds
// only after completion.
func StrictPaymentPolicy() TransitionPolicy {
	return NewTransitionPolicy(map[string][]string{
		string(PaymentPending):    {string(PaymentProcessing), string(PaymentFailed)},
		string(PaymentProcessing): {string(PaymentCompleted), string(PaymentFailed)},
		string(PaymentCompleted):  {string(PaymentRefunded)},
		string(PaymentFailed):     {string(PaymentPending)},
		string(PaymentRefunded):   {},
	})
}

// Allowed reports whether from -> to is a legal transition
func (p TransitionPolicy) Allowed(from, to string) bool {
	if from == to {
		return true
	}
	if p.transitions == nil {
		return true
	}
	for _, candidate := range p.transitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}
