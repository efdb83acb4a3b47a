// Package order contains the sales order aggregate.
//
// An Order is a sales commitment owned by a partner. It owns its order lines
// (destroyed with the order) and moves through the lifecycle
// draft → sent → sale → done, with cancel reachable from every non-final
// state. State only advances through explicit transition methods; fields are
// never assigned directly by callers.
//
// The aggregate also carries the invoice eligibility derived for it:
// "no" (nothing to invoice), "to invoice" (confirmed and billable), or
// "invoiced" (an invoice exists). Eligibility depends on the order's
// invoicing policy: policy "order" becomes billable at confirmation, policy
// "delivery" only once a delivered quantity has been recorded.
package order
