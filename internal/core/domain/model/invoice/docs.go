// Package invoice contains the customer invoice aggregate. An invoice is
// created from a billable order once its deliveries are validated, and is
// posted immediately after creation by the fulfillment workflow.
package invoice
