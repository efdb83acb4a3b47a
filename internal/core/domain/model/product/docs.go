// Package product contains the stocked product aggregate. It tracks on-hand
// and reserved quantities; reservations back the picking assignment step and
// shipments consume them when a delivery is validated.
package product
