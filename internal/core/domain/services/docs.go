// Package services contains domain services. These implement business logic
// that spans multiple aggregates and does not naturally belong to any one of
// them, such as planning delivery pickings from a confirmed order.
package services
