// Package statecheck validates the structural consistency of an entity
// against its own lifecycle state.
//
// A Validator tracks an ordered list of properties and, for every state the
// entity can be in, one Requirement per property: Required, Forbidden or
// Indifferent. It does not drive transitions; it only answers whether the
// properties of an entity agree with the state it is currently in (or, with
// Preview, the state it is about to enter).
//
// # Usage
//
//	type Order struct {
//	    Status    Status
//	    ShippedAt *time.Time
//	    Tracking  string
//	}
//
//	orders := statecheck.MustNew(func(o Order) Status { return o.Status },
//	    statecheck.Prop("shipped_at", "Shipped at", func(o Order) any { return o.ShippedAt }),
//	    statecheck.Prop("tracking", "Tracking code", func(o Order) any { return o.Tracking }),
//	).
//	    Add(Draft, statecheck.Forbidden, statecheck.Forbidden).
//	    Add(Shipped, statecheck.Required, statecheck.Required)
//
//	if err := orders.Validate(order, "tracking"); err != nil {
//	    // err.Message == "Tracking code is necessary in state Shipped"
//	}
//
// Nil values, nil pointers, nil collections and empty strings count as absent.
//
// # Error Handling
//
// A requirement row with the wrong number of entries, a state registered
// twice or an entity in a state without a row are schema bugs. Add and
// MustNew panic for them and so does validation of an unregistered state
// (with *ErrUnknownState, see IsUnknownStateError). Register and New return
// the same conditions as errors for definitions loaded at runtime.
//
// # Concurrency
//
// The Validator holds no locks. Build it completely, then share it: all
// validation methods only read.
package statecheck
