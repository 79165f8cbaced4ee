// Package pool emulates the multiplexed delay memory that several effect
// engines of the emulated hardware shared over one bus.
//
// The pool is a single circular buffer of fixed-point samples whose length
// is a power of two. It powers up full of low-level noise rather than
// silence, occasionally flips the least-significant bit of the cell after a
// write, and shortens reads by one sample when the bus arbiter hands the
// slot to a competing engine. These faults are part of the emulated sound.
//
// A Pool is not safe for concurrent use. Every engine that shares one must
// serialize access under the same lock as the rest of its audio work.
package pool
