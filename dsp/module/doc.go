// Package module defines the contract every effect engine of the emulated
// multi-effect DSP implements: parameter metadata, presets, lifecycle and
// per-sample processing against the shared delay pool.
//
// Optional behavior is discovered through small capability interfaces
// (Modulator, RealtimeDisplay, BusClient). Engines are selected at
// construction time through a Registry.
package module
