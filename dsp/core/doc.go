// Package core holds small numeric helpers and processor configuration
// shared by the fixed-point engine, the reverb and the host adapter.
package core
