// Package host drives effect modules from float audio blocks the way a
// plugin host would.
//
// A Rack owns one shared delay pool and the lock that serializes every
// processor using it. Each Processor wraps one module: it stores host
// parameter values atomically for control threads, pushes them into the
// module at the start of every block, converts samples to and from Q12 and
// ticks modulation every module.ModulationInterval samples.
package host
