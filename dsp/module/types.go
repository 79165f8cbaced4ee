package module

import (
	"fmt"
	"strings"
)

// Type enumerates the effect family of the multi-effect processor. Only a
// subset has engines; the rest name slots on the roadmap.
type Type int

const (
	TypeOff Type = iota
	TypeHallReverb
	TypePlateReverb
	TypeRoomReverb
	TypeGatedReverb
	TypeReverseReverb
	TypeMonoDelay
	TypeStereoDelay
	TypePingPongDelay
	TypeTapeDelay
	TypeChorus
	TypeFlanger
	TypePitchShift
	TypeParametricEQ
	TypeGraphicEQ
	TypePhaser
	TypeTremolo
	TypeRotary
	TypeCompressor
	TypeLimiter
	TypeNoiseGate
	TypeDistortion
	TypeLowPass
	TypeHighPass

	numTypes
)

var typeNames = [numTypes]string{
	TypeOff:           "Off",
	TypeHallReverb:    "Hall Reverb",
	TypePlateReverb:   "Plate Reverb",
	TypeRoomReverb:    "Room Reverb",
	TypeGatedReverb:   "Gated Reverb",
	TypeReverseReverb: "Reverse Reverb",
	TypeMonoDelay:     "Mono Delay",
	TypeStereoDelay:   "Stereo Delay",
	TypePingPongDelay: "Ping Pong Delay",
	TypeTapeDelay:     "Tape Delay",
	TypeChorus:        "Chorus",
	TypeFlanger:       "Flanger",
	TypePitchShift:    "Pitch Shift",
	TypeParametricEQ:  "Parametric EQ",
	TypeGraphicEQ:     "Graphic EQ",
	TypePhaser:        "Phaser",
	TypeTremolo:       "Tremolo",
	TypeRotary:        "Rotary Speaker",
	TypeCompressor:    "Compressor",
	TypeLimiter:       "Limiter",
	TypeNoiseGate:     "Noise Gate",
	TypeDistortion:    "Distortion",
	TypeLowPass:       "Low-Pass Filter",
	TypeHighPass:      "High-Pass Filter",
}

// Types returns every effect type in enumeration order.
func Types() []Type {
	out := make([]Type, numTypes)
	for i := range out {
		out[i] = Type(i)
	}
	return out
}

// String returns the display name.
func (t Type) String() string {
	if t < 0 || t >= numTypes {
		return "Unknown"
	}
	return typeNames[t]
}

// Key returns the registry name: the display name lower-cased with spaces
// replaced by hyphens ("hall-reverb").
func (t Type) Key() string {
	if t < 0 || t >= numTypes {
		return ""
	}
	return strings.ReplaceAll(strings.ToLower(typeNames[t]), " ", "-")
}

// ParseType accepts a display name or a registry key.
func ParseType(s string) (Type, error) {
	s = strings.TrimSpace(s)
	for _, t := range Types() {
		if strings.EqualFold(s, t.String()) || strings.EqualFold(s, t.Key()) {
			return t, nil
		}
	}
	return TypeOff, fmt.Errorf("%w: %q", ErrUnknownEffect, s)
}
