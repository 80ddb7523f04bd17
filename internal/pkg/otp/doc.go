// Package otp generates short numeric one-time passcodes.
//
// Codes are meant to be delivered out-of-band (email) and verified once
// within a bounded window. Generation uses crypto/rand so every digit is
// uniformly random.
package otp
