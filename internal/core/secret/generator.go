// Package secret generates high-entropy credential strings.
//
// Generation prefers a cryptographically strong source and degrades to a
// seeded non-cryptographic source when that source fails, surfacing a single
// warning through the logger. Generate never fails: it always returns a
// string of the requested length.
package secret

import (
	"crypto/rand"
	"io"
	"log/slog"
	mathrand "math/rand"
	"time"
)

// =============================================================================
// Alphabet
// =============================================================================

// Alphabet is the credential character set: uppercase and lowercase letters,
// digits, and a small symbol set that survives unquoted use in env files,
// ini files, and shell scripts. 70 characters, slightly over 6.1 bits of
// entropy each, so the default 24-character secret carries about 147 bits.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%^&*"

// DefaultLength is the generated credential length when the caller has no
// reason to pick another.
const DefaultLength = 24

// =============================================================================
// Generator
// =============================================================================

// Generator produces credential strings from a random source. The zero
// source is crypto/rand; a Generator whose source fails switches permanently
// to a time-seeded fallback and logs one warning.
//
// A synthesis run is single-threaded, and so is a Generator: it is not safe
// for concurrent use.
type Generator struct {
	source   io.Reader
	logger   *slog.Logger
	degraded bool
	fallback *mathrand.Rand
}

// Option configures a Generator.
type Option func(*Generator)

// WithSource replaces the random source. Tests use this to force both
// deterministic output and source failure.
func WithSource(r io.Reader) Option {
	return func(g *Generator) { g.source = r }
}

// WithLogger sets the logger that receives the degradation warning.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) { g.logger = logger }
}

// New creates a Generator reading from crypto/rand unless overridden.
func New(opts ...Option) *Generator {
	g := &Generator{
		source: rand.Reader,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns a string of exactly length characters drawn uniformly
// from Alphabet. A non-positive length yields the empty string.
//
// When the random source fails mid-read, the generator logs a warning,
// switches to a non-cryptographic fallback for the rest of its lifetime,
// and still returns a full-length string. It never returns an error.
func (g *Generator) Generate(length int) string {
	if length <= 0 {
		return ""
	}

	out := make([]byte, 0, length)
	buf := make([]byte, length*2) // headroom for rejected bytes

	for len(out) < length {
		n := g.read(buf)
		for _, b := range buf[:n] {
			// Reject bytes from the truncated tail of the 256-value space
			// so every alphabet character stays equally likely.
			if b >= rejectionLimit {
				continue
			}
			out = append(out, Alphabet[int(b)%len(Alphabet)])
			if len(out) == length {
				break
			}
		}
	}
	return string(out)
}

// GenerateDefault returns a credential of DefaultLength.
func (g *Generator) GenerateDefault() string {
	return g.Generate(DefaultLength)
}

// Degraded reports whether the generator has fallen back to the
// non-cryptographic source. Adapters surface this to the user next to the
// generated values.
func (g *Generator) Degraded() bool {
	return g.degraded
}

// rejectionLimit is the largest multiple of len(Alphabet) that fits in a
// byte: 256 - 256%70 = 210. Bytes at or above it are discarded.
const rejectionLimit = byte(256 - (256 % len(Alphabet)))

// read fills buf from the active source, degrading on failure. It always
// returns at least one byte.
func (g *Generator) read(buf []byte) int {
	if !g.degraded {
		n, err := io.ReadFull(g.source, buf)
		if err == nil {
			return n
		}
		g.degrade(err)
	}
	for i := range buf {
		buf[i] = byte(g.fallback.Intn(256))
	}
	return len(buf)
}

// degrade switches to the fallback source and logs the one warning this
// package ever emits.
func (g *Generator) degrade(cause error) {
	g.degraded = true
	g.fallback = mathrand.New(mathrand.NewSource(time.Now().UnixNano()))
	if g.logger != nil {
		g.logger.Warn("secure random source unavailable, falling back to non-cryptographic generation",
			"error", cause)
	}
}
