// Package chaincfg is the process-wide network/consensus profile
// registry: a selector naming the active consensus family, its hash
// choice, varint strictness, and (when applicable) its replay-protection
// fork-id byte.
package chaincfg

import (
	"sync/atomic"

	"github.com/txforge/txcore/er"
)

// Family identifies which transaction family a profile belongs to.
type Family int

const (
	// FamilyLegacy covers the legacy and segwit/BIP-143/ForkID
	// transaction encodings, all of which share one wire layout.
	FamilyLegacy Family = iota
	// FamilyBlake covers the Decred-style prefix/witness-stream
	// transaction encoding.
	FamilyBlake
)

func (f Family) String() string {
	switch f {
	case FamilyLegacy:
		return "legacy"
	case FamilyBlake:
		return "blake"
	default:
		return "unknown"
	}
}

// HashChoice identifies the double-hash function a profile uses for
// tx-ids and sighash digests.
type HashChoice int

const (
	HashSHA256D HashChoice = iota
	HashBlake256D
)

// Params describes one consensus profile. Params values are immutable
// once registered; Select swaps the process-wide active pointer rather
// than mutating a Params in place.
type Params struct {
	Name   string
	Family Family
	Hash   HashChoice

	// StrictVarInt requires the canonical minimal VarInt encoding.
	StrictVarInt bool

	// HasForkID marks the replay-protected ForkID sighash variant;
	// ForkID is OR-ed into the sighash type byte when set.
	HasForkID bool
	ForkID    byte
}

// MainNet is the default legacy, non-strict, non-ForkID profile.
var MainNet = &Params{
	Name:         "mainnet",
	Family:       FamilyLegacy,
	Hash:         HashSHA256D,
	StrictVarInt: false,
}

// StrictNet is a legacy profile that enforces canonical VarInt encoding.
var StrictNet = &Params{
	Name:         "strictnet",
	Family:       FamilyLegacy,
	Hash:         HashSHA256D,
	StrictVarInt: true,
}

// ForkIDNet is the replay-protected legacy profile. 0x40 is the
// SIGHASH_FORKID bit Bitcoin Cash ORs into its sighash types.
var ForkIDNet = &Params{
	Name:         "forkidnet",
	Family:       FamilyLegacy,
	Hash:         HashSHA256D,
	StrictVarInt: false,
	HasForkID:    true,
	ForkID:       0x40,
}

// BlakeNet is the Decred-style Blake-family profile.
var BlakeNet = &Params{
	Name:         "blakenet",
	Family:       FamilyBlake,
	Hash:         HashBlake256D,
	StrictVarInt: true,
}

var registry = map[string]*Params{
	MainNet.Name:   MainNet,
	StrictNet.Name: StrictNet,
	ForkIDNet.Name: ForkIDNet,
	BlakeNet.Name:  BlakeNet,
}

// active holds the process-wide default profile. It is stored behind an
// atomic.Value so that a swap observed by one subsequent call is fully
// visible to every other caller, without any reader taking a lock.
var active atomic.Value

func init() {
	active.Store(MainNet)
}

// Register adds a custom profile to the registry under p.Name.
func Register(p *Params) er.R {
	if p == nil || p.Name == "" {
		return er.New(er.KindUnknownNetwork, "cannot register a profile with an empty name")
	}
	registry[p.Name] = p
	return nil
}

// Select swaps the process-wide active profile to the named, previously
// registered profile.
func Select(name string) er.R {
	p, ok := registry[name]
	if !ok {
		return er.Errorf(er.KindUnknownNetwork, "unknown network: %v", name)
	}
	active.Store(p)
	return nil
}

// Current returns the process-wide active profile.
func Current() *Params {
	return active.Load().(*Params)
}

// Resolve returns p if non-nil, else the process-wide active profile.
// Entry points that take an optional *Params (txscript.CalcSignatureHash)
// call Resolve exactly once, at the call boundary, rather than caching the
// result or re-reading global state mid-call.
func Resolve(p *Params) *Params {
	if p != nil {
		return p
	}
	return Current()
}

// RequireFamily returns KindProfileMisuse if p is not of the given
// family, e.g. constructing a Blake-family transaction while a legacy
// profile is active.
func RequireFamily(p *Params, want Family) er.R {
	if p.Family != want {
		return er.Errorf(er.KindProfileMisuse,
			"operation requires family %v but active profile %q is %v",
			want, p.Name, p.Family)
	}
	return nil
}
