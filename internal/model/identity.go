package model

// AddressKind classifies how a raw chat address encodes the sender.
type AddressKind string

const (
	// AddressStandard directly encodes a phone number with a fixed suffix.
	AddressStandard AddressKind = "standard"
	// AddressAnonymized is a platform-internal identifier that does not
	// encode the phone number.
	AddressAnonymized AddressKind = "anonymized"
)

// SenderIdentity is the resolved identity of one inbound message's sender.
// CanonicalKey is the join key to the account store and must be stable
// across every message the same real-world sender ever sends.
type SenderIdentity struct {
	RawAddress   string
	CanonicalKey string
	DisplayLabel string
	Kind         AddressKind
}

// ContactHint asks the caller to cache a newly discovered mapping from an
// anonymized address to a real phone number. The resolver itself never
// writes the cache.
type ContactHint struct {
	OpaqueAddress string
	PhoneNumber   string
}
