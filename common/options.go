package common

import (
	"fmt"
	"strconv"
	"strings"
)

// SAMOptions is the option tree SESSION CREATE/ADD render onto the wire as a
// space-separated key=value suffix (spec §3, §9). Only fields that are
// explicitly set render; everything else is left to the bridge's own
// defaults. Pointer fields distinguish "unset" from the Go zero value.
type SAMOptions struct {
	FromPort      uint16
	ToPort        uint16
	SignatureType SignatureType

	I2CP  I2CPOptions
	Lease LeaseSetOptions
	Crypto CryptoOptions
	Client ClientOptions
}

// I2CPOptions covers the i2cp.* router options and tunnel quantities of §3.
type I2CPOptions struct {
	ClientMessageTimeout *int
	DontPublishLeaseSet  *bool
	FastReceive          *bool
	MessageReliability   string // "None" | "BestEffort", default "None"

	Inbound  TunnelOptions
	Outbound TunnelOptions
}

// TunnelOptions covers the per-direction inbound.*/outbound.* tunnel knobs.
// Priority only applies to the outbound direction; it is ignored when
// rendering an inbound TunnelOptions.
type TunnelOptions struct {
	Length         *int
	LengthVariance *int
	Quantity       *int // valid range [1,16]
	BackupQuantity *int
	AllowZeroHop   *bool
	IPRestriction  *int // [0,255]
	RandomKey      *bool
	Priority       *int // outbound only
}

// LeaseSetOptions covers the i2cp.leaseSet* lease-set configuration fields.
type LeaseSetOptions struct {
	AuthType            *int // {0,1,2}
	EncType             string // comma-separated numeric list, default "4,0"
	OfflineExpiration   string
	OfflineSignature    string
	PrivKey             string
	Secret              string
	TransientPublicKey  string
	Type                *int // {1,3,5,7}
}

// CryptoOptions covers the i2cp.crypto.* ratchet/tag fields.
type CryptoOptions struct {
	LowTagThreshold   *int
	RatchetInboundTags  *int
	RatchetOutboundTags *int
	TagsToSend          *int
}

// ClientEncryptionKind is the per-client lease-set-encryption key kind.
type ClientEncryptionKind string

const (
	ClientEncryptionDH  ClientEncryptionKind = "DH"
	ClientEncryptionPSK ClientEncryptionKind = "PSK"
)

// ClientEncryptionEntry renders one lease_set_client_encryption entry.
type ClientEncryptionEntry struct {
	Kind     ClientEncryptionKind
	Nickname string
	NNN      string
	PSK      string
}

// ClientOptions covers the close_on_idle/encrypt_lease_set client-side knobs.
type ClientOptions struct {
	CloseOnIdle              *bool
	CloseIdleTime            *int
	EncryptLeaseSet          *bool
	LeaseSetClientEncryption []ClientEncryptionEntry
}

// Render produces the space-separated key=value suffix for SESSION
// CREATE/ADD, with no trailing space (spec §9). Rendering twice yields the
// same string (testable property #3): every field is read, never mutated.
func (o SAMOptions) Render() string {
	var parts []string
	appendIfSet := func(s string) {
		if s != "" {
			parts = append(parts, s)
		}
	}

	if o.FromPort != 0 {
		appendIfSet(fmt.Sprintf("FROM_PORT=%d", o.FromPort))
	}
	if o.ToPort != 0 {
		appendIfSet(fmt.Sprintf("TO_PORT=%d", o.ToPort))
	}
	if o.SignatureType != "" {
		appendIfSet(fmt.Sprintf("SIGNATURE_TYPE=%s", o.SignatureType))
	}

	parts = append(parts, o.I2CP.render("inbound", "outbound")...)
	parts = append(parts, o.Lease.render()...)
	parts = append(parts, o.Crypto.render()...)
	parts = append(parts, o.Client.render()...)

	return strings.Join(parts, " ")
}

func (o I2CPOptions) render(inPrefix, outPrefix string) []string {
	var parts []string
	if o.ClientMessageTimeout != nil {
		parts = append(parts, fmt.Sprintf("i2cp.clientMessageTimeout=%d", *o.ClientMessageTimeout))
	}
	if o.DontPublishLeaseSet != nil {
		parts = append(parts, fmt.Sprintf("i2cp.dontPublishLeaseSet=%s", boolStr(*o.DontPublishLeaseSet)))
	}
	if o.FastReceive != nil {
		parts = append(parts, fmt.Sprintf("i2cp.fastReceive=%s", boolStr(*o.FastReceive)))
	}
	if o.MessageReliability != "" {
		parts = append(parts, fmt.Sprintf("i2cp.messageReliability=%s", o.MessageReliability))
	}
	parts = append(parts, o.Inbound.render(inPrefix, false)...)
	parts = append(parts, o.Outbound.render(outPrefix, true)...)
	return parts
}

func (t TunnelOptions) render(prefix string, isOutbound bool) []string {
	var parts []string
	if t.Length != nil {
		parts = append(parts, fmt.Sprintf("%s.length=%d", prefix, *t.Length))
	}
	if t.LengthVariance != nil {
		parts = append(parts, fmt.Sprintf("%s.lengthVariance=%d", prefix, *t.LengthVariance))
	}
	if t.Quantity != nil {
		parts = append(parts, fmt.Sprintf("%s.quantity=%d", prefix, *t.Quantity))
	}
	if t.BackupQuantity != nil {
		parts = append(parts, fmt.Sprintf("%s.backupQuantity=%d", prefix, *t.BackupQuantity))
	}
	if t.AllowZeroHop != nil {
		parts = append(parts, fmt.Sprintf("%s.allowZeroHop=%s", prefix, boolStr(*t.AllowZeroHop)))
	}
	if t.IPRestriction != nil {
		parts = append(parts, fmt.Sprintf("%s.IPRestriction=%d", prefix, *t.IPRestriction))
	}
	if t.RandomKey != nil {
		parts = append(parts, fmt.Sprintf("%s.randomKey=%s", prefix, boolStr(*t.RandomKey)))
	}
	if isOutbound && t.Priority != nil {
		parts = append(parts, fmt.Sprintf("%s.priority=%d", prefix, *t.Priority))
	}
	return parts
}

func (l LeaseSetOptions) render() []string {
	var parts []string
	if l.AuthType != nil {
		parts = append(parts, fmt.Sprintf("i2cp.leaseSetAuthType=%d", *l.AuthType))
	}
	if l.EncType != "" {
		parts = append(parts, fmt.Sprintf("i2cp.leaseSetEncType=%s", l.EncType))
	}
	if l.OfflineExpiration != "" {
		parts = append(parts, fmt.Sprintf("i2cp.leaseSetOfflineExpiration=%s", l.OfflineExpiration))
	}
	if l.OfflineSignature != "" {
		parts = append(parts, fmt.Sprintf("i2cp.leaseSetOfflineSignature=%s", l.OfflineSignature))
	}
	if l.PrivKey != "" {
		parts = append(parts, fmt.Sprintf("i2cp.leaseSetPrivKey=%s", l.PrivKey))
	}
	if l.Secret != "" {
		parts = append(parts, fmt.Sprintf("i2cp.leaseSetSecret=%s", l.Secret))
	}
	if l.TransientPublicKey != "" {
		parts = append(parts, fmt.Sprintf("i2cp.leaseSetTransientPublicKey=%s", l.TransientPublicKey))
	}
	if l.Type != nil {
		parts = append(parts, fmt.Sprintf("i2cp.leaseSetType=%d", *l.Type))
	}
	return parts
}

func (c CryptoOptions) render() []string {
	var parts []string
	if c.LowTagThreshold != nil {
		parts = append(parts, fmt.Sprintf("i2cp.crypto.lowTagThreshold=%d", *c.LowTagThreshold))
	}
	if c.RatchetInboundTags != nil {
		parts = append(parts, fmt.Sprintf("i2cp.crypto.ratchet.inboundTags=%d", *c.RatchetInboundTags))
	}
	if c.RatchetOutboundTags != nil {
		parts = append(parts, fmt.Sprintf("i2cp.crypto.ratchet.outboundTags=%d", *c.RatchetOutboundTags))
	}
	if c.TagsToSend != nil {
		parts = append(parts, fmt.Sprintf("i2cp.crypto.tagsToSend=%d", *c.TagsToSend))
	}
	return parts
}

func (c ClientOptions) render() []string {
	var parts []string
	if c.CloseOnIdle != nil {
		parts = append(parts, fmt.Sprintf("close_on_idle=%s", boolStr(*c.CloseOnIdle)))
	}
	if c.CloseIdleTime != nil {
		parts = append(parts, fmt.Sprintf("close_idle_time=%d", *c.CloseIdleTime))
	}
	if c.EncryptLeaseSet != nil {
		parts = append(parts, fmt.Sprintf("encrypt_lease_set=%s", boolStr(*c.EncryptLeaseSet)))
	}
	for _, e := range c.LeaseSetClientEncryption {
		parts = append(parts, renderClientEncryption(e))
	}
	return parts
}

func renderClientEncryption(e ClientEncryptionEntry) string {
	var sb strings.Builder
	sb.WriteString("lease_set_client_encryption=")
	sb.WriteString(string(e.Kind))
	if e.Nickname != "" {
		sb.WriteString(":")
		sb.WriteString(e.Nickname)
	}
	if e.NNN != "" {
		sb.WriteString(":")
		sb.WriteString(e.NNN)
	}
	if e.PSK != "" {
		sb.WriteString(":")
		sb.WriteString(e.PSK)
	}
	return sb.String()
}

func boolStr(b bool) string { return strconv.FormatBool(b) }

// IntPtr and BoolPtr are small helpers for populating the *int/*bool fields
// above from literals, e.g. common.LeaseSetOptions{Type: common.IntPtr(3)}.
func IntPtr(v int) *int   { return &v }
func BoolPtr(v bool) *bool { return &v }

// DefaultOptions returns the zero-value option tree: every field unset, so
// Render() emits only FROM_PORT/TO_PORT/SIGNATURE_TYPE when the caller set
// them directly. Matches the "Options idempotence" testable property: two
// renders of DefaultOptions() always produce "".
func DefaultOptions() SAMOptions {
	return SAMOptions{}
}
