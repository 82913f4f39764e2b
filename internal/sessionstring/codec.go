// Package sessionstring encodes MTProto sessions as Telethon-compatible
// StringSession values, so the string written to .env can be loaded by
// either a Go or a Python client.
//
// Layout after the version character, URL-safe base64 with padding:
//
//	dc_id (1 byte) | ip (4 or 16 bytes) | port (uint16 BE) | auth_key (256 bytes)
package sessionstring

import (
	"crypto/sha1" //nolint:gosec // MTProto defines auth key IDs with SHA-1.
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"strconv"
)

// Version is the only supported string session version.
const Version = '1'

// AuthKeySize is the MTProto auth key length in bytes.
const AuthKeySize = 256

// ipv4BodyLen is the base64 body length of a session with an IPv4 address.
const ipv4BodyLen = 352

var (
	// ErrUnsupportedVersion indicates the leading version character is unknown.
	ErrUnsupportedVersion = errors.New("unsupported session string version")

	// ErrMalformed indicates the session string cannot be decoded.
	ErrMalformed = errors.New("malformed session string")
)

// Session is the data carried by a string session.
type Session struct {
	// DC is the data center the auth key belongs to.
	DC int

	// Addr is the data center address as "ip:port".
	Addr string

	// AuthKey is the 256-byte MTProto auth key.
	AuthKey []byte
}

// AuthKeyID returns the low 64 bits of SHA-1(auth key), as MTProto defines it.
func (s Session) AuthKeyID() []byte {
	sum := sha1.Sum(s.AuthKey) //nolint:gosec // protocol-defined
	id := make([]byte, 8)
	copy(id, sum[12:20])
	return id
}

// Encode serialises s into a string session.
func Encode(s Session) (string, error) {
	if s.DC <= 0 || s.DC > 255 {
		return "", fmt.Errorf("%w: dc %d out of range", ErrMalformed, s.DC)
	}
	if len(s.AuthKey) != AuthKeySize {
		return "", fmt.Errorf("%w: auth key is %d bytes", ErrMalformed, len(s.AuthKey))
	}

	addrPort, err := netip.ParseAddrPort(s.Addr)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	addr := addrPort.Addr().Unmap()
	ip := addr.AsSlice()

	buf := make([]byte, 0, 1+len(ip)+2+AuthKeySize)
	buf = append(buf, byte(s.DC))
	buf = append(buf, ip...)
	buf = binary.BigEndian.AppendUint16(buf, addrPort.Port())
	buf = append(buf, s.AuthKey...)

	return string(Version) + base64.URLEncoding.EncodeToString(buf), nil
}

// Decode parses a string session produced by Encode or by Telethon.
func Decode(str string) (Session, error) {
	if str == "" {
		return Session{}, fmt.Errorf("%w: empty", ErrMalformed)
	}
	if str[0] != Version {
		return Session{}, fmt.Errorf("%w: %q", ErrUnsupportedVersion, str[0])
	}

	body := str[1:]
	ipLen := net.IPv6len
	if len(body) == ipv4BodyLen {
		ipLen = net.IPv4len
	}

	raw, err := base64.URLEncoding.DecodeString(body)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(raw) != 1+ipLen+2+AuthKeySize {
		return Session{}, fmt.Errorf("%w: %d bytes", ErrMalformed, len(raw))
	}

	ip, ok := netip.AddrFromSlice(raw[1 : 1+ipLen])
	if !ok {
		return Session{}, fmt.Errorf("%w: bad address", ErrMalformed)
	}
	port := binary.BigEndian.Uint16(raw[1+ipLen : 3+ipLen])

	key := make([]byte, AuthKeySize)
	copy(key, raw[3+ipLen:])

	return Session{
		DC:      int(raw[0]),
		Addr:    net.JoinHostPort(ip.String(), strconv.Itoa(int(port))),
		AuthKey: key,
	}, nil
}
