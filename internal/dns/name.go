package dns

import (
	"fmt"
	"strings"
)

// Name encoding limits (RFC 1035 Section 3.1).
const (
	MaxLabelLength = 63  // Maximum bytes per label
	MaxNameLength  = 255 // Maximum bytes for a full encoded name
)

// EncodeName encodes a domain name to DNS wire format (RFC 1035 Section 3.1).
//
// DNS names are encoded as a sequence of labels, where each label is:
//   - 1 byte: length (1-63)
//   - N bytes: label characters
//
// The name is terminated by a zero-length label (single 0x00 byte).
//
// Example: "www.example.com" encodes as:
//
//	[3]www[7]example[3]com[0]
//	0x03 'w' 'w' 'w' 0x07 'e' 'x' 'a' 'm' 'p' 'l' 'e' 0x03 'c' 'o' 'm' 0x00
//
// Case is preserved: "FOO.com" and "foo.com" encode to different bytes, and
// decoding either recovers the original spelling. This matters because
// clients validate that the echoed question matches what they sent.
func EncodeName(domain string) ([]byte, error) {
	domain = trimDot(domain)
	if domain == "" {
		return []byte{0}, nil // Root domain
	}

	out := make([]byte, 0, len(domain)+2)
	labelStart := 0
	for i := 0; i <= len(domain); i++ {
		if i == len(domain) || domain[i] == '.' {
			if i == labelStart {
				return nil, fmt.Errorf("%w: empty label in domain name %q", ErrMalformed, domain)
			}
			label := domain[labelStart:i]
			if len(label) > MaxLabelLength {
				return nil, fmt.Errorf("%w: label too long (%d > %d): %q", ErrMalformed, len(label), MaxLabelLength, label)
			}
			out = append(out, byte(len(label)))
			out = append(out, label...)
			labelStart = i + 1
		}
	}
	out = append(out, 0) // Terminating zero-length label

	if len(out) > MaxNameLength {
		return nil, fmt.Errorf("%w: encoded domain name too long (%d > %d)", ErrMalformed, len(out), MaxNameLength)
	}
	return out, nil
}

// DecodeName decodes a domain name from DNS wire format.
//
// It reads label-length octets starting at *off: a zero octet terminates the
// name, any other value is the length of the label bytes that follow. Every
// declared length is validated against the remaining buffer before it is
// trusted. *off is advanced past the encoded name on success.
//
// Message-compression pointers (length octets with the two high bits set,
// RFC 1035 Section 4.1.4) are rejected with ErrMalformed. The sinkhole only
// ever reads the single inbound question, which stub resolvers send
// uncompressed, and refusing pointers keeps the decoder free of offset
// chasing on attacker-controlled input.
//
// Returns the dot-separated name with its original case.
func DecodeName(msg []byte, off *int) (string, error) {
	labels := make([]string, 0, 6)
	encodedLen := 0
	for {
		if *off >= len(msg) {
			return "", fmt.Errorf("%w: unexpected EOF while decoding name", ErrMalformed)
		}
		labelLen := int(msg[*off])
		*off++

		// Zero-length label marks end of name
		if labelLen == 0 {
			break
		}

		// Two high bits set = compression pointer, other non-zero high-bit
		// patterns are reserved. Neither is accepted here.
		if labelLen&0xC0 == 0xC0 {
			return "", fmt.Errorf("%w: compression pointer in name", ErrMalformed)
		}
		if labelLen&0xC0 != 0 {
			return "", fmt.Errorf("%w: reserved label type 0x%02x", ErrMalformed, labelLen&0xC0)
		}

		if *off+labelLen > len(msg) {
			return "", fmt.Errorf("%w: label length %d exceeds remaining buffer", ErrMalformed, labelLen)
		}
		encodedLen += labelLen + 1
		if encodedLen+1 > MaxNameLength {
			return "", fmt.Errorf("%w: encoded name exceeds %d bytes", ErrMalformed, MaxNameLength)
		}
		labels = append(labels, string(msg[*off:*off+labelLen]))
		*off += labelLen
	}

	return strings.Join(labels, "."), nil
}

// trimDot removes all trailing dots from a string.
func trimDot(s string) string {
	for len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}
