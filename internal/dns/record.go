package dns

import (
	"encoding/binary"
	"fmt"
	"net"

	"sinkdns/internal/helpers"
)

// ResourceRecord is a DNS resource record (RFC 1035 Section 4.1.3). The
// sinkhole only ever emits A records, so a single concrete struct with
// opaque RDATA covers everything the client tools and tests need.
type ResourceRecord struct {
	Name  string
	Type  uint16
	Class uint16
	TTL   uint32
	Data  []byte // raw RDATA bytes
}

// IPv4 returns the record's address when it is a 4-byte A record, else nil.
func (rr ResourceRecord) IPv4() net.IP {
	if RecordType(rr.Type) == TypeA && len(rr.Data) == 4 {
		return net.IP(rr.Data)
	}
	return nil
}

// Marshal serializes the record to wire format.
func (rr ResourceRecord) Marshal() ([]byte, error) {
	nameWire, err := EncodeName(rr.Name)
	if err != nil {
		return nil, err
	}
	if len(rr.Data) > 65535 {
		return nil, fmt.Errorf("%w: rdata too large (%d bytes)", ErrMalformed, len(rr.Data))
	}
	out := make([]byte, 0, len(nameWire)+10+len(rr.Data))
	out = append(out, nameWire...)
	fixed := make([]byte, 10)
	binary.BigEndian.PutUint16(fixed[0:2], rr.Type)
	binary.BigEndian.PutUint16(fixed[2:4], rr.Class)
	binary.BigEndian.PutUint32(fixed[4:8], rr.TTL)
	binary.BigEndian.PutUint16(fixed[8:10], helpers.ClampIntToUint16(len(rr.Data)))
	out = append(out, fixed...)
	out = append(out, rr.Data...)
	return out, nil
}

// ParseRecord parses a resource record from the message at the given offset.
// It advances *off past the parsed record on success. The declared RDLENGTH
// is validated against the remaining buffer before any RDATA is read.
func ParseRecord(msg []byte, off *int) (ResourceRecord, error) {
	name, err := DecodeName(msg, off)
	if err != nil {
		return ResourceRecord{}, err
	}
	if *off+10 > len(msg) {
		return ResourceRecord{}, fmt.Errorf("%w: unexpected EOF while reading record", ErrMalformed)
	}
	rr := ResourceRecord{
		Name:  name,
		Type:  binary.BigEndian.Uint16(msg[*off : *off+2]),
		Class: binary.BigEndian.Uint16(msg[*off+2 : *off+4]),
		TTL:   binary.BigEndian.Uint32(msg[*off+4 : *off+8]),
	}
	rdlen := int(binary.BigEndian.Uint16(msg[*off+8 : *off+10]))
	*off += 10
	if *off+rdlen > len(msg) {
		return ResourceRecord{}, fmt.Errorf("%w: rdata length %d exceeds remaining buffer", ErrMalformed, rdlen)
	}
	rr.Data = append([]byte(nil), msg[*off:*off+rdlen]...)
	*off += rdlen
	return rr, nil
}
