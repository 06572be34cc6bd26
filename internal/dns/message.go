package dns

import (
	"fmt"

	"sinkdns/internal/helpers"
)

// Message represents a complete DNS message (RFC 1035 Section 4.1): header,
// question section, and the three record sections.
//
// The server path never builds a Message; the responder works on Query and
// BuildResponse directly. Message is the general-purpose codec used by the
// client tools (dnsquery, bench) to construct queries and decode the
// sinkhole's answers, and by tests to assert on full responses.
type Message struct {
	Header      Header
	Questions   []Question
	Answers     []ResourceRecord
	Authorities []ResourceRecord
	Additionals []ResourceRecord
}

// Marshal serializes the message to DNS wire format (big-endian). The
// section counts in the emitted header are derived from the actual section
// lengths, not from the Header field.
func (m Message) Marshal() ([]byte, error) {
	h := Header{
		ID:      m.Header.ID,
		Flags:   m.Header.Flags,
		QDCount: helpers.ClampIntToUint16(len(m.Questions)),
		ANCount: helpers.ClampIntToUint16(len(m.Answers)),
		NSCount: helpers.ClampIntToUint16(len(m.Authorities)),
		ARCount: helpers.ClampIntToUint16(len(m.Additionals)),
	}

	// Estimate capacity: header(12) + question(~50) + records(~100 each)
	estimatedSize := HeaderSize + len(m.Questions)*50 +
		(len(m.Answers)+len(m.Authorities)+len(m.Additionals))*100
	out := make([]byte, 0, estimatedSize)
	out = append(out, h.Marshal()...)

	for _, q := range m.Questions {
		qb, err := q.Marshal()
		if err != nil {
			return nil, err
		}
		out = append(out, qb...)
	}

	if err := appendRecords(&out, m.Answers); err != nil {
		return nil, err
	}
	if err := appendRecords(&out, m.Authorities); err != nil {
		return nil, err
	}
	if err := appendRecords(&out, m.Additionals); err != nil {
		return nil, err
	}
	return out, nil
}

// appendRecords marshals and appends records to the output buffer.
func appendRecords(out *[]byte, records []ResourceRecord) error {
	for _, rr := range records {
		b, err := rr.Marshal()
		if err != nil {
			return err
		}
		*out = append(*out, b...)
	}
	return nil
}

// maxRRPerSection caps the initial allocation per record section so a
// header declaring huge counts in a tiny packet cannot force a large alloc.
const maxRRPerSection = 64

// ParseMessage parses a complete DNS message from wire format.
func ParseMessage(msg []byte) (Message, error) {
	off := 0
	h, err := ParseHeader(msg, &off)
	if err != nil {
		return Message{}, err
	}

	m := Message{Header: h}
	m.Questions = make([]Question, 0, min(int(h.QDCount), 8))
	for i := uint16(0); i < h.QDCount; i++ {
		q, err := ParseQuestion(msg, &off)
		if err != nil {
			return Message{}, err
		}
		m.Questions = append(m.Questions, q)
	}
	if m.Answers, err = parseRecordSection(msg, &off, h.ANCount); err != nil {
		return Message{}, fmt.Errorf("answer section: %w", err)
	}
	if m.Authorities, err = parseRecordSection(msg, &off, h.NSCount); err != nil {
		return Message{}, fmt.Errorf("authority section: %w", err)
	}
	if m.Additionals, err = parseRecordSection(msg, &off, h.ARCount); err != nil {
		return Message{}, fmt.Errorf("additional section: %w", err)
	}
	return m, nil
}

func parseRecordSection(msg []byte, off *int, count uint16) ([]ResourceRecord, error) {
	if count == 0 {
		return nil, nil
	}
	records := make([]ResourceRecord, 0, min(int(count), maxRRPerSection))
	for i := uint16(0); i < count; i++ {
		rr, err := ParseRecord(msg, off)
		if err != nil {
			return nil, err
		}
		records = append(records, rr)
	}
	return records, nil
}
