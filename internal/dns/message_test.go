package dns_test

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sinkdns/internal/dns"
)

func TestMessage_MarshalAndParse_FullResponse(t *testing.T) {
	m := dns.Message{
		Header: dns.Header{ID: 0x1234, Flags: dns.QRFlag | dns.RDFlag | dns.RAFlag},
		Questions: []dns.Question{
			{Name: "foo.com", Type: uint16(dns.TypeA), Class: uint16(dns.ClassIN)},
		},
		Answers: []dns.ResourceRecord{
			{Name: "foo.com", Type: uint16(dns.TypeA), Class: uint16(dns.ClassIN), TTL: 0, Data: []byte{6, 6, 6, 6}},
		},
	}

	raw, err := m.Marshal()
	require.NoError(t, err)

	parsed, err := dns.ParseMessage(raw)
	require.NoError(t, err)

	assert.Equal(t, m.Header.ID, parsed.Header.ID)
	assert.Equal(t, uint16(1), parsed.Header.QDCount, "counts derived from sections")
	assert.Equal(t, uint16(1), parsed.Header.ANCount)
	assert.Equal(t, m.Questions, parsed.Questions)
	assert.Equal(t, m.Answers, parsed.Answers)
	assert.Empty(t, parsed.Authorities)
	assert.Empty(t, parsed.Additionals)
}

func TestMessage_CountsDerivedFromSections(t *testing.T) {
	// A lying Header count is ignored on marshal.
	m := dns.Message{
		Header:    dns.Header{ID: 1, QDCount: 99, ANCount: 99},
		Questions: []dns.Question{{Name: "foo.com", Type: uint16(dns.TypeA), Class: uint16(dns.ClassIN)}},
	}
	raw, err := m.Marshal()
	require.NoError(t, err)

	parsed, err := dns.ParseMessage(raw)
	require.NoError(t, err)
	assert.Equal(t, uint16(1), parsed.Header.QDCount)
	assert.Equal(t, uint16(0), parsed.Header.ANCount)
}

func TestParseMessage_CountExceedsBuffer(t *testing.T) {
	// Header claims one answer but the buffer ends after the question.
	m := dns.Message{
		Header:    dns.Header{ID: 2},
		Questions: []dns.Question{{Name: "foo.com", Type: uint16(dns.TypeA), Class: uint16(dns.ClassIN)}},
	}
	raw, err := m.Marshal()
	require.NoError(t, err)
	raw[7] = 1 // ANCount low byte

	_, err = dns.ParseMessage(raw)
	require.ErrorIs(t, err, dns.ErrMalformed)
}

func TestResourceRecord_MarshalAndParse(t *testing.T) {
	rr := dns.ResourceRecord{
		Name:  "a.example.org",
		Type:  uint16(dns.TypeA),
		Class: uint16(dns.ClassIN),
		TTL:   3600,
		Data:  []byte{192, 0, 2, 1},
	}

	raw, err := rr.Marshal()
	require.NoError(t, err)

	off := 0
	parsed, err := dns.ParseRecord(raw, &off)
	require.NoError(t, err)
	assert.Equal(t, rr, parsed)
	assert.Equal(t, len(raw), off)
}

func TestParseRecord_RDataExceedsBuffer(t *testing.T) {
	rr := dns.ResourceRecord{
		Name:  "foo.com",
		Type:  uint16(dns.TypeA),
		Class: uint16(dns.ClassIN),
		Data:  []byte{6, 6, 6, 6},
	}
	raw, err := rr.Marshal()
	require.NoError(t, err)

	// Cut into the RDATA so the declared RDLENGTH overruns the buffer.
	off := 0
	_, err = dns.ParseRecord(raw[:len(raw)-2], &off)
	require.ErrorIs(t, err, dns.ErrMalformed)

	// And cut inside the fixed fields.
	off = 0
	_, err = dns.ParseRecord(raw[:len(raw)-8], &off)
	require.ErrorIs(t, err, dns.ErrMalformed)
}

func TestResourceRecord_IPv4(t *testing.T) {
	a := dns.ResourceRecord{Type: uint16(dns.TypeA), Data: []byte{6, 6, 6, 6}}
	assert.True(t, a.IPv4().Equal(net.IPv4(6, 6, 6, 6)))

	aaaa := dns.ResourceRecord{Type: uint16(dns.TypeAAAA), Data: make([]byte, 16)}
	assert.Nil(t, aaaa.IPv4())

	short := dns.ResourceRecord{Type: uint16(dns.TypeA), Data: []byte{1, 2}}
	assert.Nil(t, short.IPv4())
}
