// dnsquery builds a DNS query, sends it over UDP, and prints the parsed
// answer. Point it at a running sinkhole to see the fixed address come back
// for any name.
package main

import (
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"net"
	"os"
	"strings"
	"time"

	"sinkdns/internal/dns"
)

func main() {
	var (
		server   = flag.String("server", "127.0.0.1:53", "DNS server HOST:PORT")
		name     = flag.String("name", "foo.com", "Query name")
		qtype    = flag.Int("qtype", 1, "Query type (numeric, A=1)")
		timeout  = flag.Duration("timeout", 2*time.Second, "Timeout")
		recvSize = flag.Int("recv-size", 2048, "UDP receive buffer size")
		quiet    = flag.Bool("quiet", false, "Suppress output (exit status indicates success)")
	)
	flag.Parse()

	resp, err := queryUDP(*server, *name, uint16(*qtype), *timeout, *recvSize)
	if err != nil {
		if !*quiet {
			fmt.Fprintf(os.Stderr, "dnsquery error: %v\n", err)
		}
		os.Exit(1)
	}
	if *quiet {
		return
	}

	m, err := dns.ParseMessage(resp)
	if err != nil {
		fmt.Printf("received %d bytes (unparseable: %v)\n", len(resp), err)
		return
	}

	fmt.Printf("id=%d rcode=%d answers=%d authorities=%d additionals=%d\n",
		m.Header.ID,
		dns.RCodeFromFlags(m.Header.Flags),
		len(m.Answers),
		len(m.Authorities),
		len(m.Additionals),
	)
	for _, rr := range m.Answers {
		fmt.Println(formatRR(rr))
	}
}

func queryUDP(server, name string, qtype uint16, timeout time.Duration, recvSize int) ([]byte, error) {
	addr, err := net.ResolveUDPAddr("udp", server)
	if err != nil {
		return nil, err
	}
	c, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	reqBytes, err := buildQuery(name, qtype)
	if err != nil {
		return nil, err
	}
	_ = c.SetDeadline(time.Now().Add(timeout))
	if _, err := c.Write(reqBytes); err != nil {
		return nil, err
	}
	buf := make([]byte, recvSize)
	n, err := c.Read(buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

func buildQuery(name string, qtype uint16) ([]byte, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("name required")
	}
	m := dns.Message{
		Header: dns.Header{ID: uint16(rand.Uint32()), Flags: dns.RDFlag},
		Questions: []dns.Question{
			{Name: strings.TrimSuffix(name, "."), Type: qtype, Class: uint16(dns.ClassIN)},
		},
	}
	return m.Marshal()
}

func formatRR(rr dns.ResourceRecord) string {
	name := rr.Name
	if name == "" {
		name = "."
	}
	switch dns.RecordType(rr.Type) {
	case dns.TypeA:
		if ip := rr.IPv4(); ip != nil {
			return fmt.Sprintf("%s %d IN A %s", name, rr.TTL, ip.String())
		}
	case dns.TypeAAAA:
		if len(rr.Data) == 16 {
			return fmt.Sprintf("%s %d IN AAAA %s", name, rr.TTL, net.IP(rr.Data).String())
		}
	}
	return fmt.Sprintf("%s %d IN TYPE%d (%d bytes rdata)", name, rr.TTL, rr.Type, len(rr.Data))
}
