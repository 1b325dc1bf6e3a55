package transport

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/require"

	"github.com/dnsscience/dnskit/internal/wire"
)

// TestDNSClientExchangeAgainstMockServer spins up a local miekg/dns UDP
// server and confirms the wire codec round-trips against a real
// implementation of the protocol, not just itself.
func TestDNSClientExchangeAgainstMockServer(t *testing.T) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer pc.Close()

	mux := dns.NewServeMux()
	mux.HandleFunc("www.example.com.", func(w dns.ResponseWriter, r *dns.Msg) {
		m := new(dns.Msg)
		m.SetReply(r)
		m.Answer = append(m.Answer, &dns.A{
			Hdr: dns.RR_Header{Name: "www.example.com.", Rrtype: dns.TypeA, Class: dns.ClassINET, Ttl: 60},
			A:   net.IPv4(192, 0, 2, 1),
		})
		require.NoError(t, w.WriteMsg(m))
	})

	server := &dns.Server{PacketConn: pc, Handler: mux}
	go server.ActivateAndServe()
	defer server.Shutdown()
	time.Sleep(50 * time.Millisecond)

	query, err := wire.NewQuery("www.example.com.", wire.TypeA)
	require.NoError(t, err)
	encoded, err := query.Encode(wire.EncodeOptions{})
	require.NoError(t, err)

	client := NewDNSClient(pc.LocalAddr().String(), false, 2*time.Second)
	raw, err := client.Exchange(context.Background(), encoded)
	require.NoError(t, err)

	reply, err := wire.Decode(raw)
	require.NoError(t, err)
	require.Len(t, reply.Answers, 1)
	a, ok := reply.Answers[0].RData.(*wire.ARecord)
	require.True(t, ok, "answer RData = %T, want *wire.ARecord", reply.Answers[0].RData)
	require.Equal(t, net.IPv4(192, 0, 2, 1).To4(), a.Address.To4())
}
