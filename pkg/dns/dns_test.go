package dns

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/miekg/dns"
)

// startServer runs a DNS server on a random local port, answering
// ok.test with two A records, empty.test with a NOERROR empty answer,
// and anything else with NXDOMAIN.
func startServer(t *testing.T) string {
	t.Helper()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("ListenPacket failed: %v", err)
	}

	mux := dns.NewServeMux()
	mux.HandleFunc(".", func(w dns.ResponseWriter, req *dns.Msg) {
		m := new(dns.Msg)
		m.SetReply(req)
		switch req.Question[0].Name {
		case "ok.test.":
			for _, ip := range []string{"192.0.2.1", "192.0.2.2"} {
				m.Answer = append(m.Answer, &dns.A{
					Hdr: dns.RR_Header{
						Name:   req.Question[0].Name,
						Rrtype: dns.TypeA,
						Class:  dns.ClassINET,
						Ttl:    60,
					},
					A: net.ParseIP(ip),
				})
			}
		case "empty.test.":
			// NOERROR with no answers.
		default:
			m.Rcode = dns.RcodeNameError
		}
		w.WriteMsg(m)
	})

	server := &dns.Server{PacketConn: pc, Handler: mux}
	go server.ActivateAndServe()
	t.Cleanup(func() { server.Shutdown() })

	return pc.LocalAddr().String()
}

func testResolver(addr string) *Resolver {
	return &Resolver{
		servers: []string{addr},
		client:  &dns.Client{Timeout: time.Second},
	}
}

func TestLookupA(t *testing.T) {
	r := testResolver(startServer(t))

	ips, err := r.LookupA(context.Background(), "ok.test")
	if err != nil {
		t.Fatalf("LookupA failed: %v", err)
	}
	if len(ips) != 2 || ips[0] != "192.0.2.1" || ips[1] != "192.0.2.2" {
		t.Errorf("LookupA = %v, want answer order preserved", ips)
	}
}

func TestLookupAEmptyAnswer(t *testing.T) {
	r := testResolver(startServer(t))

	_, err := r.LookupA(context.Background(), "empty.test")
	if !errors.Is(err, ErrNoAddresses) {
		t.Errorf("LookupA error = %v, want ErrNoAddresses", err)
	}
}

func TestLookupANXDomain(t *testing.T) {
	r := testResolver(startServer(t))

	_, err := r.LookupA(context.Background(), "missing.test")
	if err == nil {
		t.Fatal("LookupA succeeded on NXDOMAIN, want error")
	}
}

func TestLookupACancelledContext(t *testing.T) {
	r := testResolver(startServer(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.LookupA(ctx, "ok.test"); err == nil {
		t.Fatal("LookupA succeeded with cancelled context, want error")
	}
}
