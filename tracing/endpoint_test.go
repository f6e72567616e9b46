package tracing

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeEndpointIPv4(t *testing.T) {
	ep := MakeEndpoint("svc", net.ParseIP("192.168.1.12"))
	assert.Equal(t, "svc", ep.ServiceName)
	assert.Equal(t, "192.168.1.12", ep.IPv4)
	assert.Empty(t, ep.IPv6)
}

func TestMakeEndpointIPv6(t *testing.T) {
	ep := MakeEndpoint("svc", net.ParseIP("2001:db8::68"))
	assert.Equal(t, "svc", ep.ServiceName)
	assert.Empty(t, ep.IPv4)
	assert.Equal(t, "2001:db8::68", ep.IPv6)
}

func TestMakeEndpointNoAddress(t *testing.T) {
	for _, ip := range []net.IP{nil, net.IP([]byte{1, 2, 3})} {
		ep := MakeEndpoint("svc", ip)
		assert.Equal(t, "svc", ep.ServiceName)
		assert.Empty(t, ep.IPv4)
		assert.Empty(t, ep.IPv6)
	}
}

func TestMakeEndpointExclusivity(t *testing.T) {
	addrs := []string{"127.0.0.1", "10.1.2.3", "::1", "2001:db8::68", "fe80::1"}
	for _, addr := range addrs {
		ep := MakeEndpoint("svc", net.ParseIP(addr))
		if ep.IPv4 != "" && ep.IPv6 != "" {
			t.Errorf("endpoint for %s has both ipv4 %q and ipv6 %q", addr, ep.IPv4, ep.IPv6)
		}
		if ep.ServiceName == "" {
			t.Errorf("endpoint for %s lost its service name", addr)
		}
	}
}
