package tracing

import (
	"net"
	"os"
)

// MakeEndpoint takes the service name and local address that represent this
// process and returns the endpoint embedded into every span annotation. The
// address is classified as IPv4 or IPv6; an unrecognized address leaves both
// fields absent while the service name is always carried.
func MakeEndpoint(serviceName string, ip net.IP) WireEndpoint {
	endpoint := WireEndpoint{ServiceName: serviceName}
	if ip == nil {
		return endpoint
	}
	if ip4 := ip.To4(); ip4 != nil {
		endpoint.IPv4 = ip4.String()
	} else if ip16 := ip.To16(); ip16 != nil {
		endpoint.IPv6 = ip16.String()
	}
	return endpoint
}

// localIP resolves an address for the local host, preferring IPv4. It
// returns nil when resolution fails; callers tolerate an address-less
// endpoint.
func localIP() net.IP {
	host, err := os.Hostname()
	if err != nil {
		return nil
	}
	addrs, err := net.LookupIP(host)
	if err != nil || len(addrs) == 0 {
		return nil
	}
	for i := range addrs {
		if addr := addrs[i].To4(); addr != nil {
			return addr
		}
	}
	return addrs[0]
}
