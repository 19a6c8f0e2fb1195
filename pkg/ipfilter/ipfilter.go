package ipfilter

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
)

type IPFilter interface {
	// Add adds the network to the filter if it wasn't already present.
	Add(n *net.IPNet)
	// Remove removes the network from the filter if it was present.
	Remove(n *net.IPNet)
	IsAllowed(ip net.IP) bool
}

type Mode byte

const (
	ModeAllow Mode = iota
	ModeDeny
)

type ipFilter struct {
	mu sync.RWMutex
	// Maps the network in CIDR notation to the network
	nets map[string]*net.IPNet
	mode Mode
}

func New(mode Mode) IPFilter {
	return &ipFilter{
		nets: map[string]*net.IPNet{},
		mode: mode,
	}
}

// Parse returns a filter with the given entries. An entry is either a single IP or a network in
// CIDR notation.
func Parse(mode Mode, entries []string) (IPFilter, error) {
	f := New(mode)
	for _, e := range entries {
		n, err := parseEntry(e)
		if err != nil {
			return nil, err
		}
		f.Add(n)
	}
	return f, nil
}

func parseEntry(e string) (*net.IPNet, error) {
	if strings.Contains(e, "/") {
		_, n, err := net.ParseCIDR(e)
		return n, err
	}

	ip := net.ParseIP(e)
	if ip == nil {
		return nil, fmt.Errorf("invalid ip %q", e)
	}

	bits := 8 * net.IPv6len
	if ip4 := ip.To4(); ip4 != nil {
		ip = ip4
		bits = 8 * net.IPv4len
	}
	return &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)}, nil
}

func (f *ipFilter) Add(n *net.IPNet) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nets[n.String()] = n
}

func (f *ipFilter) Remove(n *net.IPNet) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.nets, n.String())
}

func (f *ipFilter) contains(ip net.IP) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, n := range f.nets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

func (f *ipFilter) IsAllowed(ip net.IP) bool {
	ok := f.contains(ip)
	switch f.mode {
	case ModeAllow:
		return ok
	case ModeDeny:
		return !ok
	}
	return false
}

// Middleware rejects requests from remote addresses that the filter does not allow.
// It expects r.RemoteAddr to be in host:port form or a bare IP.
func Middleware(f IPFilter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr
			}

			ip := net.ParseIP(host)
			if ip == nil || !f.IsAllowed(ip) {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
