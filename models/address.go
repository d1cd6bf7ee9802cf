package models

import (
	"net"
	"net/netip"

	"github.com/gobuffalo/nulls"
	"github.com/miekg/dns"
)

// AddressRecord is a forward A or AAAA record. The address family decides
// which of the two it renders as.
type AddressRecord struct {
	Name string
	Addr netip.Addr
	Ttl  nulls.UInt32
}

func (a AddressRecord) Type() uint16 {
	if a.Addr.Is4() {
		return dns.TypeA
	}
	return dns.TypeAAAA
}

func (a AddressRecord) RR(defaultTtl uint32) dns.RR {
	header := dns.RR_Header{
		Name:   a.Name,
		Rrtype: a.Type(),
		Class:  dns.ClassINET,
		Ttl:    recordTtl(a.Ttl, defaultTtl),
	}
	if a.Addr.Is4() {
		return &dns.A{Hdr: header, A: net.IP(a.Addr.AsSlice())}
	}
	return &dns.AAAA{Hdr: header, AAAA: net.IP(a.Addr.AsSlice())}
}
