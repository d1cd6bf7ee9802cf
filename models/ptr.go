package models

import (
	"net/netip"

	"github.com/gobuffalo/nulls"
	"github.com/miekg/dns"
)

// PtrRecord is the reverse mapping from an address back to its owning host.
// The address is the lookup key, the name the fully qualified target.
type PtrRecord struct {
	Name string
	Addr netip.Addr
	Ttl  nulls.UInt32
}

func (p PtrRecord) RR(defaultTtl uint32) dns.RR {
	rev, err := dns.ReverseAddr(p.Addr.String())
	if err != nil {
		// unreachable: the address was parsed during classification
		rev = p.Addr.String()
	}
	return &dns.PTR{
		Hdr: dns.RR_Header{
			Name:   rev,
			Rrtype: dns.TypePTR,
			Class:  dns.ClassINET,
			Ttl:    recordTtl(p.Ttl, defaultTtl),
		},
		Ptr: p.Name,
	}
}
