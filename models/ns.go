package models

import (
	"github.com/gobuffalo/nulls"
	"github.com/miekg/dns"
)

type NsRecord struct {
	Zone string
	Name string
	Ttl  nulls.UInt32
}

func (n NsRecord) RR(defaultTtl uint32) dns.RR {
	return &dns.NS{
		Hdr: dns.RR_Header{
			Name:   dns.Fqdn(n.Zone),
			Rrtype: dns.TypeNS,
			Class:  dns.ClassINET,
			Ttl:    recordTtl(n.Ttl, defaultTtl),
		},
		Ns: n.Name,
	}
}
