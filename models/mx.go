package models

import (
	"github.com/gobuffalo/nulls"
	"github.com/miekg/dns"
)

type MxRecord struct {
	Zone string
	Name string
	Prio uint16
	Ttl  nulls.UInt32
}

func (mx MxRecord) RR(defaultTtl uint32) dns.RR {
	return &dns.MX{
		Hdr: dns.RR_Header{
			Name:   dns.Fqdn(mx.Zone),
			Rrtype: dns.TypeMX,
			Class:  dns.ClassINET,
			Ttl:    recordTtl(mx.Ttl, defaultTtl),
		},
		Preference: mx.Prio,
		Mx:         mx.Name,
	}
}
