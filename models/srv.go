package models

import (
	"github.com/gobuffalo/nulls"
	"github.com/miekg/dns"
)

// SrvRecord is a service location record. Service is the fully qualified
// service label (for example "_sip._tcp.example."), Name the target host.
type SrvRecord struct {
	Name    string
	Service string
	Prio    uint16
	Weight  uint16
	Port    uint16
	Ttl     nulls.UInt32
}

func (srv SrvRecord) RR(defaultTtl uint32) dns.RR {
	return &dns.SRV{
		Hdr: dns.RR_Header{
			Name:   srv.Service,
			Rrtype: dns.TypeSRV,
			Class:  dns.ClassINET,
			Ttl:    recordTtl(srv.Ttl, defaultTtl),
		},
		Priority: srv.Prio,
		Weight:   srv.Weight,
		Port:     srv.Port,
		Target:   srv.Name,
	}
}
