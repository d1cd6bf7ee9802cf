package models

import "github.com/miekg/dns"

// Zone is one DNS domain and its full derived record set. The authority
// fields are fixed at construction; the record lists are appended to during
// normalization and ordered for output.
type Zone struct {
	Name    string
	Email   string
	Serial  uint32
	Refresh uint32
	Retry   uint32
	Expire  uint32
	NrcTtl  uint32
	Ttl     uint32

	A   []AddressRecord
	Ptr []PtrRecord
	Ns  []NsRecord
	Mx  []MxRecord
	Srv []SrvRecord
}

// Fqdn returns the zone apex with its trailing dot.
func (z *Zone) Fqdn() string {
	return dns.Fqdn(z.Name)
}

// SOA assembles the zone's SOA record. The primary nameserver is the first
// declared NS record.
func (z *Zone) SOA() SOA {
	return SOA{
		Zone:    z.Name,
		Ns:      z.Ns[0].Name,
		Mbox:    z.Email,
		Serial:  z.Serial,
		Refresh: z.Refresh,
		Retry:   z.Retry,
		Expire:  z.Expire,
		Minttl:  z.NrcTtl,
	}
}

// Records returns every record of the zone as resource records in canonical
// output order: SOA, NS, MX, A/AAAA, SRV, PTR.
func (z *Zone) Records() []dns.RR {
	out := make([]dns.RR, 0, 1+len(z.Ns)+len(z.Mx)+len(z.A)+len(z.Srv)+len(z.Ptr))
	out = append(out, z.SOA().RR(z.Ttl))
	for _, r := range z.Ns {
		out = append(out, r.RR(z.Ttl))
	}
	for _, r := range z.Mx {
		out = append(out, r.RR(z.Ttl))
	}
	for _, r := range z.A {
		out = append(out, r.RR(z.Ttl))
	}
	for _, r := range z.Srv {
		out = append(out, r.RR(z.Ttl))
	}
	for _, r := range z.Ptr {
		out = append(out, r.RR(z.Ttl))
	}
	return out
}
