package models

import (
	"net/netip"
	"testing"

	"github.com/gobuffalo/nulls"
	"github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
)

func TestAddressRecordFamily(t *testing.T) {
	v4 := AddressRecord{Name: "web.example.com.", Addr: netip.MustParseAddr("192.168.0.10")}
	assert.Equal(t, dns.TypeA, v4.Type())
	rr, ok := v4.RR(10800).(*dns.A)
	if assert.True(t, ok) {
		assert.Equal(t, "web.example.com.", rr.Hdr.Name)
		assert.Equal(t, "192.168.0.10", rr.A.String())
		assert.Equal(t, uint32(10800), rr.Hdr.Ttl)
	}

	v6 := AddressRecord{Name: "web.example.com.", Addr: netip.MustParseAddr("fd00::10"), Ttl: nulls.NewUInt32(600)}
	assert.Equal(t, dns.TypeAAAA, v6.Type())
	rr6, ok := v6.RR(10800).(*dns.AAAA)
	if assert.True(t, ok) {
		assert.Equal(t, "fd00::10", rr6.AAAA.String())
		// the record TTL overrides the zone default
		assert.Equal(t, uint32(600), rr6.Hdr.Ttl)
	}
}

func TestPtrRecordReverseName(t *testing.T) {
	ptr := PtrRecord{Name: "web.example.com.", Addr: netip.MustParseAddr("192.168.0.10")}
	rr, ok := ptr.RR(10800).(*dns.PTR)
	if assert.True(t, ok) {
		assert.Equal(t, "10.0.168.192.in-addr.arpa.", rr.Hdr.Name)
		assert.Equal(t, "web.example.com.", rr.Ptr)
	}
}

func TestNsMxSrvRecords(t *testing.T) {
	ns, ok := NsRecord{Zone: "example.com", Name: "ns1.example.com."}.RR(10800).(*dns.NS)
	if assert.True(t, ok) {
		assert.Equal(t, "example.com.", ns.Hdr.Name)
		assert.Equal(t, "ns1.example.com.", ns.Ns)
	}

	mx, ok := MxRecord{Zone: "example.com", Name: "mail.example.com.", Prio: 10}.RR(10800).(*dns.MX)
	if assert.True(t, ok) {
		assert.Equal(t, uint16(10), mx.Preference)
		assert.Equal(t, "mail.example.com.", mx.Mx)
	}

	srv, ok := SrvRecord{
		Name:    "sip.example.com.",
		Service: "_sip._tcp.example.com.",
		Prio:    5,
		Weight:  1,
		Port:    5060,
	}.RR(10800).(*dns.SRV)
	if assert.True(t, ok) {
		assert.Equal(t, "_sip._tcp.example.com.", srv.Hdr.Name)
		assert.Equal(t, "sip.example.com.", srv.Target)
		assert.Equal(t, uint16(5060), srv.Port)
	}
}

func TestZoneSoaAndRecordOrder(t *testing.T) {
	zone := &Zone{
		Name:    "example.com",
		Email:   "hostmaster.example.com.",
		Serial:  42,
		Refresh: 7200,
		Retry:   3600,
		Expire:  1209600,
		NrcTtl:  3600,
		Ttl:     10800,
		Ns:      []NsRecord{{Zone: "example.com", Name: "ns1.example.com."}},
		Mx:      []MxRecord{{Zone: "example.com", Name: "mail.example.com.", Prio: 10}},
		A: []AddressRecord{
			{Name: "web.example.com.", Addr: netip.MustParseAddr("192.168.0.10")},
		},
		Srv: []SrvRecord{
			{Name: "sip.example.com.", Service: "_sip._tcp.example.com.", Prio: 5, Port: 5060},
		},
		Ptr: []PtrRecord{
			{Name: "web.example.com.", Addr: netip.MustParseAddr("192.168.0.10")},
		},
	}

	soa := zone.SOA()
	assert.Equal(t, "ns1.example.com.", soa.Ns)
	assert.Equal(t, "hostmaster.example.com. 42 7200 3600 1209600 3600", soa.Value()[len("ns1.example.com. "):])

	records := zone.Records()
	if assert.Len(t, records, 5+1) {
		types := make([]uint16, 0, len(records))
		for _, rr := range records {
			types = append(types, rr.Header().Rrtype)
		}
		assert.Equal(t, []uint16{dns.TypeSOA, dns.TypeNS, dns.TypeMX, dns.TypeA, dns.TypeSRV, dns.TypePTR}, types)
	}
}
