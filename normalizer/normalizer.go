package normalizer

import (
	"fmt"
	"math"
	"net/netip"
	"strings"

	"github.com/1f349/zinnia/conf"
	"github.com/1f349/zinnia/models"
	"github.com/1f349/zinnia/utils"
	"github.com/gobuffalo/nulls"
	"github.com/miekg/dns"
	"github.com/rcrowley/go-metrics"
)

// SOA timing defaults applied when the zone description leaves them out.
const (
	DefaultRefresh = 7200
	DefaultRetry   = 3600
	DefaultExpire  = 1209600
	DefaultNrcTtl  = 3600
	DefaultTtl     = 10800
)

var (
	addressCounter = metrics.GetOrRegisterCounter("normalizer.records.address", nil)
	ptrCounter     = metrics.GetOrRegisterCounter("normalizer.records.ptr", nil)
	nsCounter      = metrics.GetOrRegisterCounter("normalizer.records.ns", nil)
	mxCounter      = metrics.GetOrRegisterCounter("normalizer.records.mx", nil)
	srvCounter     = metrics.GetOrRegisterCounter("normalizer.records.srv", nil)
)

// RecordCounts reports the derived record totals per kind across all
// normalized zones in this process.
func RecordCounts() map[string]int64 {
	return map[string]int64{
		"address": addressCounter.Count(),
		"ptr":     ptrCounter.Count(),
		"ns":      nsCounter.Count(),
		"mx":      mxCounter.Count(),
		"srv":     srvCounter.Count(),
	}
}

// Normalize expands the raw zone descriptions into fully derived zones. The
// serial floor is used for any zone that does not declare its own serial.
// The first malformed entry aborts the whole batch so a broken description
// never produces partial configuration.
func Normalize(doc *conf.Document, serialFloor uint32) ([]*models.Zone, error) {
	zones := make([]*models.Zone, 0, len(doc.Zones))
	for i := range doc.Zones {
		zone, err := normalizeZone(&doc.Zones[i], serialFloor)
		if err != nil {
			return nil, err
		}
		zones = append(zones, zone)
	}
	return zones, nil
}

// zoneBuilder accumulates one zone's records together with the
// de-duplication state, which is discarded once the zone is built. Both sets
// are zone local: owner names key the forward records, canonical IP strings
// key the reverse mappings.
type zoneBuilder struct {
	zone     *models.Zone
	fqdn     string
	owners   map[string]struct{}
	ptrAddrs map[string]struct{}
}

func (b *zoneBuilder) addAddress(name string, addr netip.Addr, ttl nulls.UInt32) {
	b.zone.A = append(b.zone.A, models.AddressRecord{Name: name, Addr: addr, Ttl: ttl})
	b.owners[name] = struct{}{}
	addressCounter.Inc(1)
}

// addPtr records the reverse mapping unless the address already has one.
// Only the first claim on an address wins, no matter which section made it.
func (b *zoneBuilder) addPtr(name string, addr netip.Addr, ttl nulls.UInt32) {
	key := addr.String()
	if _, ok := b.ptrAddrs[key]; ok {
		return
	}
	b.ptrAddrs[key] = struct{}{}
	b.zone.Ptr = append(b.zone.Ptr, models.PtrRecord{Name: name, Addr: addr, Ttl: ttl})
	ptrCounter.Inc(1)
}

func (b *zoneBuilder) addNs(r models.NsRecord) {
	b.zone.Ns = append(b.zone.Ns, r)
	nsCounter.Inc(1)
}

func (b *zoneBuilder) addMx(r models.MxRecord) {
	b.zone.Mx = append(b.zone.Mx, r)
	mxCounter.Inc(1)
}

func (b *zoneBuilder) addSrv(r models.SrvRecord) {
	b.zone.Srv = append(b.zone.Srv, r)
	srvCounter.Inc(1)
}

// addForward emits the primary host's forward records followed by one
// forward record per alias and address pair.
func (b *zoneBuilder) addForward(name string, ips []netip.Addr, aliases []string, ttl nulls.UInt32) {
	for _, ip := range ips {
		b.addAddress(name, ip, ttl)
	}
	for _, alias := range aliases {
		aliasName := utils.ResolveHostName(alias, b.fqdn)
		for _, ip := range ips {
			b.addAddress(aliasName, ip, ttl)
		}
	}
}

// addOwnedAddresses attaches forward and reverse records to a host declared
// inline under nameserver or mx. The first writer of an owner name wins:
// when the name already holds a forward record the whole emission is
// skipped, so a nameserver that is also listed under hosts does not produce
// duplicate records.
func (b *zoneBuilder) addOwnedAddresses(name string, ips []netip.Addr, ttl nulls.UInt32) {
	if len(ips) == 0 {
		return
	}
	if _, ok := b.owners[name]; ok {
		return
	}
	for _, ip := range ips {
		b.addAddress(name, ip, ttl)
		b.addPtr(name, ip, ttl)
	}
}

func normalizeZone(raw *conf.RawZone, serialFloor uint32) (*models.Zone, error) {
	if raw.Soa.Email == "" {
		return nil, ErrInvalidEntry{Zone: raw.Name, Section: "soa", Key: "email", Reason: ErrMissingEmail}
	}

	zone := &models.Zone{
		Name:    strings.TrimSuffix(raw.Name, "."),
		Email:   dns.Fqdn(strings.ReplaceAll(raw.Soa.Email, "@", ".")),
		Serial:  valueOr(raw.Soa.Serial, serialFloor),
		Refresh: valueOr(raw.Soa.Refresh, DefaultRefresh),
		Retry:   valueOr(raw.Soa.Retry, DefaultRetry),
		Expire:  valueOr(raw.Soa.Expire, DefaultExpire),
		NrcTtl:  valueOr(raw.Soa.NrcTtl, DefaultNrcTtl),
		Ttl:     valueOr(raw.Soa.Ttl, DefaultTtl),
	}
	b := &zoneBuilder{
		zone:     zone,
		fqdn:     zone.Name + ".",
		owners:   make(map[string]struct{}),
		ptrAddrs: make(map[string]struct{}),
	}

	for _, h := range raw.Addresses {
		// forward only: these hosts never claim reverse ownership
		ttl, ips, aliases := h.Entry.Classify()
		b.addForward(utils.ResolveHostName(h.Name, b.fqdn), ips, aliases, ttl)
	}

	for _, h := range raw.Hosts {
		name := utils.ResolveHostName(h.Name, b.fqdn)
		ttl, ips, aliases := h.Entry.Classify()
		for _, ip := range ips {
			b.addAddress(name, ip, ttl)
			b.addPtr(name, ip, ttl)
		}
		for _, alias := range aliases {
			aliasName := utils.ResolveHostName(alias, b.fqdn)
			for _, ip := range ips {
				b.addAddress(aliasName, ip, ttl)
			}
		}
	}

	if err := normalizeNameserver(raw, b); err != nil {
		return nil, err
	}

	for _, h := range raw.Mx {
		name := utils.ResolveHostName(h.Name, b.fqdn)
		if len(h.Entry) == 0 || h.Entry[0].Kind != conf.TokenNumber {
			return nil, ErrInvalidEntry{Zone: raw.Name, Section: "mx", Key: h.Name, Reason: ErrMxPriority}
		}
		prio := h.Entry[0].Number
		if prio > math.MaxUint16 {
			return nil, ErrInvalidEntry{Zone: raw.Name, Section: "mx", Key: h.Name, Reason: fmt.Errorf("mx priority %d out of range", prio)}
		}
		ttl, ips, aliases := h.Entry[1:].Classify()
		if len(aliases) > 0 {
			return nil, ErrInvalidEntry{Zone: raw.Name, Section: "mx", Key: h.Name, Reason: ErrAliasNotAllowed}
		}
		b.addMx(models.MxRecord{Zone: zone.Name, Name: name, Prio: uint16(prio), Ttl: ttl})
		b.addOwnedAddresses(name, ips, ttl)
	}

	for _, h := range raw.Srv {
		if err := normalizeSrv(raw.Name, h, b); err != nil {
			return nil, err
		}
	}

	if len(zone.Ns) == 0 {
		return nil, ErrInvalidEntry{Zone: raw.Name, Section: "soa", Key: "nameserver", Reason: ErrMissingNameserver}
	}
	return zone, nil
}

// normalizeNameserver handles the two accepted nameserver shapes. Plain
// names are pure delegation and carry neither TTL nor addresses; the
// mapping shape may attach addresses to each nameserver.
func normalizeNameserver(raw *conf.RawZone, b *zoneBuilder) error {
	decl := raw.Soa.Nameserver
	if decl == nil {
		decl = raw.Nameserver
	}
	if decl == nil {
		return nil
	}

	if !decl.IsMapping() {
		for _, name := range decl.Names {
			b.addNs(models.NsRecord{Zone: b.zone.Name, Name: utils.ResolveHostName(name, b.fqdn)})
		}
		return nil
	}

	for _, h := range decl.Entries {
		name := utils.ResolveHostName(h.Name, b.fqdn)
		ttl, ips, aliases := h.Entry.Classify()
		if len(aliases) > 0 {
			return ErrInvalidEntry{Zone: raw.Name, Section: "nameserver", Key: h.Name, Reason: ErrAliasNotAllowed}
		}
		b.addNs(models.NsRecord{Zone: b.zone.Name, Name: name, Ttl: ttl})
		b.addOwnedAddresses(name, ips, ttl)
	}
	return nil
}

func normalizeSrv(zoneName string, h conf.HostEntry, b *zoneBuilder) error {
	service := qualifyService(h.Name, b.fqdn)

	tokens := h.Entry
	var ttl nulls.UInt32
	if n := len(tokens); n > 0 && tokens[n-1].Kind == conf.TokenNumber {
		ttl = nulls.NewUInt32(tokens[n-1].Number)
		tokens = tokens[:n-1]
	}

	prio, weight := uint32(5), uint32(0)
	var port uint32
	var target string
	switch {
	case len(tokens) == 4 &&
		tokens[0].Kind == conf.TokenNumber &&
		tokens[1].Kind == conf.TokenNumber &&
		tokens[2].Kind == conf.TokenNumber &&
		tokens[3].Kind != conf.TokenNumber:
		prio, weight, port, target = tokens[0].Number, tokens[1].Number, tokens[2].Number, tokens[3].Text
	case len(tokens) == 2 &&
		tokens[0].Kind == conf.TokenNumber &&
		tokens[1].Kind != conf.TokenNumber:
		port, target = tokens[0].Number, tokens[1].Text
	default:
		return ErrInvalidEntry{Zone: zoneName, Section: "srv", Key: h.Name, Reason: ErrSrvShape}
	}
	if prio > math.MaxUint16 || weight > math.MaxUint16 || port > math.MaxUint16 {
		return ErrInvalidEntry{Zone: zoneName, Section: "srv", Key: h.Name, Reason: fmt.Errorf("srv value out of range: prio=%d weight=%d port=%d", prio, weight, port)}
	}

	b.addSrv(models.SrvRecord{
		Name:    utils.ResolveHostName(target, b.fqdn),
		Service: service,
		Prio:    uint16(prio),
		Weight:  uint16(weight),
		Port:    uint16(port),
		Ttl:     ttl,
	})
	return nil
}

// qualifyService normalizes a service label: the service and protocol labels
// each get their "_" prefix when missing, any remaining labels pass through,
// and the result is qualified against the zone.
func qualifyService(label, zone string) string {
	parts := strings.Split(label, ".")
	if !strings.HasPrefix(parts[0], "_") {
		parts[0] = "_" + parts[0]
	}
	if len(parts) > 1 && !strings.HasPrefix(parts[1], "_") {
		parts[1] = "_" + parts[1]
	}
	return utils.ResolveHostName(strings.Join(parts, "."), zone)
}

func valueOr(v *uint32, def uint32) uint32 {
	if v != nil {
		return *v
	}
	return def
}
