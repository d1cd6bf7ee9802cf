package renderer

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/1f349/zinnia/models"
	"github.com/gobuffalo/nulls"
)

const (
	localZone = "local-zone:"
	localData = "local-data:"
	localPtr  = "local-data-ptr:"

	indent = "    "

	// fixed column widths, kept byte-stable so regenerated files diff cleanly
	// against previously generated output
	keywordWidth = 16
	nameWidth    = 40
	ttlWidth     = 6
	typeWidth    = 7
)

// Unbound renders zones as unbound local-zone and local-data statements
// under a single server clause.
type Unbound struct{}

func (Unbound) Render(w io.Writer, zones []*models.Zone) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "server:")
	for _, zone := range zones {
		fqdn := zone.Fqdn()
		fmt.Fprintf(bw, "\n%s%-*s %s static\n", indent, keywordWidth, localZone, fqdn)

		writeLine(bw, localData, fqdn, nulls.NewUInt32(zone.Ttl), "IN SOA", zone.SOA().Value())
		for _, ns := range zone.Ns {
			writeLine(bw, localData, fqdn, ns.Ttl, "IN NS", ns.Name)
		}
		for _, mx := range zone.Mx {
			writeLine(bw, localData, fqdn, mx.Ttl, "IN MX", fmt.Sprintf("%d %s", mx.Prio, mx.Name))
		}
		for _, a := range zone.A {
			kind := "IN A"
			if !a.Addr.Is4() {
				kind = "IN AAAA"
			}
			writeLine(bw, localData, a.Name, a.Ttl, kind, a.Addr.String())
		}
		for _, srv := range zone.Srv {
			writeLine(bw, localData, srv.Service, srv.Ttl, "IN SRV", fmt.Sprintf("%d %d %d %s", srv.Prio, srv.Weight, srv.Port, srv.Name))
		}
		for _, ptr := range zone.Ptr {
			// reverse entries have no type field, the column stays blank
			writeLine(bw, localPtr, ptr.Addr.String(), ptr.Ttl, "", ptr.Name)
		}
	}
	return bw.Flush()
}

// writeLine emits one directive in the fixed column layout: the keyword,
// then a quoted payload of owner name, TTL (blank padded when unset), record
// type and value.
func writeLine(w io.Writer, keyword, name string, ttl nulls.UInt32, kind, value string) {
	ttlField := ""
	if ttl.Valid {
		ttlField = strconv.FormatUint(uint64(ttl.UInt32), 10)
	}
	fmt.Fprintf(w, "%s%-*s \"%-*s %-*s %-*s %s\"\n", indent, keywordWidth, keyword, nameWidth, name, ttlWidth, ttlField, typeWidth, kind, value)
}
