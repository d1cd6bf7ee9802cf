package renderer

import (
	"bufio"
	"fmt"
	"io"

	"github.com/1f349/zinnia/models"
)

// Nsd renders zones as a master file suitable for nsd, one $ORIGIN block per
// zone, with records in the same canonical order as the unbound output.
type Nsd struct{}

func (Nsd) Render(w io.Writer, zones []*models.Zone) error {
	bw := bufio.NewWriter(w)
	for i, zone := range zones {
		if i > 0 {
			fmt.Fprintln(bw)
		}
		fmt.Fprintf(bw, "$ORIGIN %s\n", zone.Fqdn())
		fmt.Fprintf(bw, "$TTL %d\n", zone.Ttl)
		for _, rr := range zone.Records() {
			fmt.Fprintln(bw, rr.String())
		}
	}
	return bw.Flush()
}
