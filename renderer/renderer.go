package renderer

import (
	"io"
	"sort"

	"github.com/1f349/zinnia/models"
)

// Renderer writes the configuration text for an ordered list of normalized
// zones to the output sink. Implementations must not have any other
// observable effect.
type Renderer interface {
	Render(w io.Writer, zones []*models.Zone) error
}

var renderers = map[string]Renderer{
	"unbound": Unbound{},
	"nsd":     Nsd{},
}

// Get returns the renderer registered under the given format name.
func Get(name string) (Renderer, bool) {
	r, ok := renderers[name]
	return r, ok
}

// Formats lists the registered output formats in sorted order.
func Formats() []string {
	out := make([]string, 0, len(renderers))
	for name := range renderers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
