package conf

import (
	"errors"
	"fmt"
	"io"
	"net/netip"

	"github.com/gobuffalo/nulls"
	"gopkg.in/yaml.v3"
)

// Document is the raw zone description: an ordered list of zones keyed by
// their domain name. The YAML mapping order is preserved because it dictates
// the output order.
type Document struct {
	Zones []RawZone
}

var _ yaml.Unmarshaler = (*Document)(nil)

func (d *Document) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping of zone names", value.Line)
	}
	d.Zones = make([]RawZone, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		var z RawZone
		if err := value.Content[i].Decode(&z.Name); err != nil {
			return err
		}
		if err := value.Content[i+1].Decode(&z); err != nil {
			return err
		}
		d.Zones = append(d.Zones, z)
	}
	return nil
}

// Parse decodes a YAML zone description. An empty input yields an empty
// document, not an error.
func Parse(r io.Reader) (*Document, error) {
	var doc Document
	err := yaml.NewDecoder(r).Decode(&doc)
	if errors.Is(err, io.EOF) {
		return &Document{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// RawZone is one zone's declarative description before record derivation.
type RawZone struct {
	Name       string          `yaml:"-"`
	Soa        SoaConf         `yaml:"soa"`
	Addresses  HostEntries     `yaml:"addresses"`
	Hosts      HostEntries     `yaml:"hosts"`
	Nameserver *NameserverDecl `yaml:"nameserver"`
	Mx         HostEntries     `yaml:"mx"`
	Srv        HostEntries     `yaml:"srv"`
}

type SoaConf struct {
	Nameserver *NameserverDecl `yaml:"nameserver"`
	Email      string          `yaml:"email"`
	Serial     *uint32         `yaml:"serial"`
	Refresh    *uint32         `yaml:"refresh"`
	Retry      *uint32         `yaml:"retry"`
	Expire     *uint32         `yaml:"expire"`
	NrcTtl     *uint32         `yaml:"nrc_ttl"`
	Ttl        *uint32         `yaml:"ttl"`
}

// HostEntry pairs a host or service key with its declared value list.
type HostEntry struct {
	Name  string
	Entry Entry
}

// HostEntries is an order-preserving replacement for a map section. Go maps
// randomize iteration order, which would break the deterministic output
// contract, so mapping nodes are walked directly.
type HostEntries []HostEntry

var _ yaml.Unmarshaler = (*HostEntries)(nil)

func (h *HostEntries) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping of host names", value.Line)
	}
	entries := make(HostEntries, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		var e HostEntry
		if err := value.Content[i].Decode(&e.Name); err != nil {
			return err
		}
		if err := value.Content[i+1].Decode(&e.Entry); err != nil {
			return err
		}
		entries = append(entries, e)
	}
	*h = entries
	return nil
}

// Entry is the value list attached to a single host or service key. A bare
// scalar decodes as a one element list.
type Entry []Token

var _ yaml.Unmarshaler = (*Entry)(nil)

func (e *Entry) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		out := make(Entry, 0, len(value.Content))
		for _, n := range value.Content {
			var t Token
			if err := t.UnmarshalYAML(n); err != nil {
				return err
			}
			out = append(out, t)
		}
		*e = out
	case yaml.ScalarNode:
		var t Token
		if err := t.UnmarshalYAML(value); err != nil {
			return err
		}
		*e = Entry{t}
	default:
		return fmt.Errorf("line %d: expected a scalar or sequence value", value.Line)
	}
	return nil
}

// Classify splits an entry into its TTL override, address targets and alias
// names. The trailing element is only a TTL when it is numeric. Both
// partitions keep the relative order of the input.
func (e Entry) Classify() (ttl nulls.UInt32, ips []netip.Addr, aliases []string) {
	tokens := e
	if n := len(tokens); n > 0 && tokens[n-1].Kind == TokenNumber {
		ttl = nulls.NewUInt32(tokens[n-1].Number)
		tokens = tokens[:n-1]
	}
	for _, t := range tokens {
		if t.Kind == TokenIP {
			ips = append(ips, t.Addr)
		} else {
			aliases = append(aliases, t.Text)
		}
	}
	return
}

// NameserverDecl is the raw nameserver declaration, resolved into one of its
// two accepted shapes at decode time. A scalar or sequence declares
// delegation-only names; a mapping attaches a value list to each nameserver.
// Exactly one of Names and Entries is set.
type NameserverDecl struct {
	Names   []string
	Entries HostEntries
}

var _ yaml.Unmarshaler = (*NameserverDecl)(nil)

func (d *NameserverDecl) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		d.Names = []string{s}
	case yaml.SequenceNode:
		return value.Decode(&d.Names)
	case yaml.MappingNode:
		return d.Entries.UnmarshalYAML(value)
	default:
		return fmt.Errorf("line %d: expected a name, sequence of names or mapping", value.Line)
	}
	return nil
}

// IsMapping reports whether the declaration carries per-nameserver entries.
func (d *NameserverDecl) IsMapping() bool {
	return d.Entries != nil
}
