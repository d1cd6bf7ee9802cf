package conf

import (
	"fmt"
	"math"
	"net/netip"

	"gopkg.in/yaml.v3"
)

type TokenKind uint8

const (
	// TokenString is any scalar that is neither numeric nor a valid IP
	// literal, usually an alias or host name.
	TokenString TokenKind = iota
	// TokenNumber is an integer scalar: a TTL, priority, weight or port
	// depending on position.
	TokenNumber
	// TokenIP is a valid IPv4 or IPv6 address literal.
	TokenIP
)

// Token is a single classified element of an entry value list. Classification
// happens once at decode time and is total: the numeric check runs first,
// then the IP literal check, everything else is a string.
type Token struct {
	Kind   TokenKind
	Text   string
	Number uint32
	Addr   netip.Addr
}

var _ yaml.Unmarshaler = (*Token)(nil)

func (t *Token) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar value", value.Line)
	}
	t.Text = value.Value
	if value.Tag == "!!int" {
		var n int64
		if err := value.Decode(&n); err != nil {
			return err
		}
		if n < 0 || n > math.MaxUint32 {
			return fmt.Errorf("line %d: value %d out of range", value.Line, n)
		}
		t.Kind = TokenNumber
		t.Number = uint32(n)
		return nil
	}
	if addr, err := netip.ParseAddr(value.Value); err == nil && addr.Zone() == "" {
		t.Kind = TokenIP
		t.Addr = addr
		return nil
	}
	t.Kind = TokenString
	return nil
}
