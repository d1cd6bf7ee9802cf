package utils

import "strings"

// ResolveHostName expands shortened host names relative to the provided zone
//
// The zone is expected in fully qualified form. The names "", "@" and "." all
// refer to the zone apex.
//
// - ("@", "example.com.") -> "example.com."
// - (".", "example.com.") -> "example.com."
// - ("ns1", "example.com.") -> "ns1.example.com."
// - ("ns2.example.com.", "example.org.") -> "ns2.example.com."
// - ("ns3", "") -> "ns3."
func ResolveHostName(name, zone string) string {
	if strings.HasSuffix(name, ".") && name != "." {
		return name
	}

	// resolve apex markers and relative names
	switch name {
	case "@", ".", "":
		name = zone
	default:
		name = name + "." + zone
	}
	return name
}
