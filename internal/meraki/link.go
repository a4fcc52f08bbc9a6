package meraki

import "strings"

// nextPageURL extracts the rel=next target from an RFC 5988 Link header.
// The dashboard sends entries like <https://...?startingAfter=X>; rel=next,
// with the rel value sometimes quoted and sometimes not.
func nextPageURL(header string) string {
	for _, entry := range strings.Split(header, ",") {
		parts := strings.Split(entry, ";")
		if len(parts) < 2 {
			continue
		}
		target := strings.Trim(strings.TrimSpace(parts[0]), "<>")
		if target == "" {
			continue
		}
		for _, param := range parts[1:] {
			rel, ok := strings.CutPrefix(strings.TrimSpace(param), "rel=")
			if !ok {
				continue
			}
			if strings.Trim(rel, `"`) == "next" {
				return target
			}
		}
	}
	return ""
}
