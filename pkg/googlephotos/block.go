package googlephotos

import "strings"

// ExtractDataBlock returns the body of the longest AF_initDataCallback block
// that carries a data field. The page embeds many small initializer blocks;
// the gallery is reliably the largest one.
func ExtractDataBlock(html string) (string, error) {
	longest := ""
	for _, m := range dataBlockRegex.FindAllStringSubmatchIndex(html, -1) {
		body := html[m[2]:m[3]]
		if !strings.Contains(body, dataMarker) {
			continue
		}
		if len(body) > len(longest) {
			longest = body
		}
	}
	if longest == "" {
		return "", ErrNoDataBlock
	}
	return longest, nil
}
