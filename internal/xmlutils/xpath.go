// Package xmlutils provides the XPath helpers used to inspect OOXML package parts.
package xmlutils

import (
	"bytes"
	"fmt"

	"gopkg.in/xmlpath.v2"
)

// ParseXMLBytes parses an in-memory XML document and returns its root node
func ParseXMLBytes(data []byte) (*xmlpath.Node, error) {
	root, err := xmlpath.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}
	return root, nil
}

// CountMatches returns how many nodes match xpath
func CountMatches(root *xmlpath.Node, xpath string) (int, error) {
	path, err := xmlpath.Compile(xpath)
	if err != nil {
		return 0, fmt.Errorf("failed to compile XPath: %w", err)
	}

	n := 0
	iter := path.Iter(root)
	for iter.Next() {
		n++
	}
	return n, nil
}
