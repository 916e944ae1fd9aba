// Package params scrapes calculated servo-tuning values out of the
// vendor's XML parameter document.
//
// The document nests an Axes element at an unspecified depth; each Axis
// child carries an Index attribute and a flat list of P elements whose n
// attribute names the parameter. Extraction walks the token stream so the
// Axes container is found wherever the vendor put it.
package params

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/mcdgen/pkg/domain"
)

// Parameter family prefixes recognized by the session.
const (
	PrefixServoLoop   = "ServoLoop"
	PrefixFeedforward = "Feedforward"
)

type axisElem struct {
	Index  string      `xml:"Index,attr"`
	Params []paramElem `xml:"P"`
}

type paramElem struct {
	Name  string `xml:"n,attr"`
	Value string `xml:",chardata"`
}

// ExtractServoLoop returns all ServoLoop-prefixed parameters per axis.
func ExtractServoLoop(xmlText string) (domain.AxisParameters, error) {
	return Extract(strings.NewReader(xmlText), PrefixServoLoop)
}

// ExtractFeedforward returns all Feedforward-prefixed parameters per axis.
func ExtractFeedforward(xmlText string) (domain.AxisParameters, error) {
	return Extract(strings.NewReader(xmlText), PrefixFeedforward)
}

// Extract collects, per axis, every parameter whose name begins with
// prefix, preserving document order. Axes with no matching parameter are
// omitted from the result.
func Extract(r io.Reader, prefix string) (domain.AxisParameters, error) {
	dec := xml.NewDecoder(r)
	out := make(domain.AxisParameters)

	var stack []string
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse parameter document: %w", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Local == "Axis" && len(stack) > 0 && stack[len(stack)-1] == "Axes" {
				var axis axisElem
				if err := dec.DecodeElement(&axis, &el); err != nil {
					return nil, fmt.Errorf("parse axis element: %w", err)
				}
				var matched []domain.Parameter
				for _, p := range axis.Params {
					if strings.HasPrefix(p.Name, prefix) {
						matched = append(matched, domain.Parameter{
							Name:  p.Name,
							Value: strings.TrimSpace(p.Value),
						})
					}
				}
				if len(matched) > 0 {
					out[axis.Index] = matched
				}
				// DecodeElement consumed the matching end element.
				continue
			}
			stack = append(stack, el.Name.Local)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	return out, nil
}
