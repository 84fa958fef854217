// Package plistutil provides utilities for working with property list documents
package plistutil

import (
	"fmt"

	"github.com/deploymenttheory/go-workflow-templates/internal/common/errors"
	"howett.net/plist"
)

// Format represents the plist format
type Format int

const (
	// FormatXML is the XML plist format
	FormatXML Format = iota
	// FormatBinary is the binary plist format
	FormatBinary
	// FormatOpenStep is the OpenStep plist format
	FormatOpenStep
	// FormatGNUStep is the GNUStep plist format
	FormatGNUStep
)

// FormatToString returns the name of a plist format
func FormatToString(format Format) string {
	switch format {
	case FormatXML:
		return "xml"
	case FormatBinary:
		return "binary"
	case FormatOpenStep:
		return "openstep"
	case FormatGNUStep:
		return "gnustep"
	default:
		return "unknown"
	}
}

// Decode decodes a property list document whose root is a dictionary. The
// encoding (XML, binary, OpenStep or GNUStep) is detected automatically.
func Decode(data []byte) (map[string]interface{}, Format, error) {
	var result map[string]interface{}
	plistFormat, err := plist.Unmarshal(data, &result)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %s", errors.ErrUnsupportedFile, err.Error())
	}

	return result, fromPlistFormat(plistFormat), nil
}

// Encode encodes data as a property list in the given format
func Encode(data map[string]interface{}, format Format) ([]byte, error) {
	out, err := plist.MarshalIndent(data, toPlistFormat(format), "\t")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errors.ErrUnsupportedFile, err.Error())
	}
	return out, nil
}

func fromPlistFormat(format int) Format {
	switch format {
	case plist.BinaryFormat:
		return FormatBinary
	case plist.OpenStepFormat:
		return FormatOpenStep
	case plist.GNUStepFormat:
		return FormatGNUStep
	default:
		return FormatXML
	}
}

func toPlistFormat(format Format) int {
	switch format {
	case FormatBinary:
		return plist.BinaryFormat
	case FormatOpenStep:
		return plist.OpenStepFormat
	case FormatGNUStep:
		return plist.GNUStepFormat
	default:
		return plist.XMLFormat
	}
}
