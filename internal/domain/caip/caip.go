// Package caip parses CAIP-2 chain identifiers and CAIP-19 asset identifiers
// as used by non-EVM account state, and recognizes plain hex EVM chain IDs.
package caip

import (
	"fmt"
	"regexp"
	"strings"
)

// NamespaceEIP155 is the CAIP namespace covering EVM chains.
const NamespaceEIP155 = "eip155"

var (
	evmChainIDRe = regexp.MustCompile(`^0x[0-9a-fA-F]+$`)
	namespaceRe  = regexp.MustCompile(`^[-a-z0-9]{3,8}$`)
	referenceRe  = regexp.MustCompile(`^[-_a-zA-Z0-9]{1,32}$`)
)

// ChainID is a parsed CAIP-2 identifier, e.g. "solana:5eykt4UsFv8P8NJdTREpY1vzqKqZKvdp".
type ChainID struct {
	Namespace string
	Reference string
}

// String reassembles the canonical "namespace:reference" form.
func (c ChainID) String() string {
	return c.Namespace + ":" + c.Reference
}

// IsEvmChainID reports whether id is a plain hex-encoded EVM chain ID ("0x1", "0x89", ...).
func IsEvmChainID(id string) bool {
	return evmChainIDRe.MatchString(id)
}

// ParseChainID parses a CAIP-2 chain identifier.
func ParseChainID(id string) (ChainID, error) {
	namespace, reference, ok := strings.Cut(id, ":")
	if !ok {
		return ChainID{}, fmt.Errorf("chain id %q is not in namespace:reference form", id)
	}
	if !namespaceRe.MatchString(namespace) {
		return ChainID{}, fmt.Errorf("chain id %q has invalid namespace", id)
	}
	if !referenceRe.MatchString(reference) {
		return ChainID{}, fmt.Errorf("chain id %q has invalid reference", id)
	}
	return ChainID{Namespace: namespace, Reference: reference}, nil
}

// ChainIDFromAssetID extracts the CAIP-2 chain part of a CAIP-19 asset identifier,
// e.g. "solana:5eykt.../token:EPjFW..." yields "solana:5eykt...".
func ChainIDFromAssetID(assetID string) (ChainID, error) {
	chainPart, rest, ok := strings.Cut(assetID, "/")
	if !ok || rest == "" {
		return ChainID{}, fmt.Errorf("asset id %q has no asset namespace part", assetID)
	}
	return ParseChainID(chainPart)
}
