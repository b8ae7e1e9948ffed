package balances

import (
	"asset_tracker/internal/domain/caip"
	"asset_tracker/internal/domain/entity"
)

// ChainEnabled reports whether a chain participates in aggregation. A nil map
// means no filtering is configured and every chain is eligible. Identifiers
// that parse as neither a hex EVM chain ID nor a CAIP-2 chain ID are treated
// as disabled so a single malformed key cannot take down a whole aggregate.
func ChainEnabled(enabled entity.EnabledNetworkMap, chainID string) bool {
	if enabled == nil {
		return true
	}
	if caip.IsEvmChainID(chainID) {
		return enabled[caip.NamespaceEIP155][chainID]
	}
	parsed, err := caip.ParseChainID(chainID)
	if err != nil {
		return false
	}
	return enabled[parsed.Namespace][parsed.String()]
}

// AssetChainEnabled applies ChainEnabled to the chain part of a CAIP-19 asset
// identifier.
func AssetChainEnabled(enabled entity.EnabledNetworkMap, assetID string) bool {
	if enabled == nil {
		return true
	}
	chainID, err := caip.ChainIDFromAssetID(assetID)
	if err != nil {
		return false
	}
	return enabled[chainID.Namespace][chainID.String()]
}
