package entity

// EnabledNetworkMap optionally restricts which chains participate in
// aggregation: namespace -> chain ID -> enabled. A nil map means no filtering
// is configured and every chain is eligible.
type EnabledNetworkMap map[string]map[string]bool
