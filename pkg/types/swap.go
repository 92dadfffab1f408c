package types

// Assets tradeable through the engine.
const (
	AssetEth  = "ETH"
	AssetDai  = "DAI"
	AssetXdai = "XDAI"
)

// SwapRequest represents a user's swap or quote command
type SwapRequest struct {
	Amount      string
	SourceAsset string
	DestAsset   string
}
