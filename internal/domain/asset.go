package domain

import (
	"fmt"
	"strings"
)

// Asset is a closed enumeration of the symbol codes this process understands.
// Strings outside this set are rejected at configuration time.
type Asset int

const (
	AssetUnknown Asset = iota
	AssetADA
	AssetBTC
	AssetDOT
	AssetETH
	AssetLINK
	AssetLTC
	AssetSOL
	AssetUSD
	AssetUSDC
	AssetUSDT
)

var assetNames = map[Asset]string{
	AssetADA:  "ADA",
	AssetBTC:  "BTC",
	AssetDOT:  "DOT",
	AssetETH:  "ETH",
	AssetLINK: "LINK",
	AssetLTC:  "LTC",
	AssetSOL:  "SOL",
	AssetUSD:  "USD",
	AssetUSDC: "USDC",
	AssetUSDT: "USDT",
}

var assetByCode = func() map[string]Asset {
	m := make(map[string]Asset, len(assetNames))
	for asset, name := range assetNames {
		m[name] = asset
	}
	return m
}()

// ParseAsset maps a case-insensitive symbol code to an Asset, rejecting anything
// outside the closed enumeration.
func ParseAsset(code string) (Asset, error) {
	asset, ok := assetByCode[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return AssetUnknown, fmt.Errorf("unknown asset %q", code)
	}
	return asset, nil
}

func (a Asset) String() string {
	if name, ok := assetNames[a]; ok {
		return name
	}
	return "UNKNOWN"
}
