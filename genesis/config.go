// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"math/big"
	"os"

	"github.com/meterio/nft-auction/meter"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Config is the yaml form of a genesis.
type Config struct {
	Name        string             `yaml:"name"`
	LaunchTime  uint64             `yaml:"launch_time"`
	Engine      *EngineConfig      `yaml:"engine"`
	Assets      []AssetConfig      `yaml:"assets"`
	Collections []CollectionConfig `yaml:"collections"`
}

// EngineConfig initializes the auction engine.
type EngineConfig struct {
	Admin string `yaml:"admin"`
	Asset string `yaml:"asset"`
	Fee   uint64 `yaml:"fee"`
}

// AssetConfig allocates balances of one fungible asset.
type AssetConfig struct {
	Address  string            `yaml:"address"`
	Balances map[string]string `yaml:"balances"`
}

// CollectionConfig mints items of one registry.
type CollectionConfig struct {
	Address string       `yaml:"address"`
	URI     string       `yaml:"uri"`
	Mints   []MintConfig `yaml:"mints"`
}

// MintConfig gives amount units of item id to owner.
type MintConfig struct {
	Owner  string `yaml:"owner"`
	ID     uint64 `yaml:"id"`
	Amount uint64 `yaml:"amount"`
	// lets the auction engine move the owner's items
	ApproveEngine bool `yaml:"approve_engine"`
}

// LoadConfig reads a yaml genesis file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis file")
	}
	return ParseConfig(data)
}

// ParseConfig decodes and validates a yaml genesis.
func ParseConfig(data []byte) (*Config, error) {
	var config Config
	if err := yaml.UnmarshalStrict(data, &config); err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) validate() error {
	if c.Name == "" {
		return errors.New("genesis name is empty")
	}
	if c.Engine != nil {
		if _, err := meter.ParseAddress(c.Engine.Admin); err != nil {
			return errors.Wrap(err, "engine admin")
		}
		if _, err := meter.ParseAddress(c.Engine.Asset); err != nil {
			return errors.Wrap(err, "engine asset")
		}
	}
	for _, asset := range c.Assets {
		if _, err := meter.ParseAddress(asset.Address); err != nil {
			return errors.Wrap(err, "asset address")
		}
		for owner, amount := range asset.Balances {
			if _, err := meter.ParseAddress(owner); err != nil {
				return errors.Wrap(err, "balance owner")
			}
			if _, err := parseAmount(amount); err != nil {
				return err
			}
		}
	}
	for _, coll := range c.Collections {
		if _, err := meter.ParseAddress(coll.Address); err != nil {
			return errors.Wrap(err, "collection address")
		}
		for _, mint := range coll.Mints {
			if _, err := meter.ParseAddress(mint.Owner); err != nil {
				return errors.Wrap(err, "mint owner")
			}
		}
	}
	return nil
}

func parseAmount(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 0)
	if !ok || v.Sign() < 0 {
		return nil, errors.Errorf("invalid amount %q", s)
	}
	return v, nil
}
