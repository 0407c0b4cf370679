// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"fmt"
	"strings"

	"github.com/tfctl/assetq/internal/attrs"
)

// Kind identifies a dataset type.
type Kind string

const (
	Assets     Kind = "assets"
	Orders     Kind = "orders"
	Stockpiles Kind = "stockpiles"
)

// Kinds returns every supported kind.
func Kinds() []Kind { return []Kind{Assets, Orders, Stockpiles} }

// ParseKind resolves a kind by name. A few common aliases are accepted.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "assets", "asset", "aq":
		return Assets, nil
	case "orders", "order", "market", "oq":
		return Orders, nil
	case "stockpiles", "stockpile", "spq":
		return Stockpiles, nil
	}
	return "", fmt.Errorf("unknown dataset kind %q", s)
}

func col(key, name, domain string) attrs.Attr {
	return attrs.Attr{Key: key, OutputKey: name, Domain: domain, Include: true}
}

func hidden(key, name, domain string) attrs.Attr {
	a := col(key, name, domain)
	a.Include = false
	return a
}

// Schema returns a fresh copy of the default columns of kind. Hidden columns
// are available to clauses and sorting but not displayed.
func Schema(kind Kind) attrs.AttrList {
	switch kind {
	case Assets:
		return attrs.AttrList{
			col("name", "name", "text"),
			col("group", "group", "text"),
			hidden("category", "category", "text"),
			col("location.name", "location", "text"),
			hidden("location.region", "region", "text"),
			col("owner", "owner", "text"),
			col("quantity", "quantity", "number"),
			col("price", "price", "number"),
			hidden("volume", "volume", "number"),
			col("value", "value", "number"),
			hidden("added", "added", "date"),
		}
	case Orders:
		return attrs.AttrList{
			col("name", "name", "text"),
			col("side", "side", "text"),
			col("location.name", "location", "text"),
			hidden("location.region", "region", "text"),
			col("price", "price", "number"),
			col("remaining", "remaining", "number"),
			hidden("total", "total", "number"),
			col("fill", "fill", "percent"),
			hidden("margin", "margin", "percent"),
			col("issued", "issued", "date"),
			hidden("expires", "expires", "date"),
			hidden("owner", "owner", "text"),
		}
	case Stockpiles:
		return attrs.AttrList{
			col("stockpile", "stockpile", "text"),
			col("name", "name", "text"),
			hidden("owner", "owner", "text"),
			col("location.name", "location", "text"),
			col("have", "have", "number"),
			col("need", "need", "number"),
			col("percentFull", "full", "percent"),
			hidden("updated", "updated", "date"),
		}
	}
	return nil
}
