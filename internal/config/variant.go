package config

import (
	"fmt"
	"strings"

	"github.com/betterdiscord/installer-cli/internal/messages"
)

// Variant identifies one Discord release channel.
type Variant string

// Supported variants, in canonical order.
const (
	Stable Variant = "stable"
	PTB    Variant = "ptb"
	Canary Variant = "canary"
)

// AllVariants lists every supported variant in canonical order.
var AllVariants = []Variant{Stable, PTB, Canary}

var displayNames = map[Variant]string{
	Stable: "Discord",
	PTB:    "Discord PTB",
	Canary: "Discord Canary",
}

// ParseVariant converts a user-supplied key into a Variant.
func ParseVariant(raw string) (Variant, error) {
	v := Variant(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := displayNames[v]; !ok {
		return "", fmt.Errorf(messages.ConfigUnknownVariantFmt, raw)
	}
	return v, nil
}

// DisplayName returns the product name of the variant, e.g. "Discord PTB".
func (v Variant) DisplayName() string {
	if name, ok := displayNames[v]; ok {
		return name
	}
	return string(v)
}

func (v Variant) String() string {
	return string(v)
}
