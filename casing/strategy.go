package casing

import "fmt"

type kind uint8

const (
	kindIdentity kind = iota
	kindSnakeCase
	kindCustom
)

// Strategy is a key-naming rule. The zero value is Identity.
type Strategy struct {
	kind kind
	name string
	fn   func(string) string
}

// Identity leaves keys untouched.
func Identity() Strategy { return Strategy{kind: kindIdentity} }

// SnakeCase maps between camelCase and snake_case. Encoding produces
// snake_case keys; decoding produces camelCase keys.
func SnakeCase() Strategy { return Strategy{kind: kindSnakeCase} }

// Custom applies fn to every key regardless of direction. A nil fn behaves
// like Identity.
func Custom(name string, fn func(string) string) Strategy {
	return Strategy{kind: kindCustom, name: name, fn: fn}
}

// Name returns "identity", "snake_case", or the name given to Custom.
func (s Strategy) Name() string {
	switch s.kind {
	case kindSnakeCase:
		return StrategySnakeCase
	case kindCustom:
		if s.name == "" {
			return "custom"
		}
		return s.name
	default:
		return StrategyIdentity
	}
}

// IsIdentity reports whether the strategy never changes a key.
func (s Strategy) IsIdentity() bool {
	return s.kind == kindIdentity || (s.kind == kindCustom && s.fn == nil)
}

func (s Strategy) String() string { return s.Name() }

func (s Strategy) encode(key string) string {
	switch s.kind {
	case kindSnakeCase:
		return ToSnakeCase(key)
	case kindCustom:
		if s.fn != nil {
			return s.fn(key)
		}
	}
	return key
}

func (s Strategy) decode(key string) string {
	switch s.kind {
	case kindSnakeCase:
		return FromSnakeCase(key)
	case kindCustom:
		if s.fn != nil {
			return s.fn(key)
		}
	}
	return key
}

// Strategy names accepted by ParseStrategy and Config.
const (
	StrategyIdentity  = "identity"
	StrategySnakeCase = "snake_case"
)

// ParseStrategy resolves a configured strategy name.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case StrategyIdentity:
		return Identity(), nil
	case StrategySnakeCase:
		return SnakeCase(), nil
	default:
		return Strategy{}, fmt.Errorf("casing: unknown strategy %q (want %s or %s)",
			name, StrategyIdentity, StrategySnakeCase)
	}
}
