// Package parcel defines the composite item identifiers and quantity maps
// that every channel calculator, the ledger, and the balance projector
// exchange. All rewards, costs, and balances are expressed as mappings from a
// parcel key to a signed float quantity; fractional values arise from
// probability-weighted expectations and are rounded only at display time.
package parcel

import (
	"fmt"
	"strconv"
	"strings"
)

// Type enumerates the parcel categories the game data distinguishes.
type Type string

const (
	TypeItem       Type = "Item"
	TypeCurrency   Type = "Currency"
	TypeEquipment  Type = "Equipment"
	TypeFurniture  Type = "Furniture"
	TypeCharacter  Type = "Character"
	TypeGachaGroup Type = "GachaGroup"
)

// Key identifies one parcel as a (type, id) pair. Two keys are equal iff both
// components match; using a struct key avoids the silent collisions a
// string-concatenated "type_id" key invites.
type Key struct {
	Type Type `yaml:"type" json:"type"`
	ID   int  `yaml:"id" json:"id"`
}

// String renders the key for logs and error messages.
func (k Key) String() string {
	return fmt.Sprintf("%s/%d", k.Type, k.ID)
}

// MarshalText renders the key as "Type/ID" so it can serve as a JSON map
// key.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses the "Type/ID" form produced by MarshalText.
func (k *Key) UnmarshalText(text []byte) error {
	typePart, idPart, found := strings.Cut(string(text), "/")
	if !found {
		return fmt.Errorf("parcel key %q is not in Type/ID form", text)
	}
	id, err := strconv.Atoi(idPart)
	if err != nil {
		return fmt.Errorf("parcel key %q has a non-numeric id: %w", text, err)
	}
	k.Type = Type(typePart)
	k.ID = id
	return nil
}

// CurrencyLike reports whether the key belongs in the balance view. Only Item
// and Currency parcels are "currency" the planning calculators reason about;
// equipment and characters are acquired but never spent.
func (k Key) CurrencyLike() bool {
	return k.Type == TypeItem || k.Type == TypeCurrency
}

// AmountMap maps parcel keys to signed quantities.
type AmountMap map[Key]float64

// Add accumulates amount under key. Zero contributions are recorded too so
// that callers can distinguish "granted 0" from "never granted"; filtering
// happens at aggregation.
func (m AmountMap) Add(k Key, amount float64) {
	m[k] += amount
}

// Merge folds every entry of other into m.
func (m AmountMap) Merge(other AmountMap) {
	for k, v := range other {
		m[k] += v
	}
}

// Scale returns a copy of m with every amount multiplied by factor.
func (m AmountMap) Scale(factor float64) AmountMap {
	out := make(AmountMap, len(m))
	for k, v := range m {
		out[k] = v * factor
	}
	return out
}

// Clone returns a deep copy of m.
func (m AmountMap) Clone() AmountMap {
	out := make(AmountMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Flow is one quantity plus the marker for whether a drop-rate bonus affected
// it. The flag survives aggregation as an OR across contributions.
type Flow struct {
	Amount       float64 `json:"amount"`
	BonusApplied bool    `json:"isBonusApplied,omitempty"`
}

// FlowMap maps parcel keys to bonus-annotated quantities.
type FlowMap map[Key]Flow

// Add accumulates amount under key, OR-ing the bonus flag with any prior
// contribution to the same key.
func (m FlowMap) Add(k Key, amount float64, bonusApplied bool) {
	f := m[k]
	f.Amount += amount
	f.BonusApplied = f.BonusApplied || bonusApplied
	m[k] = f
}

// Merge folds every entry of other into m.
func (m FlowMap) Merge(other FlowMap) {
	for k, f := range other {
		m.Add(k, f.Amount, f.BonusApplied)
	}
}

// Amounts strips the bonus flags, returning a plain amount map.
func (m FlowMap) Amounts() AmountMap {
	out := make(AmountMap, len(m))
	for k, f := range m {
		out[k] = f.Amount
	}
	return out
}

// Clone returns a deep copy of m.
func (m FlowMap) Clone() FlowMap {
	out := make(FlowMap, len(m))
	for k, f := range m {
		out[k] = f
	}
	return out
}

// FromAmounts converts a plain amount map into flows with no bonus marker.
func FromAmounts(m AmountMap) FlowMap {
	out := make(FlowMap, len(m))
	for k, v := range m {
		out[k] = Flow{Amount: v}
	}
	return out
}

// Delta is a single directed flow. Cost deltas are stored as positive
// magnitudes and negated exactly once when folded into the ledger.
type Delta struct {
	Key    Key     `json:"key"`
	Amount float64 `json:"amount"`
}
