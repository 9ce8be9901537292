package discord

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Permissions is a Discord permission bit set. On the wire it is a decimal
// string.
type Permissions uint64

// Permission bits used by the bot.
const (
	PermAdministrator      Permissions = 1 << 3
	PermAddReactions       Permissions = 1 << 6
	PermViewChannel        Permissions = 1 << 10
	PermSendMessages       Permissions = 1 << 11
	PermEmbedLinks         Permissions = 1 << 14
	PermReadMessageHistory Permissions = 1 << 16
	PermUseExternalEmojis  Permissions = 1 << 18
)

// Has reports whether every bit of p is set. Administrator implies all.
func (ps Permissions) Has(p Permissions) bool {
	return ps&PermAdministrator != 0 || ps&p == p
}

// String renders the decimal wire form.
func (ps Permissions) String() string {
	return strconv.FormatUint(uint64(ps), 10)
}

// MarshalJSON implements json.Marshaler.
func (ps Permissions) MarshalJSON() ([]byte, error) {
	return json.Marshal(ps.String())
}

// UnmarshalJSON accepts the decimal string form and bare numbers.
func (ps *Permissions) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		var n uint64
		if err2 := json.Unmarshal(b, &n); err2 != nil {
			return fmt.Errorf("permissions: %w", err)
		}
		*ps = Permissions(n)
		return nil
	}
	if s == "" {
		*ps = 0
		return nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("permissions: %w", err)
	}
	*ps = Permissions(n)
	return nil
}
