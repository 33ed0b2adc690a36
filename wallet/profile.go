package wallet

import (
	"strings"

	"github.com/etnz/balance"
)

// Profile is a wallet holder identity. Balances are attached to a profile.
type Profile struct {
	ID      int64
	Type    string // "personal" or "business", lower case
	Primary bool
}

var (
	profileIDAliases      = balance.Aliases{"id", "profileId", "profile_id"}
	profilePrimaryAliases = balance.Aliases{"primary", "isPrimary", "default"}
)

// DecodeProfiles reads the profiles payload.
func DecodeProfiles(data []byte) ([]Profile, error) {
	c := balance.Cascade[Profile]{
		Provider: balance.Wallet,
		Element:  profileElement,
		Wrappers: balance.Aliases{"profiles", "data", "items", "results", "list"},
	}
	return c.Decode(data)
}

func profileElement(obj map[string]any) (Profile, bool) {
	var p Profile
	for _, k := range profileIDAliases {
		id, ok := balance.Coerce(obj[k])
		if ok && id.IsInteger() && id.IsPositive() {
			p.ID = id.IntPart()
			break
		}
	}
	if p.ID == 0 {
		return Profile{}, false
	}
	if t, ok := balance.String(obj["type"]); ok {
		p.Type = strings.ToLower(t)
	}
	for _, k := range profilePrimaryAliases {
		if b, ok := obj[k].(bool); ok {
			p.Primary = b
			break
		}
	}
	return p, true
}

// SelectProfile picks the profile whose balances are shown: the personal
// profile flagged as primary, else the first personal profile, else the first
// profile. It reports false when there is no profile at all.
func SelectProfile(profiles []Profile) (Profile, bool) {
	if len(profiles) == 0 {
		return Profile{}, false
	}
	var personal []Profile
	for _, p := range profiles {
		if p.Type == "personal" {
			personal = append(personal, p)
		}
	}
	for _, p := range personal {
		if p.Primary {
			return p, true
		}
	}
	if len(personal) > 0 {
		return personal[0], true
	}
	return profiles[0], true
}

// ProfileID decodes the profiles payload and selects the wallet holder's
// profile. No profile at all is a DecodingFailed error.
func ProfileID(data []byte) (int64, error) {
	profiles, err := DecodeProfiles(data)
	if err != nil {
		return 0, err
	}
	p, ok := SelectProfile(profiles)
	if !ok {
		return 0, balance.DecodingError(balance.Wallet, "no profile found")
	}
	return p.ID, nil
}
