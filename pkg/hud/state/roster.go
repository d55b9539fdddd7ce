package state

import (
	"encoding/json"
	"fmt"
	"strings"
)

// combatantDoc accepts both the current roster field names and every legacy
// spelling the GM console has written over the years. Pointer fields
// distinguish "absent" from zero; when both spellings are present the
// current one wins.
type combatantDoc struct {
	Name string `json:"name"`

	HP        *int `json:"hp"`
	CurrentHP *int `json:"currentHP"` // legacy

	HPMax *int `json:"hpMax"`
	MaxHP *int `json:"maxHP"` // legacy

	InitiativeModifier *int `json:"initiativeModifier"`
	Initiative         *int `json:"initiative"` // legacy

	Statuses      []string `json:"statuses"`
	StatusEffects []string `json:"statusEffects"` // legacy

	Portrait     string `json:"portrait"`
	PortraitPath string `json:"portraitPath"`
	Icon         string `json:"icon"` // legacy

	Side    string `json:"side"`
	IsEnemy *bool  `json:"isEnemy"` // legacy
}

type rosterDoc struct {
	Party     []combatantDoc `json:"party"`
	TurnIndex *int           `json:"turn_index"`
	Round     *int           `json:"round"`
}

// ParseRoster decodes a roster document, normalizing legacy field names and
// clamping every index and HP value. The returned state is always safe to
// render.
func ParseRoster(data []byte) (EncounterState, error) {
	var doc rosterDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return EncounterState{}, fmt.Errorf("roster: %w", err)
	}

	enc := EncounterState{
		Combatants:  make([]CombatantRecord, 0, len(doc.Party)),
		ActiveIndex: -1,
		Round:       1,
	}
	if doc.TurnIndex != nil {
		enc.ActiveIndex = *doc.TurnIndex
	}
	if doc.Round != nil && *doc.Round > 0 {
		enc.Round = *doc.Round
	}

	for _, entry := range doc.Party {
		enc.Combatants = append(enc.Combatants, entry.normalize())
	}
	enc.ClampActive()
	return enc, nil
}

// normalize resolves legacy synonyms into a canonical record.
func (d combatantDoc) normalize() CombatantRecord {
	rec := CombatantRecord{Name: d.Name}

	rec.HPMax = firstInt(d.HPMax, d.MaxHP, 0)
	if rec.HPMax < 0 {
		rec.HPMax = 0
	}
	rec.HP = firstInt(d.HP, d.CurrentHP, rec.HPMax)
	if rec.HP < 0 {
		rec.HP = 0
	}
	if rec.HP > rec.HPMax {
		rec.HP = rec.HPMax
	}

	rec.InitiativeModifier = firstInt(d.InitiativeModifier, d.Initiative, 0)

	raw := d.Statuses
	if raw == nil {
		raw = d.StatusEffects
	}
	for _, s := range raw {
		if key := StatusKey(s); key != "" {
			rec.Statuses = append(rec.Statuses, key)
		}
	}

	switch {
	case d.PortraitPath != "":
		rec.PortraitPath = d.PortraitPath
	case d.Portrait != "":
		rec.PortraitPath = d.Portrait
	default:
		rec.PortraitPath = d.Icon
	}

	switch strings.ToLower(strings.TrimSpace(d.Side)) {
	case "enemy":
		rec.Side = SideEnemy
	case "neutral":
		rec.Side = SideNeutral
	case "ally":
		rec.Side = SideAlly
	default:
		if d.IsEnemy != nil && *d.IsEnemy {
			rec.Side = SideEnemy
		}
	}
	return rec
}

func firstInt(vals ...any) int {
	for _, v := range vals {
		switch t := v.(type) {
		case *int:
			if t != nil {
				return *t
			}
		case int:
			return t
		}
	}
	return 0
}

// StatusKey normalizes a status name into the icon lookup key: lowercased
// with spaces collapsed to underscores, the same convention the icon files
// are named by.
func StatusKey(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	return strings.ReplaceAll(s, " ", "_")
}
