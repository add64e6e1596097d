package sqlite

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/transfer-market/internal/domain/player"
	"github.com/riskibarqy/transfer-market/internal/domain/preference"
)

// legacyFilter is the untyped advanced-filter blob the old web client kept
// under "filtros_avanzados". It is stored with schema version 0.
type legacyFilter struct {
	Complete struct {
		Skills    map[string]any `json:"habilidades"`
		Positions map[string]any `json:"posiciones"`
		Age       any            `json:"edad"`
		Foot      string         `json:"pierna"`
		Country   string         `json:"pais"`
	} `json:"filtrosCompletos"`
}

// legacySkillFloor is the slider minimum of the old client; values at or
// below it never filtered anything.
const legacySkillFloor = 40

var legacySkillAttributes = map[string]player.Attribute{
	"juga_velocidad":        player.AttributePace,
	"juga_aceleracion":      player.AttributePace,
	"juga_finalizacion":     player.AttributeShooting,
	"juga_potenciatiro":     player.AttributeShooting,
	"juga_pasealras":        player.AttributePassing,
	"juga_pasebombeado":     player.AttributePassing,
	"juga_dribbling":        player.AttributeDribbling,
	"juga_controlbalon":     player.AttributeDribbling,
	"juga_actituddefensiva": player.AttributeDefending,
	"juga_recupbalon":       player.AttributeDefending,
	"juga_contactofisico":   player.AttributePhysical,
	"juga_resistencia":      player.AttributePhysical,
	"juga_salto":            player.AttributePhysical,
}

var legacyPositions = map[string]player.Position{
	"GK":  player.PositionGoalkeeper,
	"CB":  player.PositionDefender,
	"LB":  player.PositionDefender,
	"RB":  player.PositionDefender,
	"DMF": player.PositionMidfielder,
	"CMF": player.PositionMidfielder,
	"AMF": player.PositionMidfielder,
	"LMF": player.PositionMidfielder,
	"RMF": player.PositionMidfielder,
	"LWF": player.PositionForward,
	"RWF": player.PositionForward,
	"SS":  player.PositionForward,
	"CF":  player.PositionForward,
}

func upgradeLegacy(raw []byte) (preference.MarketFilter, error) {
	var legacy legacyFilter
	if err := sonic.Unmarshal(raw, &legacy); err != nil {
		return preference.MarketFilter{}, fmt.Errorf("decode legacy preferences: %w", err)
	}
	c := legacy.Complete

	var f preference.MarketFilter
	for key, rawValue := range c.Skills {
		v, ok := legacyInt(rawValue)
		if !ok || v <= legacySkillFloor {
			continue
		}
		if key == "juga_valoraciongeneral" {
			f.RatingMin = max(f.RatingMin, min(v, 99))
			continue
		}
		attr, ok := legacySkillAttributes[key]
		if !ok {
			continue
		}
		if f.MinAttributes == nil {
			f.MinAttributes = make(map[player.Attribute]int)
		}
		f.MinAttributes[attr] = max(f.MinAttributes[attr], min(v, 99))
	}

	for key, rawValue := range c.Positions {
		v, ok := legacyInt(rawValue)
		if !ok || v == 0 {
			continue
		}
		pos, ok := legacyPositions[strings.ToUpper(key)]
		if ok && !slices.Contains(f.Positions, pos) {
			f.Positions = append(f.Positions, pos)
		}
	}
	slices.Sort(f.Positions)

	if age, ok := legacyInt(c.Age); ok && age > 0 {
		f.MinAge = age
	}
	if id, err := strconv.ParseInt(strings.TrimSpace(c.Country), 10, 64); err == nil && id > 0 {
		f.CountryID = id
	}
	f.PreferredFoot = legacyFoot(c.Foot)

	return f, nil
}

func legacyInt(v any) (int, bool) {
	switch t := v.(type) {
	case float64:
		return int(t), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		return n, err == nil
	default:
		return 0, false
	}
}

func legacyFoot(raw string) player.Foot {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.HasPrefix(s, "izq"), s == "left":
		return player.FootLeft
	case strings.HasPrefix(s, "der"), s == "right":
		return player.FootRight
	case strings.HasPrefix(s, "amb"), s == "both":
		return player.FootBoth
	default:
		return ""
	}
}
