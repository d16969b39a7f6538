package timezone

import (
	"sync"
	"time"
)

const DefaultTimezone = "America/Sao_Paulo"

var locations sync.Map // nome → *time.Location

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := load(tz)
	return err == nil
}

// Location resolve o fuso do restaurante; nomes inválidos caem no padrão.
func Location(tz string) *time.Location {
	if tz != "" {
		if loc, err := load(tz); err == nil {
			return loc
		}
	}

	loc, err := load(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// In converte t para o fuso do restaurante.
func In(t time.Time, tz string) time.Time {
	return t.In(Location(tz))
}

func load(tz string) (*time.Location, error) {
	if loc, ok := locations.Load(tz); ok {
		return loc.(*time.Location), nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, err
	}
	locations.Store(tz, loc)
	return loc, nil
}
