package session

import (
	"github.com/five82/nimbus/internal/units"
)

// ToggleTemperatureUnit flips and persists the temperature unit, then
// redraws the cached snapshots. It never issues a request.
func (c *Controller) ToggleTemperatureUnit() units.Preferences {
	p, err := c.units.ToggleTemperature()
	if err != nil {
		c.log.Warnw("saving unit preference failed", "error", err)
	}
	c.afterToggle(p)
	return p
}

// ToggleWindUnit flips and persists the wind unit, then redraws the
// cached snapshots. It never issues a request.
func (c *Controller) ToggleWindUnit() units.Preferences {
	p, err := c.units.ToggleWind()
	if err != nil {
		c.log.Warnw("saving unit preference failed", "error", err)
	}
	c.afterToggle(p)
	return p
}

// Units returns the active preferences.
func (c *Controller) Units() units.Preferences {
	return c.units.Current()
}

func (c *Controller) afterToggle(p units.Preferences) {
	c.log.Debugw("units changed", "temperature", p.Temperature, "wind", p.Wind)
	c.view.RenderUnits(p)
	if c.s.Place == nil {
		return
	}
	c.renderAll()
}
