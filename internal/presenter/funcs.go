// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"fmt"
	"math"
	"strings"
	"text/template"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/vorlif/humanize"
)

// iconCell is the column width icons are padded to. Emoji render one or
// two cells wide, without padding the strip columns drift.
const iconCell = 3

func (p *Presenter) templateFuncMap() template.FuncMap {
	return template.FuncMap{
		"timeFormat":    timeFormat,
		"localizedTime": p.localizedTime,
		"floatFormat":   floatFormat,
		"loc":           p.loc,
		"lc":            strings.ToLower,
		"uc":            strings.ToUpper,
	}
}

func (p *Presenter) loc(val string) string {
	if raw, ok := i18nVars[strings.ToLower(val)]; ok {
		return p.localizer.Get(raw)
	}
	return val
}

func (p *Presenter) localizedTime(val time.Time) string {
	return p.humanizer.FormatTime(val, humanize.TimeFormat)
}

func timeFormat(val time.Time, fmt string) string {
	return val.Format(fmt)
}

func floatFormat(val float64, precision int) string {
	pow := math.Pow(10, float64(precision))
	return fmt.Sprintf("%.*f", precision, math.Trunc(val*pow)/pow)
}

func (p *Presenter) hourlyStrip(hours []HourView) string {
	lines := make([]string, 0, len(hours))
	for _, h := range hours {
		lines = append(lines, fmt.Sprintf("%s %s %4s %3.0f%%",
			h.Time.Format("15:04"), padIcon(h.Icon),
			fmt.Sprintf("%d%s", h.Temperature, "°"), h.PrecipitationProbability))
	}
	return strings.Join(lines, "\n")
}

func (p *Presenter) outlook(days []DayView) string {
	lines := make([]string, 0, len(days))
	for _, d := range days {
		lines = append(lines, fmt.Sprintf("%s %s %4s /%4s",
			d.Date.Format("Mon 02.01"), padIcon(d.Icon),
			fmt.Sprintf("%d%s", d.TemperatureMax, "°"),
			fmt.Sprintf("%d%s", d.TemperatureMin, "°")))
	}
	return strings.Join(lines, "\n")
}

func padIcon(icon string) string {
	width := runewidth.StringWidth(icon)
	if width >= iconCell {
		return icon
	}
	return icon + strings.Repeat(" ", iconCell-width)
}
