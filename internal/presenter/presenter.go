// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package presenter turns normalized forecast data into rendered status
// bar output.
package presenter

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	"github.com/nathan-osman/go-sunrise"
	"github.com/vorlif/humanize"
	"github.com/vorlif/humanize/locale/de"
	"github.com/vorlif/spreak"
	"github.com/wneessen/go-moonphase"
	"golang.org/x/text/language"

	"github.com/wneessen/skycast/internal/config"
	"github.com/wneessen/skycast/internal/daylight"
	"github.com/wneessen/skycast/internal/forecast"
	"github.com/wneessen/skycast/internal/store"
	"github.com/wneessen/skycast/internal/units"
)

// HourView is one hour of the timeline prepared for template rendering.
// Temperatures are already converted to display degrees.
type HourView struct {
	Time                     time.Time
	Icon                     string
	Condition                string
	Temperature              int
	ApparentTemperature      int
	PrecipitationProbability float64
	WindSpeed                float64
	CloudCover               float64
	UVIndex                  float64
	RelativeHumidity         float64
	PressureMSL              float64
	IsDaytime                bool
}

// DayView is one day of the outlook prepared for template rendering.
type DayView struct {
	Date                     time.Time
	Icon                     string
	Condition                string
	TemperatureMax           int
	TemperatureMin           int
	PrecipitationProbability float64
	Sunrise                  time.Time
	Sunset                   time.Time
}

// Context carries everything the text and tooltip templates can access.
type Context struct {
	Location  string
	Latitude  float64
	Longitude float64

	UpdateTime    time.Time
	TempUnit      string
	SunriseTime   time.Time
	SunsetTime    time.Time
	MoonPhase     string
	MoonPhaseIcon string

	Current     HourView
	Hours       []HourView
	Days        []DayView
	HourlyStrip string
	Outlook     string
}

// Output is a single status bar update.
type Output struct {
	Text    string `json:"text"`
	Tooltip string `json:"tooltip"`
	Class   string `json:"class"`
}

type Presenter struct {
	conf      *config.Config
	localizer *spreak.Localizer
	humanizer *humanize.Humanizer
	text      *template.Template
	tooltip   *template.Template
}

func New(conf *config.Config, localizer *spreak.Localizer) (*Presenter, error) {
	if conf == nil {
		return nil, fmt.Errorf("config is required")
	}
	if localizer == nil {
		return nil, fmt.Errorf("localizer is required")
	}

	p := &Presenter{conf: conf, localizer: localizer}
	collection := humanize.MustNew(humanize.WithLocale(de.New()))
	p.humanizer = collection.CreateHumanizer(language.Make(conf.Locale))

	tpl, err := template.New("text").Funcs(p.templateFuncMap()).Parse(conf.Templates.Text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse text template: %w", err)
	}
	p.text = tpl

	tpl, err = template.New("tooltip").Funcs(p.templateFuncMap()).Parse(conf.Templates.Tooltip)
	if err != nil {
		return nil, fmt.Errorf("failed to parse tooltip template: %w", err)
	}
	p.tooltip = tpl

	return p, nil
}

// BuildContext assembles the template context for one render cycle. The
// hourly strip starts at the hour the timeline considers current and the
// outlook covers the configured number of days.
func (p *Presenter) BuildContext(location store.Location, hours []forecast.HourlyRecord,
	days []forecast.DailyRecord, now time.Time, u units.Units,
) Context {
	current := forecast.CurrentHour(hours, now)
	rise, set := p.sunTimes(location, days, current.Time, now)
	isDay := daylight.IsDaytime(current.Time, rise, set)

	ctx := Context{
		Location:    location.DisplayName,
		Latitude:    location.Latitude,
		Longitude:   location.Longitude,
		UpdateTime:  now,
		TempUnit:    u.Symbol(),
		SunriseTime: rise,
		SunsetTime:  set,
		Current:     p.hourView(current, isDay, u),
	}

	moon := moonphase.New(now)
	ctx.MoonPhase = p.localizer.Get(moonPhases[moon.PhaseName()])
	ctx.MoonPhaseIcon = MoonPhaseIcon[moon.PhaseName()]

	start := 0
	for i := range hours {
		if hours[i].Time.Equal(current.Time) {
			start = i
			break
		}
	}
	end := min(start+int(p.conf.Weather.StripHours), len(hours))
	for _, rec := range hours[start:end] {
		ctx.Hours = append(ctx.Hours, p.hourView(rec, daylight.IsDaytime(rec.Time, rise, set), u))
	}

	outlook := min(int(p.conf.Weather.OutlookDays), len(days))
	for _, rec := range days[:outlook] {
		ctx.Days = append(ctx.Days, p.dayView(rec, u))
	}

	ctx.HourlyStrip = p.hourlyStrip(ctx.Hours)
	ctx.Outlook = p.outlook(ctx.Days)
	return ctx
}

// Render executes both templates against the given context. The class
// field follows the day/night state of the current hour.
func (p *Presenter) Render(ctx Context) (Output, error) {
	var text, tooltip bytes.Buffer
	if err := p.text.Execute(&text, ctx); err != nil {
		return Output{}, fmt.Errorf("failed to render text template: %w", err)
	}
	if err := p.tooltip.Execute(&tooltip, ctx); err != nil {
		return Output{}, fmt.Errorf("failed to render tooltip template: %w", err)
	}

	class := "night"
	if ctx.Current.IsDaytime {
		class = "day"
	}
	return Output{Text: text.String(), Tooltip: tooltip.String(), Class: class}, nil
}

// sunTimes prefers the outlook day matching the current hour and falls
// back to computed times when no daily data is available.
func (p *Presenter) sunTimes(location store.Location, days []forecast.DailyRecord,
	current, now time.Time,
) (time.Time, time.Time) {
	for _, day := range days {
		if sameDate(day.Time, current) {
			return day.Sunrise, day.Sunset
		}
	}
	rise, set := sunrise.SunriseSunset(location.Latitude, location.Longitude,
		now.Year(), now.Month(), now.Day())
	return rise.In(now.Location()), set.In(now.Location())
}

func (p *Presenter) hourView(rec forecast.HourlyRecord, day bool, u units.Units) HourView {
	return HourView{
		Time:                     rec.Time,
		Icon:                     daylight.Icon(rec.WeatherCode, day),
		Condition:                p.localizer.Get(daylight.Condition(rec.WeatherCode)),
		Temperature:              units.ToDisplay(rec.Temperature, u),
		ApparentTemperature:      units.ToDisplay(rec.ApparentTemperature, u),
		PrecipitationProbability: rec.PrecipitationProbability,
		WindSpeed:                rec.WindSpeed,
		CloudCover:               rec.CloudCover,
		UVIndex:                  rec.UVIndex,
		RelativeHumidity:         rec.RelativeHumidity,
		PressureMSL:              rec.PressureMSL,
		IsDaytime:                day,
	}
}

func (p *Presenter) dayView(rec forecast.DailyRecord, u units.Units) DayView {
	return DayView{
		Date:                     rec.Time,
		Icon:                     daylight.Icon(rec.WeatherCode, true),
		Condition:                p.localizer.Get(daylight.Condition(rec.WeatherCode)),
		TemperatureMax:           units.ToDisplay(rec.TemperatureMax, u),
		TemperatureMin:           units.ToDisplay(rec.TemperatureMin, u),
		PrecipitationProbability: rec.PrecipitationProbabilityMax,
		Sunrise:                  rec.Sunrise,
		Sunset:                   rec.Sunset,
	}
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
