package tactics

import (
	"github.com/Garsondee/tactics-core/internal/logger"
	"github.com/Garsondee/tactics-core/internal/nav"
	"github.com/Garsondee/tactics-core/internal/sight"
	"github.com/Garsondee/tactics-core/internal/unit"
	"github.com/sirupsen/logrus"
)

type config struct {
	pass       unit.PassPolicy
	team       sight.TeamPolicy
	vision     sight.VisionMode
	unitsBlock bool
	journal    *Journal
	log        *logrus.Entry
	navOpts    []nav.Option
}

func defaultConfig() config {
	return config{
		pass:    unit.PassAllies,
		team:    sight.InView,
		vision:  sight.SingleVision,
		journal: NewJournal(false),
		log:     logger.Component("tactics"),
	}
}

// Option configures an Engine.
type Option func(*config)

// WithPassPolicy sets which units a mover may walk through.
func WithPassPolicy(p unit.PassPolicy) Option {
	return func(c *config) { c.pass = p }
}

// WithTeamPolicy sets which units are shown to which teams.
func WithTeamPolicy(p sight.TeamPolicy) Option {
	return func(c *config) { c.team = p }
}

// WithVisionMode selects single or group fog.
func WithVisionMode(m sight.VisionMode) Option {
	return func(c *config) { c.vision = m }
}

// WithUnitsBlockSight makes occupied tiles opaque.
func WithUnitsBlockSight(on bool) Option {
	return func(c *config) { c.unitsBlock = on }
}

// WithJournal records engine events into j.
func WithJournal(j *Journal) Option {
	return func(c *config) {
		if j != nil {
			c.journal = j
		}
	}
}

// WithLogger routes engine logging to entry.
func WithLogger(entry *logrus.Entry) Option {
	return func(c *config) {
		if entry != nil {
			c.log = entry
		}
	}
}

// WithNavOptions forwards options to the pathfinder and movement range.
func WithNavOptions(opts ...nav.Option) Option {
	return func(c *config) { c.navOpts = append(c.navOpts, opts...) }
}
