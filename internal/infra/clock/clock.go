package clock

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/sirupsen/logrus"
)

// LoadLocation resolves the civil timezone by name. When the timezone database
// cannot resolve it, a fixed offset of fallbackHours from UTC is used instead,
// with no daylight-saving rules. It never fails.
func LoadLocation(name string, fallbackHours int, log *logrus.Entry) *time.Location {
	loc, err := time.LoadLocation(name)
	if err == nil {
		return loc
	}
	fallback := time.FixedZone(fmt.Sprintf("UTC%+d", fallbackHours), fallbackHours*3600)
	if log != nil {
		log.WithError(err).WithFields(logrus.Fields{
			"timezone": name,
			"fallback": fallback.String(),
		}).Warn("Timezone database unavailable, using fixed offset")
	}
	return fallback
}

// Clock reports the current civil date in a fixed location.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

func New(loc *time.Location) *Clock {
	return &Clock{loc: loc, now: time.Now}
}

// NewWithNow is New with an injectable time source.
func NewWithNow(loc *time.Location, now func() time.Time) *Clock {
	return &Clock{loc: loc, now: now}
}

func (c *Clock) Location() *time.Location { return c.loc }

// Today returns the calendar date at this instant in the clock's location.
func (c *Clock) Today() civil.Date {
	return civil.DateOf(c.now().In(c.loc))
}
