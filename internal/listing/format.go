package listing

import (
	"strings"
	"time"
)

// Style selects how show start times are rendered for display.
type Style string

const (
	StyleMedium Style = "medium"
	StyleFull   Style = "full"
)

const (
	mediumLayout = "Mon 01, 02, 2006 3:04PM"
	fullLayout   = "Monday January, 2, 2006 at 3:04PM"
)

// ParseStyle maps a user supplied token to a Style, defaulting to medium.
func ParseStyle(raw string) Style {
	if Style(strings.ToLower(strings.TrimSpace(raw))) == StyleFull {
		return StyleFull
	}
	return StyleMedium
}

// Formatter renders show start times.
type Formatter interface {
	Format(t time.Time, style Style) string
}

// LayoutFormatter formats times with fixed layouts in a configured zone.
type LayoutFormatter struct {
	Location *time.Location
}

func (f LayoutFormatter) Format(t time.Time, style Style) string {
	if f.Location != nil {
		t = t.In(f.Location)
	}
	if style == StyleFull {
		return t.Format(fullLayout)
	}
	return t.Format(mediumLayout)
}
