package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownStatus is returned by ParseStatus for labels outside the four statuses.
var ErrUnknownStatus = errors.New("unknown status")

// Status is the outreach state of a business.
type Status string

const (
	StatusNotContacted     Status = "Not Contacted"
	StatusContacted        Status = "Contacted"
	StatusSignedUp         Status = "Signed-up"
	StatusDeclinedServices Status = "Declined Services"
)

// AllStatuses returns the statuses in selector order.
func AllStatuses() []Status {
	return []Status{StatusNotContacted, StatusContacted, StatusSignedUp, StatusDeclinedServices}
}

// ParseStatus accepts a status label, ignoring case and separators.
func ParseStatus(value string) (Status, error) {
	key := statusKey(value)
	for _, s := range AllStatuses() {
		if statusKey(string(s)) == key {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w %q (valid: %s)", ErrUnknownStatus, value, strings.Join(statusLabels(), ", "))
}

func statusKey(value string) string {
	replacer := strings.NewReplacer(" ", "", "-", "", "_", "")
	return replacer.Replace(strings.ToLower(strings.TrimSpace(value)))
}

func statusLabels() []string {
	statuses := AllStatuses()
	labels := make([]string, 0, len(statuses))
	for _, s := range statuses {
		labels = append(labels, string(s))
	}
	return labels
}

// RGB is a row background color.
type RGB struct {
	R, G, B uint8
}

// Hex renders the color as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

var (
	ColorWhite      = RGB{255, 255, 255}
	ColorLightBlue  = RGB{173, 216, 230}
	ColorLightGreen = RGB{144, 238, 144}
	ColorTomato     = RGB{255, 99, 71}
)

var statusColors = map[Status]RGB{
	StatusNotContacted:     ColorWhite,
	StatusContacted:        ColorLightBlue,
	StatusSignedUp:         ColorLightGreen,
	StatusDeclinedServices: ColorTomato,
}

// ColorForStatus maps a stored status label to its row color. Labels that are
// not one of the four statuses get white.
func ColorForStatus(label string) RGB {
	if c, ok := statusColors[Status(label)]; ok {
		return c
	}
	return ColorWhite
}
