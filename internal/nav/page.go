package nav

// Page is what the display is showing. The first seven pages are browsed by
// rotating the encoder; the last three edit a setting.
type Page uint8

const (
	IdleTime Page = iota
	IdleYear
	IdleLife
	ShowUTC
	ShowBirth
	ShowDeath
	ShowNTP
	SetUTC
	SetBirth
	SetDeath
)

// BrowseCount is the number of pages reachable by rotation.
const BrowseCount = int(ShowNTP) + 1

var pageNames = [...]string{
	IdleTime:  "idle-time",
	IdleYear:  "idle-year",
	IdleLife:  "idle-life",
	ShowUTC:   "show-utc",
	ShowBirth: "show-birth",
	ShowDeath: "show-death",
	ShowNTP:   "show-ntp",
	SetUTC:    "set-utc",
	SetBirth:  "set-birth",
	SetDeath:  "set-death",
}

func (p Page) String() string {
	if int(p) < len(pageNames) {
		return pageNames[p]
	}
	return "unknown"
}

// Browse reports whether p is reachable by rotation.
func (p Page) Browse() bool {
	return int(p) < BrowseCount
}

// Live reports whether p shows the running clock and needs redrawing every
// second.
func (p Page) Live() bool {
	return p == IdleTime || p == IdleYear || p == IdleLife
}

// DateField selects the part of a date being edited.
type DateField uint8

const (
	Year DateField = iota
	Month
	Day
)

const lastField = Day

func (f DateField) String() string {
	switch f {
	case Year:
		return "year"
	case Month:
		return "month"
	case Day:
		return "day"
	default:
		return "unknown"
	}
}

// DateTarget is which stored date an edit applies to.
type DateTarget uint8

const (
	Birth DateTarget = iota
	Death
)

// State is the navigation state. Exactly one variant is current: Browse,
// EditUTC or EditDate. Only EditDate carries an edit cursor.
type State interface {
	Page() Page
}

type Browse struct {
	Current Page
}

func (b Browse) Page() Page { return b.Current }

type EditUTC struct{}

func (EditUTC) Page() Page { return SetUTC }

type EditDate struct {
	Target DateTarget
	Field  DateField
}

func (e EditDate) Page() Page {
	if e.Target == Death {
		return SetDeath
	}
	return SetBirth
}

// show returns the browse page an edit returns to.
func (e EditDate) show() Page {
	if e.Target == Death {
		return ShowDeath
	}
	return ShowBirth
}
