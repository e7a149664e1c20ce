package nubapp

// Default base URLs for the resasports social frontend and the Nubapp
// backend it delegates to. Overridable on the Client for tests.
const (
	defaultSocialBase = "https://social.resasports.com"
	defaultNubappBase = "https://sport.nubapp.com"
)

// Paths on the social frontend.
const (
	centresPath    = "/ajax/applications/bounds/"
	popupLoginPath = "/popup/login"
	loginCheckPath = "/popup/login_check"
)

// Paths on the Nubapp backend.
const (
	nubappLoginPath = "/web/resources/login_from_social.php"
	activitiesPath  = "/api/v4/activities/getActivities.php"
	slotsPath       = "/api/v4/activities/getActivitiesCalendar.php"
	bookingPath     = "/api/v4/activities/bookActivityCalendar.php"
	cancelPath      = "/api/v4/activities/leaveActivityCalendar.php"
)

// credRequestPath returns the social-frontend path that hands out Nubapp
// credentials for a given centre.
func credRequestPath(centreSlug string) string {
	return "/ajax/application/" + centreSlug + "/book/request"
}
