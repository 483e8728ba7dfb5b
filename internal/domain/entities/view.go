package entities

// View is one of the application screens
type View string

const (
	ViewDashboard     View = "dashboard"
	ViewSearch        View = "search"
	ViewPatients      View = "patients"
	ViewAppointments  View = "appointments"
	ViewAbout         View = "about"
	ViewOnlineBooking View = "online-booking"
)

// Views lists every screen in menu order
var Views = []View{ViewOnlineBooking, ViewDashboard, ViewPatients, ViewAppointments, ViewSearch, ViewAbout}

// Valid reports whether v names a screen
func (v View) Valid() bool {
	for _, known := range Views {
		if v == known {
			return true
		}
	}
	return false
}
