package access

func CapabilitiesFor(state AccessState) []string {
	switch state {
	case AccessFull:
		return []string{"manage_shops", "manage_barbers", "manage_clients", "manage_schedule"}
	case AccessGrace:
		return []string{"manage_clients", "manage_schedule"}
	default:
		return []string{}
	}
}
