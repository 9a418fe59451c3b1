package profile

import (
	"os"
	"strings"
)

type Profile string

const (
	Local Profile = "LOCAL"
	Dev   Profile = "DEV"
	Prod  Profile = "PROD"
)

// Current is resolved once from APP_PROFILE and defaults to Local.
var Current = FromString(os.Getenv("APP_PROFILE"))

func FromString(s string) Profile {
	switch Profile(strings.ToUpper(strings.TrimSpace(s))) {
	case Dev:
		return Dev
	case Prod:
		return Prod
	default:
		return Local
	}
}
