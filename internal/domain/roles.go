package domain

type Role string

const (
	// User can manage their own account and run the calculator.
	RoleUser Role = "user"
	// Admin can list all users, change roles, and edit or delete any account.
	RoleAdmin Role = "admin"
)

func IsValidRole(r string) bool {
	return r == string(RoleUser) || r == string(RoleAdmin)
}

// RoleRank: bigger => higher privilege
func RoleRank(r string) int {
	switch r {
	case string(RoleUser):
		return 1
	case string(RoleAdmin):
		return 2
	default:
		return 0
	}
}

const (
	GenderMale    = "male"
	GenderFemale  = "female"
	GenderUnknown = "unknown"
)

func IsValidGender(g string) bool {
	return g == GenderMale || g == GenderFemale || g == GenderUnknown
}
