package services

// Form field names read by the builders.
const (
	FieldCountryCode     = "countryCode"
	FieldPhone           = "phoneNo"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldUsername        = "username"
	FieldRole            = "role"
	FieldGender          = "gender"
	FieldCity            = "city"
	FieldState           = "state"
	FieldLandAcres       = "landAcres"
	FieldCrop            = "crop"
	FieldImage           = "image"
	FieldQuery           = "query"
	FieldOTP             = "otp"
	FieldNewPassword     = "newPassword"
	FieldConfirmPassword = "confirmPassword"
)

// Allowed values of the select fields.
var (
	CountryCodes = []string{"+91", "+1", "+44"}
	Roles        = []string{"Farmer", "Logistics"}
	Genders      = []string{"Male", "Female", "Other"}
)

const DefaultCountryCode = "+91"
