package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Gender of the partner's contact person.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// BloodGroup is recorded for field veterinarians working as partners.
type BloodGroup string

// DayOfWeek is a day on which a partner takes orders or visits.
type DayOfWeek string

const (
	Monday    DayOfWeek = "monday"
	Tuesday   DayOfWeek = "tuesday"
	Wednesday DayOfWeek = "wednesday"
	Thursday  DayOfWeek = "thursday"
	Friday    DayOfWeek = "friday"
	Saturday  DayOfWeek = "saturday"
	Sunday    DayOfWeek = "sunday"
)

var validGenders = map[Gender]bool{GenderMale: true, GenderFemale: true, GenderOther: true}

var validBloodGroups = map[BloodGroup]bool{
	"A+": true, "A-": true, "B+": true, "B-": true,
	"AB+": true, "AB-": true, "O+": true, "O-": true,
}

var validDays = map[DayOfWeek]bool{
	Monday: true, Tuesday: true, Wednesday: true, Thursday: true,
	Friday: true, Saturday: true, Sunday: true,
}

// IsValidGender reports whether s names a known gender.
func IsValidGender(s string) bool { return validGenders[Gender(strings.ToLower(s))] }

// IsValidBloodGroup reports whether s is an ABO/Rh group such as "AB-".
func IsValidBloodGroup(s string) bool { return validBloodGroups[BloodGroup(strings.ToUpper(s))] }

// IsValidDayOfWeek reports whether s is a lower- or mixed-case English weekday.
func IsValidDayOfWeek(s string) bool { return validDays[DayOfWeek(strings.ToLower(s))] }

// Partner is a reseller (clinic, vet, shop) that sells catalog products and holds a wallet.
type Partner struct {
	PartnerID      string          `json:"partnerID"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Gender         Gender          `json:"gender"`
	BloodGroup     *BloodGroup     `json:"bloodGroup,omitempty"`
	Specialization string          `json:"specialization"`
	Address        string          `json:"address"`
	AvailableDays  []DayOfWeek     `json:"availableDays"`
	WalletBalance  decimal.Decimal `json:"walletBalance"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}

// WalletCredit is one top-up of a partner wallet; the wallet_credits rows are its audit trail.
type WalletCredit struct {
	CreditID  string          `json:"creditID"`
	PartnerID string          `json:"partnerID"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note"`
	AuditFields
}
