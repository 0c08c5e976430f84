package testutil

// Raw applicant answers used across funnel tests. The values pass every
// intake rule.
const (
	ApplicantName     = "Asha Verma"
	ApplicantMobile   = "9876543210"
	ApplicantAge      = "29"
	ApplicantAddress  = "12 MG Road, Pune"
	ApplicantPAN      = "abcde1234f"
	ApplicantAadhaar  = "123412341234"
	ApplicantSalary   = "50000"
	ApplicantRequest  = "300000"
	ApplicantPurpose  = "Home renovation"
	ApplicantSalaried = "Salaried Employee"
)

// TestSecret is the HMAC key used for session tokens in tests.
const TestSecret = "test-secret-key-for-unit-tests"
