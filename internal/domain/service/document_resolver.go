package service

import (
	"github.com/bibbank/origination/internal/domain/model"
	"github.com/bibbank/origination/internal/domain/valueobject"
)

const (
	acceptImage      = "image/*"
	acceptImageOrPDF = "image/*,application/pdf"
	acceptPDFOrImage = "application/pdf,image/*"
)

var tierDocuments = map[valueobject.EmploymentTier][]model.DocumentRequirement{
	valueobject.EmploymentTierStudent: {
		{Key: "STUDENT_ID_CARD", Label: "Student ID Card", Accept: acceptImage},
		{Key: "ADDRESS_PROOF", Label: "Address Proof (Utility Bill)", Accept: acceptImageOrPDF},
	},
	valueobject.EmploymentTierSelfEmployed: {
		{Key: "BUSINESS_REGISTRATION", Label: "Business Registration / GST / Invoice", Accept: acceptImageOrPDF},
		{Key: "BANK_STATEMENT_6M", Label: "Bank Statement (6 months)", Accept: acceptPDFOrImage},
		{Key: "PROFIT_LOSS", Label: "Profit & Loss / Income Proof", Accept: acceptPDFOrImage},
	},
	valueobject.EmploymentTierSalaried: {
		{Key: "EMPLOYMENT_PROOF", Label: "Employment Proof (Offer Letter / Employer ID)", Accept: acceptImageOrPDF},
		{Key: "SALARY_SLIP_3M", Label: "Salary Slips (Last 3 months)", Accept: acceptPDFOrImage},
		{Key: "BANK_STATEMENT_3M", Label: "Bank Statement (Last 3 months)", Accept: acceptPDFOrImage},
	},
	valueobject.EmploymentTierUnemployed: {
		{Key: "CO_APPLICANT_DOC", Label: "Co-applicant / Guarantor ID & Consent", Accept: acceptImageOrPDF},
		{Key: "ASSET_PROOF", Label: "Asset Proof (Property / Vehicle documents)", Accept: acceptImageOrPDF},
	},
}

// DocumentRequirementResolver builds the document checklist for a tier.
type DocumentRequirementResolver struct{}

// NewDocumentRequirementResolver returns a new resolver.
func NewDocumentRequirementResolver() *DocumentRequirementResolver {
	return &DocumentRequirementResolver{}
}

// RequiredDocuments returns the ordered checklist for tier, identity
// document first. Unknown tiers get the identity document alone.
func (r *DocumentRequirementResolver) RequiredDocuments(tier valueobject.EmploymentTier) []model.DocumentRequirement {
	extra := tierDocuments[tier]
	docs := make([]model.DocumentRequirement, 0, len(extra)+1)
	docs = append(docs, model.IdentityDocument)
	return append(docs, extra...)
}

// ForEmployment parses a free-form employment answer and resolves its
// checklist.
func (r *DocumentRequirementResolver) ForEmployment(raw string) []model.DocumentRequirement {
	return r.RequiredDocuments(valueobject.ParseEmploymentTier(raw))
}
