package domain

// Company is a manufacturer or brand whose products are listed in the catalog.
type Company struct {
	CompanyID string `json:"companyID"`
	Name      string `json:"name"`
	IsActive  bool   `json:"isActive"`
	AuditFields
}
