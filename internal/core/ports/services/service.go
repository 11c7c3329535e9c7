package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Auth            AuthSvc
	User            UserSvcFacade
	Company         CompanySvcFacade
	Partner         PartnerSvcFacade
	Product         ProductSvcFacade
	PriceUpdate     PriceUpdateSvcFacade
	BusinessPartner BusinessPartnerSvcFacade
	Revenue         RevenueSvcFacade
	Distribution    DistributionSvcFacade
	Withdrawal      WithdrawalSvcFacade
	Expense         ExpenseSvcFacade
	Order           OrderSvcFacade
	Invoice         InvoiceSvc
}
