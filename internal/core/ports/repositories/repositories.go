package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	UserRepo            UserRepositoryFacade
	CompanyRepo         CompanyRepositoryFacade
	PartnerRepo         PartnerRepositoryFacade
	ProductRepo         ProductRepositoryFacade
	PriceUpdateRepo     PriceUpdateRepositoryFacade
	BusinessPartnerRepo BusinessPartnerRepositoryFacade
	RevenueRepo         RevenueRepositoryFacade
	DistributionRepo    DistributionRepositoryFacade
	WithdrawalRepo      WithdrawalRepositoryFacade
	ExpenseRepo         ExpenseRepositoryFacade
	OrderRepo           OrderRepositoryFacade
}
