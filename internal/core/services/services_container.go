package services

import (
	portsrepo "github.com/animal-wellness/aw_backend/internal/core/ports/repositories"
	portssvc "github.com/animal-wellness/aw_backend/internal/core/ports/services"
	"github.com/animal-wellness/aw_backend/internal/platform/config"
	"github.com/animal-wellness/aw_backend/internal/utils"
)

// Adapters groups the outbound collaborators that are not repositories.
type Adapters struct {
	Notifier  portssvc.Notifier
	Renderer  portssvc.InvoiceRenderer
	Exporter  portssvc.PriceListExporter
	Analytics utils.EventTracker
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, adapters Adapters) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Auth = NewAuthService(cfg, repos.UserRepo)
	container.User = NewUserService(repos.UserRepo, repos.PartnerRepo)

	// Catalog
	container.Company = NewCompanyService(repos.CompanyRepo)
	container.Partner = NewPartnerService(repos.PartnerRepo)
	container.Product = NewProductService(repos.ProductRepo, adapters.Exporter)
	container.PriceUpdate = NewPriceUpdateService(repos.PriceUpdateRepo, adapters.Analytics)

	// Finance
	container.BusinessPartner = NewBusinessPartnerService(repos.BusinessPartnerRepo)
	container.Revenue = NewRevenueService(repos.RevenueRepo)
	container.Distribution = NewDistributionService(repos.BusinessPartnerRepo, repos.RevenueRepo, repos.DistributionRepo, adapters.Analytics)
	container.Withdrawal = NewWithdrawalService(repos.WithdrawalRepo, repos.PartnerRepo, adapters.Notifier, adapters.Analytics)
	container.Expense = NewExpenseService(repos.ExpenseRepo)

	// Sales
	container.Order = NewOrderService(repos.OrderRepo, repos.ProductRepo, repos.PartnerRepo, adapters.Analytics)
	container.Invoice = NewInvoiceService(repos.OrderRepo, adapters.Renderer, adapters.Analytics)

	return container
}
