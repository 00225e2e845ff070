package services

import (
	portsrepo "github.com/SscSPs/forexflex/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/forexflex/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.Converter = NewConverterService(repos.RateProvider, repos.HistoryRepo, container.Currency)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.CurrencySvcFacade  = (*currencyService)(nil)
	_ portssvc.ConverterSvcFacade = (*converterService)(nil)
	_ portssvc.ConversionSession  = (*conversionSession)(nil)
)
