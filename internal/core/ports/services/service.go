package services

// ServiceContainer aggregates the service facades handed to the HTTP layer.
type ServiceContainer struct {
	Auth    AuthSvcFacade
	Token   TokenSvcFacade
	User    UserSvcFacade
	Product ProductSvcFacade
}
