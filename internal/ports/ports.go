package ports

// ApplicationPorts aggregates all ports for dependency injection
type ApplicationPorts struct {
	// Weather
	WeatherProvider WeatherProviderManager
	WeatherCache    WeatherCache
	WeatherMetrics  WeatherMetrics

	// Location
	Geocoder   Geocoder
	PlaceCache PlaceCache

	// Catalog and accounts
	PlantRepository   PlantRepository
	UserRepository    UserRepository
	SessionRepository SessionRepository
	PasswordHasher    PasswordHasher

	// Cache
	CacheMetrics CacheMetrics

	// Infrastructure
	ConfigProvider ConfigProvider
	Logger         Logger
	Metrics        MetricsCollector
}
