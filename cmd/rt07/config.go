package main

// Config is the app configuration, loaded from environment variables with an
// optional .env file.
type Config struct {
	// APIBaseURL is the authenticated primary API (envelope responses).
	APIBaseURL string `env:"RT07_API_URL" envDefault:"https://rt07-api.michaeljip.com/api"`
	// DemoAPIURL is the public demo API serving posts and users (raw JSON).
	DemoAPIURL string `env:"RT07_DEMO_API_URL" envDefault:"https://jsonplaceholder.typicode.com"`

	// StorePath is the JSON file backing the durable session store. When
	// RedisURL is set the redis store is used instead.
	StorePath string `env:"RT07_STORE_PATH" envDefault:".rt07/store.json"`
	RedisURL  string `env:"RT07_REDIS_URL"`

	GoogleClientID     string `env:"RT07_GOOGLE_CLIENT_ID" envDefault:"720875424060-urc96jag7uskdgfjisrqqg0efces6rf9.apps.googleusercontent.com"`
	GoogleClientSecret string `env:"RT07_GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `env:"RT07_GOOGLE_REDIRECT_URL" envDefault:"urn:ietf:wg:oauth:2.0:oob"`

	Debug bool `env:"RT07_DEBUG" envDefault:"false"`
}
