package config

// Config holds the provider-level settings for reaching the oVirt engine API.
type Config struct {
	EngineURL      string `pulumi:"engineUrl"`
	EngineUser     string `pulumi:"engineUser"`
	EnginePassword string `pulumi:"enginePassword" provider:"secret"`
	Insecure       bool   `pulumi:"insecure,optional"`
	CAFile         string `pulumi:"caFile,optional"`
}
