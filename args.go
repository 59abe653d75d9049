package main

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ParseArgs reads configuration from flags with environment overrides
// (prefix SILENT_AUCTION, dashes as underscores).
func ParseArgs() Args {
	// server config
	pflag.String("server-url", "0.0.0.0:8080", "listen address")
	pflag.String("log-level", "info", "log level (debug, info, warn, error)")

	// identity config; with an empty secret the server trusts the
	// X-Caller-Identity header, which is only suitable for development
	pflag.String("token-secret", "", "HS256 secret for bearer-token identity resolution")

	// redis event stream config; the stream sink is disabled when addr is empty
	pflag.String("redis-addr", "", "redis address for the event stream sink")
	pflag.String("redis-password", "", "")
	pflag.Int("redis-db", 0, "")
	pflag.String("redis-stream-key", "silent-auction-events", "")

	// bind pflag to viper
	pflag.Parse()
	viper.BindPFlags(pflag.CommandLine)
	viper.AutomaticEnv()
	viper.SetEnvPrefix("SILENT_AUCTION")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	return Args{
		ServerURL:   viper.GetString("server-url"),
		LogLevel:    viper.GetString("log-level"),
		TokenSecret: viper.GetString("token-secret"),
		Redis: RedisArgs{
			Addr:      viper.GetString("redis-addr"),
			Password:  viper.GetString("redis-password"),
			DB:        viper.GetInt("redis-db"),
			StreamKey: viper.GetString("redis-stream-key"),
		},
	}
}

type Args struct {
	ServerURL   string
	LogLevel    string
	TokenSecret string
	Redis       RedisArgs
}

type RedisArgs struct {
	Addr      string
	Password  string
	DB        int
	StreamKey string
}

func (args Args) Validate() bool {
	return args.ServerURL != "" && (args.Redis.Addr == "" || args.Redis.StreamKey != "")
}
